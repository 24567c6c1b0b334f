package validate

import (
	"strconv"
	"strings"

	"github.com/pointledger/pointledger/internal/models"
)

// MaxAmount is the per-call ceiling for a charge or use.
const MaxAmount int64 = 1_000_000

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Unwrap lets callers match any validation failure with models.ErrInvalidInput.
func (e Errs) Unwrap() error { return models.ErrInvalidInput }

// Helpers
func Int(field, raw string) (int64, *ErrField) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &ErrField{Field: field, Msg: "must be an integer"}
	}
	return v, nil
}

func MinInt(field string, v, min int64) *ErrField {
	if v < min {
		return &ErrField{Field: field, Msg: "must be >= " + strconv.FormatInt(min, 10)}
	}
	return nil
}

func MaxInt(field string, v, max int64) *ErrField {
	if v > max {
		return &ErrField{Field: field, Msg: "must be <= " + strconv.FormatInt(max, 10)}
	}
	return nil
}

// Collect drops nil entries and returns nil when nothing failed.
func Collect(fs ...*ErrField) error {
	var errs Errs
	for _, f := range fs {
		if f != nil {
			errs = append(errs, *f)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UserID checks a user id before it reaches the ledger.
func UserID(id int64) error {
	return Collect(MinInt("id", id, 1))
}

// PointRequest checks a charge or use request before it reaches the ledger.
func PointRequest(id, amount int64) error {
	return Collect(
		MinInt("id", id, 1),
		MinInt("amount", amount, 1),
		MaxInt("amount", amount, MaxAmount),
	)
}

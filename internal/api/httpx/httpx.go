package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pointledger/pointledger/internal/api/validate"
	"github.com/pointledger/pointledger/internal/models"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// StatusFor maps any error the ledger or the validator returns to an HTTP
// status and an error code. Unknown errors are internal errors.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, models.ErrBalanceLimitExceeded):
		return http.StatusConflict, "balance_limit_exceeded"
	case errors.Is(err, models.ErrInsufficientBalance):
		return http.StatusConflict, "insufficient_balance"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// WriteErr writes err using StatusFor. Field errors from validation go out
// as details; internal errors never leak their message.
func WriteErr(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	if status == http.StatusInternalServerError {
		WriteError(w, status, code, "internal error", nil)
		return
	}
	var details interface{}
	var fe validate.Errs
	if errors.As(err, &fe) {
		details = fe
	}
	WriteError(w, status, code, err.Error(), details)
}

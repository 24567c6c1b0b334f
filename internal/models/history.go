package models

import "time"

type TransactionType string

const (
	TxnCharge TransactionType = "CHARGE"
	TxnUse    TransactionType = "USE"
)

type PointHistory struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Type      TransactionType `json:"type"`
	Amount    int64           `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// Signed is the delta the record applies to its user's balance.
func (h PointHistory) Signed() int64 {
	if h.Type == TxnUse {
		return -h.Amount
	}
	return h.Amount
}

// Replay folds a user's history into the balance it should produce.
func Replay(hs []PointHistory) int64 {
	var sum int64
	for _, h := range hs {
		sum += h.Signed()
	}
	return sum
}

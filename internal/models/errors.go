package models

import "errors"

// Failures reported by the ledger. Callers branch on them with errors.Is;
// every returned error wraps exactly one of these.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrBalanceLimitExceeded = errors.New("balance limit exceeded")
	ErrInsufficientBalance  = errors.New("insufficient balance")
)

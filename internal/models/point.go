package models

import (
	"fmt"
	"time"
)

// MaxBalance is the inclusive upper bound of a user's point balance.
const MaxBalance int64 = 2_000_000

type UserPoint struct {
	ID        int64     `json:"id"`
	Points    int64     `json:"point"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Charge returns a copy of p increased by amount, stamped with now.
// p itself is never modified.
func (p UserPoint) Charge(amount int64, now time.Time) (UserPoint, error) {
	if p.Points+amount > MaxBalance {
		return UserPoint{}, fmt.Errorf("charge %d on %d: %w", amount, p.Points, ErrBalanceLimitExceeded)
	}
	p.Points += amount
	p.UpdatedAt = now
	return p, nil
}

// Use returns a copy of p decreased by amount, stamped with now.
func (p UserPoint) Use(amount int64, now time.Time) (UserPoint, error) {
	if p.Points < amount {
		return UserPoint{}, fmt.Errorf("use %d on %d: %w", amount, p.Points, ErrInsufficientBalance)
	}
	p.Points -= amount
	p.UpdatedAt = now
	return p, nil
}

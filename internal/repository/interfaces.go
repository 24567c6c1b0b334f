package repository

import (
	"time"

	"github.com/pointledger/pointledger/internal/models"
)

// Balances holds one point record per user. It does no locking of its own
// across calls; callers that read-modify-write must serialize per user.
type Balances interface {
	// Get returns the record for id, creating a zero record on first access.
	Get(id int64) models.UserPoint
	// Put overwrites the stored points for id and stamps a fresh UpdatedAt.
	Put(id int64, points int64) models.UserPoint
}

// Histories is the append-only point history.
type Histories interface {
	Append(userID, amount int64, typ models.TransactionType, at time.Time) models.PointHistory
	ListByUser(userID int64) []models.PointHistory
}

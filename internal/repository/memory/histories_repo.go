package memory

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pointledger/pointledger/internal/models"
	"github.com/pointledger/pointledger/internal/repository"
)

type historyBucket struct {
	mu   sync.RWMutex
	rows []models.PointHistory
}

// historiesRepo shards rows per user; only the id sequence is shared.
type historiesRepo struct {
	seq     atomic.Int64
	buckets sync.Map // int64 -> *historyBucket
}

func NewHistories() repository.Histories { return &historiesRepo{} }

func (r *historiesRepo) bucket(userID int64) *historyBucket {
	if v, ok := r.buckets.Load(userID); ok {
		return v.(*historyBucket)
	}
	v, _ := r.buckets.LoadOrStore(userID, &historyBucket{})
	return v.(*historyBucket)
}

func (r *historiesRepo) Append(userID, amount int64, typ models.TransactionType, at time.Time) models.PointHistory {
	h := models.PointHistory{
		ID:        r.seq.Add(1),
		UserID:    userID,
		Type:      typ,
		Amount:    amount,
		Timestamp: at,
	}
	b := r.bucket(userID)
	b.mu.Lock()
	b.rows = append(b.rows, h)
	b.mu.Unlock()
	return h
}

func (r *historiesRepo) ListByUser(userID int64) []models.PointHistory {
	v, ok := r.buckets.Load(userID)
	if !ok {
		return []models.PointHistory{}
	}
	b := v.(*historyBucket)
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.PointHistory, len(b.rows))
	copy(out, b.rows)
	return out
}

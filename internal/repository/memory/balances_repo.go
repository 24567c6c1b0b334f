package memory

import (
	"sync"
	"time"

	"github.com/pointledger/pointledger/internal/models"
	"github.com/pointledger/pointledger/internal/repository"
)

// balancesRepo keeps each record as an immutable value in a sync.Map, so a
// reader either sees the previous value or the new one, never a mix.
type balancesRepo struct {
	now  Clock
	rows sync.Map // int64 -> models.UserPoint
}

func NewBalances(now Clock) repository.Balances {
	if now == nil {
		now = time.Now
	}
	return &balancesRepo{now: now}
}

func (r *balancesRepo) Get(id int64) models.UserPoint {
	if v, ok := r.rows.Load(id); ok {
		return v.(models.UserPoint)
	}
	v, _ := r.rows.LoadOrStore(id, models.UserPoint{ID: id, UpdatedAt: r.now()})
	return v.(models.UserPoint)
}

func (r *balancesRepo) Put(id int64, points int64) models.UserPoint {
	p := models.UserPoint{ID: id, Points: points, UpdatedAt: r.now()}
	// UpdatedAt never goes backwards for an id, even if the wall clock does.
	if v, ok := r.rows.Load(id); ok {
		if prev := v.(models.UserPoint).UpdatedAt; p.UpdatedAt.Before(prev) {
			p.UpdatedAt = prev
		}
	}
	r.rows.Store(id, p)
	return p
}

package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/pointledger/pointledger/internal/keylock"
	"github.com/pointledger/pointledger/internal/metrics"
	"github.com/pointledger/pointledger/internal/models"
	repo "github.com/pointledger/pointledger/internal/repository"
)

// PointService is the only writer of balances and histories. Charge and Use
// for the same user run one at a time; different users never wait on each
// other.
type PointService struct {
	bal   repo.Balances
	hist  repo.Histories
	locks *keylock.Map[int64]
	now   func() time.Time
	log   *slog.Logger
}

func NewPointService(b repo.Balances, h repo.Histories, log *slog.Logger) *PointService {
	if log == nil {
		log = slog.Default()
	}
	return &PointService{
		bal:   b,
		hist:  h,
		locks: keylock.New[int64](),
		now:   time.Now,
		log:   log,
	}
}

// ----------------- Queries -----------------

func (s *PointService) GetBalance(id int64) models.UserPoint { return s.bal.Get(id) }

func (s *PointService) GetHistory(id int64) []models.PointHistory { return s.hist.ListByUser(id) }

// ----------------- Mutations -----------------

func (s *PointService) Charge(id, amount int64) (models.UserPoint, error) {
	return s.apply(id, amount, models.TxnCharge, func(cur models.UserPoint) (models.UserPoint, error) {
		return cur.Charge(amount, s.now())
	})
}

func (s *PointService) Use(id, amount int64) (models.UserPoint, error) {
	return s.apply(id, amount, models.TxnUse, func(cur models.UserPoint) (models.UserPoint, error) {
		return cur.Use(amount, s.now())
	})
}

// apply runs read, transition, history append and balance write as one unit
// under id's lock. A rejected transition returns before either write.
func (s *PointService) apply(id, amount int64, typ models.TransactionType, step func(models.UserPoint) (models.UserPoint, error)) (models.UserPoint, error) {
	var out models.UserPoint
	err := s.locks.Do(id, func() error {
		cur := s.bal.Get(id)
		next, err := step(cur)
		if err != nil {
			return err
		}
		// stamped with the prior state's time, not the new balance's
		s.hist.Append(id, amount, typ, cur.UpdatedAt)
		out = s.bal.Put(id, next.Points)
		return nil
	})

	label := strings.ToLower(string(typ))
	if err != nil {
		metrics.OperationsRejected.WithLabelValues(label, reason(err)).Inc()
		s.log.Debug("point op rejected", "type", label, "user_id", id, "amount", amount, "err", err)
		return models.UserPoint{}, err
	}
	metrics.OperationsTotal.WithLabelValues(label).Inc()
	s.log.Debug("point op applied", "type", label, "user_id", id, "amount", amount, "points", out.Points)
	return out, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, models.ErrBalanceLimitExceeded):
		return "balance_limit_exceeded"
	case errors.Is(err, models.ErrInsufficientBalance):
		return "insufficient_balance"
	default:
		return "other"
	}
}

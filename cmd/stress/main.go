// Command stress hammers an in-process point ledger with concurrent charge and
// use calls and checks that every user's history replays to their balance.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pointledger/pointledger/internal/logger"
	"github.com/pointledger/pointledger/internal/models"
	"github.com/pointledger/pointledger/internal/repository/memory"
	"github.com/pointledger/pointledger/internal/services"
	"github.com/pointledger/pointledger/internal/worker"
)

type result struct {
	applied  atomic.Int64
	rejected atomic.Int64
}

func main() {
	users := flag.Int("users", 8, "distinct user ids")
	requests := flag.Int("requests", 10000, "total operations")
	amount := flag.Int64("amount", 100, "points per operation")
	workers := flag.Int("workers", 32, "concurrent workers")
	flag.Parse()

	log := logger.New(os.Getenv("APP_ENV"))
	if err := run(log, *users, *requests, *amount, *workers); err != nil {
		log.Error("stress", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, users, requests int, amount int64, workers int) error {
	if users < 1 || requests < 1 || amount < 1 {
		return errors.New("users, requests and amount must be positive")
	}
	repos := memory.NewRepositories(nil)
	svc := services.NewPointService(repos.Balances, repos.Histories, logger.Discard())

	var res result
	wp := worker.NewPool(workers)
	start := time.Now()
	for i := 0; i < requests; i++ {
		id := int64(i%users) + 1
		use := i%3 == 2
		wp.Submit(func() {
			var err error
			if use {
				_, err = svc.Use(id, amount)
			} else {
				_, err = svc.Charge(id, amount)
			}
			if err != nil {
				res.rejected.Add(1)
				return
			}
			res.applied.Add(1)
		})
	}
	wp.Wait()
	wp.Stop()
	elapsed := time.Since(start)

	if err := verify(svc, users); err != nil {
		return err
	}
	log.Info("stress done",
		"users", users,
		"requests", requests,
		"applied", res.applied.Load(),
		"rejected", res.rejected.Load(),
		"elapsed", elapsed,
	)
	return nil
}

// verify checks every user's history against their balance.
func verify(svc *services.PointService, users int) error {
	var g errgroup.Group
	g.SetLimit(4)
	for u := 1; u <= users; u++ {
		id := int64(u)
		g.Go(func() error {
			bal := svc.GetBalance(id)
			if got := models.Replay(svc.GetHistory(id)); got != bal.Points {
				return fmt.Errorf("user %d: history replays to %d, balance is %d", id, got, bal.Points)
			}
			if bal.Points < 0 || bal.Points > models.MaxBalance {
				return fmt.Errorf("user %d: balance %d out of range", id, bal.Points)
			}
			return nil
		})
	}
	return g.Wait()
}

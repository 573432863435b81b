// Package reconcile credits referral commission that was not credited
// when its entry was created.
package reconcile

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
	batchLimit    = 500
	workers       = 8
)

type Accruer interface {
	Uncredited(ctx context.Context, limit int) ([]int, error)
	Accrue(ctx context.Context, entryID int) (bool, error)
}

type Service struct {
	accruer    Accruer
	workerPool WorkerPoolI
	limit      uint32
	interval   time.Duration
	retryDelay time.Duration

	inFlight sync.Map
}

func New(accruer Accruer, interval time.Duration) *Service {
	return &Service{
		accruer:    accruer,
		workerPool: NewWorkerPool(workers),
		limit:      batchLimit,
		interval:   interval,
		retryDelay: retryInterval,
	}
}

// Run polls until ctx is done, then drains the worker pool.
func (s *Service) Run(ctx context.Context) {
	zap.L().Info("referral reconciler started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("referral reconciler stopped")
			return
		case <-ticker.C:
			s.ReconcileOnce(ctx)
		}
	}
}

// ReconcileOnce accrues one batch of uncredited entries and returns how
// many were credited.
func (s *Service) ReconcileOnce(ctx context.Context) int {
	ids, err := s.accruer.Uncredited(ctx, int(atomic.LoadUint32(&s.limit)))
	if err != nil {
		zap.L().Error("failed to fetch uncredited entries", zap.Error(err))
		return 0
	}
	if len(ids) == 0 {
		return 0
	}

	var (
		g        errgroup.Group
		done     sync.WaitGroup
		credited atomic.Int64
	)
	for _, id := range ids {
		if _, loaded := s.inFlight.LoadOrStore(id, struct{}{}); loaded {
			continue
		}

		done.Add(1)
		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer done.Done()
				defer s.inFlight.Delete(id)
				ok, err := s.handleEntry(ctx, id)
				if ok {
					credited.Add(1)
				}
				return err
			})
			if err != nil {
				done.Done()
				s.inFlight.Delete(id)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error scheduling reconcile tasks", zap.Error(err))
	}
	done.Wait()

	n := int(credited.Load())
	zap.L().Info("reconcile pass finished", zap.Int("candidates", len(ids)), zap.Int("credited", n))
	return n
}

func (s *Service) handleEntry(ctx context.Context, entryID int) (bool, error) {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var ok bool
		ok, err = s.accruer.Accrue(ctx, entryID)
		if err == nil {
			return ok, nil
		}
		if attempt == maxRetries {
			break
		}

		retryAfter := s.retryDelay * time.Duration(attempt)
		zap.L().Warn("accrual failed, retrying", zap.Int("entry_id", entryID), zap.Int("attempt", attempt), zap.Duration("retryAfter", retryAfter))
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(retryAfter):
		}
	}
	return false, fmt.Errorf("failed to accrue entry %d after %d retries: %w", entryID, maxRetries, err)
}

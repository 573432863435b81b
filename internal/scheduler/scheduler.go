// Package scheduler settles due dividends on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Settler interface {
	SettleDue(ctx context.Context, now time.Time) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	settler Settler
	now     func() time.Time
}

func New(settler Settler, spec string) (*Scheduler, error) {
	logger := cronLogger{log: zap.L().Named("cron")}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		settler: settler,
		now:     time.Now,
	}
	if _, err := s.cron.AddFunc(spec, s.settle); err != nil {
		return nil, fmt.Errorf("invalid settle schedule %q: %w", spec, err)
	}
	return s, nil
}

// Run starts the cron loop and blocks until ctx is done and the running
// job, if any, has returned.
func (s *Scheduler) Run(ctx context.Context) {
	zap.L().Info("payout scheduler started", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	zap.L().Info("payout scheduler stopped")
}

func (s *Scheduler) settle() {
	n, err := s.settler.SettleDue(context.Background(), s.now().UTC())
	if err != nil {
		zap.L().Error("scheduled settlement finished with errors", zap.Int("settled", n), zap.Error(err))
		return
	}
	zap.L().Info("scheduled settlement finished", zap.Int("settled", n))
}

// cronLogger routes cron's logr-style calls to zap.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/prizepool/internal/config"
	"github.com/GlebRadaev/prizepool/internal/handlers"
	"github.com/GlebRadaev/prizepool/internal/pg"
	"github.com/GlebRadaev/prizepool/internal/reconcile"
	"github.com/GlebRadaev/prizepool/internal/repo"
	"github.com/GlebRadaev/prizepool/internal/scheduler"
	"github.com/GlebRadaev/prizepool/internal/service"
	"github.com/GlebRadaev/prizepool/pkg/logger"
	"github.com/GlebRadaev/prizepool/pkg/ratelimit"
)

const (
	shutdownTimeout     = 5 * time.Second
	limiterCleanupEvery = 10 * time.Minute
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg       *config.Config
	api       *handlers.Handlers
	srv       *service.Services
	repo      *repo.Repositories
	reconcile *reconcile.Service
	scheduler *scheduler.Scheduler
	limiter   *ratelimit.RateLimiter

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}

	err = logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, cfg)
	a.limiter = ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	a.api = handlers.New(a.srv, a.limiter)
	a.reconcile = reconcile.New(a.srv.ReferralService, cfg.ReconcileInterval)
	a.scheduler, err = scheduler.New(a.srv.PayoutService, cfg.SettleSchedule)
	if err != nil {
		return fmt.Errorf("can't build payout scheduler: %w", err)
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	a.startBackground(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully",
		zap.String("payment_mode", cfg.PaymentMode),
		zap.String("settle_schedule", cfg.SettleSchedule),
	)
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

// startBackground runs the referral reconciler, the payout scheduler and
// the rate limiter janitor until ctx is done.
func (a *Application) startBackground(ctx context.Context) {
	a.wg.Add(3)
	go func() {
		defer a.wg.Done()
		a.reconcile.Run(ctx)
	}()
	go func() {
		defer a.wg.Done()
		a.scheduler.Run(ctx)
	}()
	go func() {
		defer a.wg.Done()
		ticker := time.NewTicker(limiterCleanupEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := a.limiter.Cleanup(limiterCleanupEvery); n > 0 {
					zap.L().Debug("rate limiters evicted", zap.Int("count", n))
				}
			}
		}
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}

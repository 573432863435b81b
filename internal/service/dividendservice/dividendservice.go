package dividendservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

type Repo interface {
	SpendByUser(ctx context.Context, start time.Time, end time.Time) ([]domain.UserSpend, error)
	CreateAllocation(ctx context.Context, allocation *domain.Allocation, dividends []domain.Dividend) (*domain.Allocation, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Dividend, error)
	ListPending(ctx context.Context) ([]domain.Dividend, error)
}

type Config struct {
	// SharePercent of net profit goes to the pool when no pool is given.
	SharePercent decimal.Decimal
	// MinPayout is the smallest share paid out on its own.
	MinPayout decimal.Decimal
}

// AllocateRequest carries either Pool or NetProfit. SharePercent
// overrides the configured share for a NetProfit request.
type AllocateRequest struct {
	Pool          decimal.Decimal
	NetProfit     decimal.Decimal
	SharePercent  decimal.Decimal
	PeriodStart   time.Time
	PeriodEnd     time.Time
	DrawnAt       time.Time
	CompetitionID *int
}

type AllocationResult struct {
	Allocation *domain.Allocation
	Dividends  []domain.Dividend
}

type Service struct {
	dividendRepo Repo
	cfg          Config
	now          func() time.Time
}

func New(repo Repo, cfg Config) *Service {
	return &Service{
		dividendRepo: repo,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *Service) pool(req AllocateRequest) (decimal.Decimal, error) {
	pool := req.Pool
	if pool.IsZero() && !req.NetProfit.IsZero() {
		pct := req.SharePercent
		if pct.IsZero() {
			pct = s.cfg.SharePercent
		}
		if !pct.IsPositive() || pct.GreaterThan(hundred) {
			return decimal.Zero, fmt.Errorf("%w: share percent must be within (0, 100]", domain.ErrValidation)
		}
		pool = req.NetProfit.Mul(pct).Div(hundred).RoundDown(2)
	}
	if !pool.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: profit pool must be positive", domain.ErrValidation)
	}
	if !pool.Equal(pool.Round(2)) {
		return decimal.Zero, fmt.Errorf("%w: profit pool must be whole pence", domain.ErrValidation)
	}
	return pool, nil
}

// Allocate distributes a profit pool over everyone who spent in the period,
// in proportion to their spend. All dividend rows are written together or
// not at all.
func (s *Service) Allocate(ctx context.Context, req AllocateRequest) (*AllocationResult, error) {
	pool, err := s.pool(req)
	if err != nil {
		return nil, err
	}
	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end must be after period start", domain.ErrValidation)
	}
	drawnAt := req.DrawnAt
	if drawnAt.IsZero() {
		drawnAt = s.now()
	}
	drawnAt = drawnAt.UTC()

	spends, err := s.dividendRepo.SpendByUser(ctx, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	total := decimal.Zero
	for _, sp := range spends {
		total = total.Add(sp.Spent)
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: no spend in the period, nothing to allocate", domain.ErrValidation)
	}

	allocation := &domain.Allocation{
		Pool:          pool,
		TotalSpend:    total,
		PeriodStart:   req.PeriodStart,
		PeriodEnd:     req.PeriodEnd,
		DrawnAt:       drawnAt,
		CompetitionID: req.CompetitionID,
	}
	dividends := s.dividends(allocation, Apportion(pool, spends))

	allocation, err = s.dividendRepo.CreateAllocation(ctx, allocation, dividends)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: competition already allocated", err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.Unavailable(err)
	}

	counts := make(map[string]int)
	for _, d := range dividends {
		counts[d.Type]++
	}
	for t, n := range counts {
		metrics.DividendsAllocated(t, n)
	}
	zap.L().Info("profit pool allocated",
		zap.Int("allocation_id", allocation.ID),
		zap.String("pool", pool.StringFixed(2)),
		zap.String("total_spend", total.StringFixed(2)),
		zap.Int("users", len(spends)),
		zap.Int("dividends", len(dividends)),
	)
	return &AllocationResult{Allocation: allocation, Dividends: dividends}, nil
}

// dividends turns shares into pending immediate and deferred rows. Parts
// that round to nothing are not written.
func (s *Service) dividends(a *domain.Allocation, shares []Share) []domain.Dividend {
	immediateAt := ImmediatePayableAt(a.DrawnAt)
	deferredAt := DeferredPayableAt(a.DrawnAt)

	var dividends []domain.Dividend
	for _, share := range shares {
		if share.Amount.IsZero() {
			continue
		}
		rollUp := share.Amount.LessThan(s.cfg.MinPayout)
		immediate, deferred := Split(share.Amount)
		for _, part := range []struct {
			typ       string
			amount    decimal.Decimal
			payableAt time.Time
		}{
			{domain.DividendImmediate, immediate, immediateAt},
			{domain.DividendDeferred, deferred, deferredAt},
		} {
			if part.amount.IsZero() {
				continue
			}
			dividends = append(dividends, domain.Dividend{
				UserID:       share.UserID,
				Amount:       part.amount,
				PeriodStart:  a.PeriodStart,
				PeriodEnd:    a.PeriodEnd,
				Type:         part.typ,
				PayoutMethod: share.PayoutMethod,
				Status:       domain.DividendPending,
				RollUp:       rollUp,
				PayableAt:    part.payableAt,
			})
		}
	}
	return dividends
}

func (s *Service) ListForUser(ctx context.Context, userID int) ([]domain.Dividend, error) {
	dividends, err := s.dividendRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return dividends, nil
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Dividend, error) {
	dividends, err := s.dividendRepo.ListPending(ctx)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return dividends, nil
}

package ledgerservice

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	UserSummary(ctx context.Context, userID int) (*domain.UserSummary, error)
	PlatformTotals(ctx context.Context) (*domain.PlatformTotals, error)
}

// Service only reads. A failed query is reported as unavailable, never as
// an empty ledger.
type Service struct {
	ledgerRepo Repo
}

func New(repo Repo) *Service {
	return &Service{ledgerRepo: repo}
}

func (s *Service) UserSummary(ctx context.Context, userID int) (*domain.UserSummary, error) {
	summary, err := s.ledgerRepo.UserSummary(ctx, userID)
	if err != nil {
		zap.L().Error("failed to read user summary", zap.Int("user_id", userID), zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	if summary == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	return summary, nil
}

func (s *Service) PlatformTotals(ctx context.Context) (*domain.PlatformTotals, error) {
	totals, err := s.ledgerRepo.PlatformTotals(ctx)
	if err != nil {
		zap.L().Error("failed to read platform totals", zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	return totals, nil
}

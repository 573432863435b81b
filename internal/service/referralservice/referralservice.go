package referralservice

import (
	"context"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// commissionPlaces keeps 10% of any whole-pence amount exact.
const commissionPlaces = 4

var hundred = decimal.NewFromInt(100)

type Repo interface {
	FindTarget(ctx context.Context, entryID int) (*domain.ReferralTarget, error)
	Credit(ctx context.Context, credit *domain.ReferralCredit, referrerID int) (bool, error)
	ListByReferrer(ctx context.Context, referrerID int) ([]domain.Referral, error)
	ListUncreditedEntries(ctx context.Context, limit int) ([]int, error)
}

type Service struct {
	referralRepo Repo
}

func New(repo Repo) *Service {
	return &Service{referralRepo: repo}
}

func Commission(amount, percentage decimal.Decimal) decimal.Decimal {
	return amount.Mul(percentage).Div(hundred).Round(commissionPlaces)
}

// Accrue credits the referrer of the entry's user. It is safe to call any
// number of times for the same entry: only the first call credits.
func (s *Service) Accrue(ctx context.Context, entryID int) (bool, error) {
	target, err := s.referralRepo.FindTarget(ctx, entryID)
	if err != nil {
		return false, domain.Unavailable(err)
	}
	if target == nil {
		return false, nil
	}

	credit := &domain.ReferralCredit{
		ReferralID: target.ReferralID,
		EntryID:    target.EntryID,
		Amount:     Commission(target.AmountPaid, target.EarningsPercentage),
	}
	credited, err := s.referralRepo.Credit(ctx, credit, target.ReferrerID)
	if err != nil {
		return false, domain.Unavailable(err)
	}
	if !credited {
		zap.L().Debug("referral already credited", zap.Int("entry_id", entryID))
		return false, nil
	}

	metrics.ReferralCredited()
	zap.L().Info("referral commission credited",
		zap.Int("entry_id", entryID),
		zap.Int("referrer_id", target.ReferrerID),
		zap.String("amount", credit.Amount.String()),
	)
	return true, nil
}

// Uncredited lists entries still waiting for their commission.
func (s *Service) Uncredited(ctx context.Context, limit int) ([]int, error) {
	ids, err := s.referralRepo.ListUncreditedEntries(ctx, limit)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return ids, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int) ([]domain.Referral, error) {
	referrals, err := s.referralRepo.ListByReferrer(ctx, userID)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return referrals, nil
}

package payoutservice

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

type Repo interface {
	MarkPaid(ctx context.Context, id int, paidAt time.Time, minPayout decimal.Decimal) ([]domain.Dividend, error)
	ListDue(ctx context.Context, now time.Time) ([]domain.Dividend, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type Service struct {
	dividendRepo Repo
	userRepo     UserRepo
	gateway      TransferGateway
	minPayout    decimal.Decimal
	now          func() time.Time
}

func New(dividendRepo Repo, userRepo UserRepo, gateway TransferGateway, minPayout decimal.Decimal) *Service {
	return &Service{
		dividendRepo: dividendRepo,
		userRepo:     userRepo,
		gateway:      gateway,
		minPayout:    minPayout,
		now:          time.Now,
	}
}

// MarkPaid settles one pending dividend. A rolled-up dividend is settled
// with the rest of the user's due rolled-up dividends, and is refused while
// their total is below the minimum payout. Site credit lands on the user's
// balance in the same transaction; a bank transfer is instructed after the
// dividends are committed as paid.
func (s *Service) MarkPaid(ctx context.Context, id int) (*domain.Dividend, error) {
	paid, err := s.settle(ctx, id)
	if err != nil {
		return nil, err
	}
	return &paid[0], nil
}

func (s *Service) settle(ctx context.Context, id int) ([]domain.Dividend, error) {
	paid, err := s.dividendRepo.MarkPaid(ctx, id, s.now().UTC(), s.minPayout)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: dividend %d", err, id)
		}
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, domain.Unavailable(err)
	}

	for _, d := range paid {
		metrics.PayoutSettled(d.PayoutMethod)
		zap.L().Info("dividend paid",
			zap.Int("dividend_id", d.ID),
			zap.Int("user_id", d.UserID),
			zap.String("method", d.PayoutMethod),
			zap.String("amount", d.Amount.StringFixed(2)),
			zap.Bool("roll_up", d.RollUp),
		)
	}
	if paid[0].PayoutMethod == domain.PayoutBankTransfer {
		s.instructTransfer(ctx, paid)
	}
	return paid, nil
}

// instructTransfer sends one transfer for the whole batch. Failures leave
// the dividends paid; the error log is the record for a manual transfer.
func (s *Service) instructTransfer(ctx context.Context, paid []domain.Dividend) {
	first := paid[0]
	user, err := s.userRepo.FindByID(ctx, first.UserID)
	if err != nil || user == nil {
		zap.L().Error("can't load bank details for transfer", zap.Int("dividend_id", first.ID), zap.Error(err))
		return
	}
	if user.BankSortCode == nil || user.BankAccountNumber == nil {
		zap.L().Error("user has no bank details, transfer not sent", zap.Int("dividend_id", first.ID), zap.Int("user_id", first.UserID))
		return
	}

	amount := decimal.Zero
	ids := make([]int, len(paid))
	for i, d := range paid {
		amount = amount.Add(d.Amount)
		ids[i] = d.ID
	}
	err = s.gateway.Send(ctx, Transfer{
		DividendID:    first.ID,
		UserID:        first.UserID,
		Amount:        amount,
		SortCode:      *user.BankSortCode,
		AccountNumber: *user.BankAccountNumber,
		Reference:     fmt.Sprintf("dividend-%d", first.ID),
	})
	if err != nil {
		zap.L().Error("bank transfer not sent", zap.Ints("dividend_ids", ids), zap.Error(err))
	}
}

// SettleDue pays every site credit dividend that is due. Rolled-up
// dividends of a user wait until their due total reaches the minimum
// payout and are then paid as one batch. It returns how many dividends
// were paid.
func (s *Service) SettleDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.dividendRepo.ListDue(ctx, now)
	if err != nil {
		return 0, domain.Unavailable(err)
	}

	var ids []int
	rolled := make(map[int][]domain.Dividend)
	var users []int
	for _, d := range due {
		if !d.RollUp {
			ids = append(ids, d.ID)
			continue
		}
		if _, ok := rolled[d.UserID]; !ok {
			users = append(users, d.UserID)
		}
		rolled[d.UserID] = append(rolled[d.UserID], d)
	}
	for _, userID := range users {
		total := decimal.Zero
		for _, d := range rolled[userID] {
			total = total.Add(d.Amount)
		}
		if total.LessThan(s.minPayout) {
			continue
		}
		// the rest of the batch is paid with the first
		ids = append(ids, rolled[userID][0].ID)
	}

	var (
		settled int
		errs    []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		paid, err := s.settle(ctx, id)
		switch {
		case err == nil:
			settled += len(paid)
		case errors.Is(err, domain.ErrConflict):
			// paid by someone else since ListDue
		default:
			errs = append(errs, err)
		}
	}
	if settled > 0 || len(errs) > 0 {
		zap.L().Info("due dividends settled", zap.Int("settled", settled), zap.Int("due", len(due)), zap.Int("failed", len(errs)))
	}
	return settled, errors.Join(errs...)
}

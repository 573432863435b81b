package entryservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/metrics"
	"github.com/GlebRadaev/prizepool/internal/payment"
	"go.uber.org/zap"
)

const (
	paidByCard   = "card"
	paidInDemo   = "demo"
	paidByCredit = "credit"
)

type CompetitionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Competition, error)
}

type EntryRepo interface {
	Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	CreatePaidWithCredit(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Entry, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Entry, error)
}

// Accruer credits referral commission for a stored entry.
type Accruer interface {
	Accrue(ctx context.Context, entryID int) (bool, error)
}

type CheckoutResult struct {
	SessionID string
	URL       string
	// Entry is set when the checkout settled immediately.
	Entry *domain.Entry
}

type Service struct {
	competitionRepo CompetitionRepo
	entryRepo       EntryRepo
	accruer         Accruer
	processor       payment.Processor
}

func New(competitionRepo CompetitionRepo, entryRepo EntryRepo, accruer Accruer, processor payment.Processor) *Service {
	return &Service{
		competitionRepo: competitionRepo,
		entryRepo:       entryRepo,
		accruer:         accruer,
		processor:       processor,
	}
}

func (s *Service) openCompetition(ctx context.Context, id int) (*domain.Competition, error) {
	c, err := s.competitionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	if c == nil || c.Status == domain.CompetitionDraft {
		return nil, fmt.Errorf("%w: competition %d", domain.ErrNotFound, id)
	}
	if c.Status != domain.CompetitionActive || c.IsFull() {
		return nil, domain.ErrCompetitionClosed
	}
	return c, nil
}

// Checkout starts a payment for one entry. Processors that settle on the
// spot (demo mode) get the entry recorded right away, without a payment
// reference.
func (s *Service) Checkout(ctx context.Context, userID, competitionID int) (*CheckoutResult, error) {
	c, err := s.openCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	session, err := s.processor.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		UserID:        userID,
		CompetitionID: c.ID,
		Title:         c.Title,
		Amount:        c.EntryPrice,
	})
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	result := &CheckoutResult{SessionID: session.ID, URL: session.URL}
	if !session.Paid {
		return result, nil
	}

	entry, err := s.record(ctx, &domain.Entry{
		UserID:        userID,
		CompetitionID: c.ID,
		AmountPaid:    c.EntryPrice,
	}, paidInDemo)
	if err != nil {
		return nil, err
	}
	result.Entry = entry
	return result, nil
}

// HandleWebhook records the entry a verified payment paid for. Deliveries
// are retried by the processor, so a payment seen before is acknowledged
// without a second entry.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	paid, err := s.processor.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			zap.L().Warn("webhook signature rejected", zap.Error(err))
			return fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if paid == nil {
		return nil
	}

	existing, err := s.entryRepo.FindByPaymentIntent(ctx, paid.PaymentIntentID)
	if err != nil {
		return domain.Unavailable(err)
	}
	if existing != nil {
		zap.L().Info("payment already recorded", zap.String("payment_intent_id", paid.PaymentIntentID), zap.Int("entry_id", existing.ID))
		return nil
	}

	ref := paid.PaymentIntentID
	_, err = s.record(ctx, &domain.Entry{
		UserID:          paid.UserID,
		CompetitionID:   paid.CompetitionID,
		PaymentIntentID: &ref,
		AmountPaid:      paid.Amount,
	}, paidByCard)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return nil
	case errors.Is(err, domain.ErrCompetitionClosed):
		// the card was charged but no slot is left; acknowledging stops
		// redelivery and the log line is what support refunds from
		zap.L().Error("paid entry rejected, refund required",
			zap.String("payment_intent_id", ref),
			zap.Int("user_id", paid.UserID),
			zap.Int("competition_id", paid.CompetitionID),
		)
		return nil
	}
	return err
}

// EnterWithCredit pays the entry price from the user's site credit.
func (s *Service) EnterWithCredit(ctx context.Context, userID, competitionID int) (*domain.Entry, error) {
	c, err := s.openCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, &domain.Entry{
		UserID:        userID,
		CompetitionID: c.ID,
		AmountPaid:    c.EntryPrice,
	}, paidByCredit)
}

func (s *Service) record(ctx context.Context, entry *domain.Entry, paidWith string) (*domain.Entry, error) {
	var err error
	if paidWith == paidByCredit {
		entry, err = s.entryRepo.CreatePaidWithCredit(ctx, entry)
	} else {
		entry, err = s.entryRepo.Create(ctx, entry)
	}
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrInsufficientCredit) {
			return nil, err
		}
		return nil, domain.Unavailable(err)
	}

	metrics.EntryCreated(paidWith)
	zap.L().Info("entry recorded",
		zap.Int("entry_id", entry.ID),
		zap.Int("user_id", entry.UserID),
		zap.Int("competition_id", entry.CompetitionID),
		zap.String("paid_with", paidWith),
	)

	// the entry stands even when the commission cannot be credited now;
	// the reconciler picks it up later
	if _, err := s.accruer.Accrue(ctx, entry.ID); err != nil {
		zap.L().Error("referral accrual deferred", zap.Int("entry_id", entry.ID), zap.Error(err))
	}
	return entry, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int) ([]domain.Entry, error) {
	entries, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return entries, nil
}

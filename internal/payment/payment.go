// Package payment hides the card processor behind Processor. The
// implementation is chosen once at startup.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

type CheckoutRequest struct {
	UserID        int
	CompetitionID int
	Title         string
	Amount        decimal.Decimal
}

type Session struct {
	ID  string
	URL string
	// Paid is set when the session settled without a processor round trip.
	Paid bool
}

// CompletedPayment is a verified payment reported by the processor.
type CompletedPayment struct {
	PaymentIntentID string
	UserID          int
	CompetitionID   int
	Amount          decimal.Decimal
}

type Processor interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	// ParseWebhook verifies the signature before reading the payload. It
	// returns nil, nil for events that do not complete a payment.
	ParseWebhook(payload []byte, signature string) (*CompletedPayment, error)
}

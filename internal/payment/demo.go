package payment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Demo never charges. Every session is reported as paid so the entry is
// recorded straight away.
type Demo struct {
	publicURL string
}

func NewDemo(publicURL string) *Demo {
	return &Demo{publicURL: publicURL}
}

func (d *Demo) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (*Session, error) {
	id := "demo_" + uuid.NewString()
	q := url.Values{}
	q.Set("session_id", id)
	q.Set("competition_id", strconv.Itoa(req.CompetitionID))

	zap.L().Info("demo checkout",
		zap.String("session_id", id),
		zap.Int("user_id", req.UserID),
		zap.Int("competition_id", req.CompetitionID),
		zap.String("amount", req.Amount.StringFixed(2)),
	)
	return &Session{
		ID:   id,
		URL:  d.publicURL + "/checkout/success?" + q.Encode(),
		Paid: true,
	}, nil
}

// ParseWebhook rejects everything: there is no shared secret to verify against.
func (d *Demo) ParseWebhook([]byte, string) (*CompletedPayment, error) {
	return nil, fmt.Errorf("%w: webhooks are disabled in demo mode", ErrInvalidSignature)
}

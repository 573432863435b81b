package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const (
	metaUserID        = "user_id"
	metaCompetitionID = "competition_id"
)

type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	PublicURL     string
}

type Stripe struct {
	sessions      sessionCreator
	webhookSecret string
	currency      string
	publicURL     string
}

func NewStripe(cfg StripeConfig) *Stripe {
	sc := client.New(cfg.SecretKey, nil)
	return newStripe(sc.CheckoutSessions, cfg)
}

func newStripe(sessions sessionCreator, cfg StripeConfig) *Stripe {
	return &Stripe{
		sessions:      sessions,
		webhookSecret: cfg.WebhookSecret,
		currency:      cfg.Currency,
		publicURL:     cfg.PublicURL,
	}
}

func (s *Stripe) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(fmt.Sprintf("%s/checkout/success?session_id={CHECKOUT_SESSION_ID}&competition_id=%d", s.publicURL, req.CompetitionID)),
		CancelURL:         stripe.String(fmt.Sprintf("%s/competitions/%d", s.publicURL, req.CompetitionID)),
		ClientReferenceID: stripe.String(strconv.Itoa(req.UserID)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(s.currency),
				UnitAmount: stripe.Int64(req.Amount.Shift(2).Round(0).IntPart()),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(req.Title),
				},
			},
			Quantity: stripe.Int64(1),
		}},
	}
	params.Context = ctx
	params.AddMetadata(metaUserID, strconv.Itoa(req.UserID))
	params.AddMetadata(metaCompetitionID, strconv.Itoa(req.CompetitionID))

	cs, err := s.sessions.New(params)
	if err != nil {
		zap.L().Error("can't create checkout session", zap.Int("competition_id", req.CompetitionID), zap.Error(err))
		return nil, err
	}
	return &Session{ID: cs.ID, URL: cs.URL}, nil
}

func (s *Stripe) ParseWebhook(payload []byte, signature string) (*CompletedPayment, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
	default:
		zap.L().Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil, nil
	}
	if event.Data == nil {
		return nil, fmt.Errorf("event %s has no data", event.ID)
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("can't decode checkout session: %w", err)
	}
	if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		zap.L().Info("checkout session not paid yet", zap.String("session_id", cs.ID), zap.String("status", string(cs.PaymentStatus)))
		return nil, nil
	}
	return completedPayment(&cs)
}

func completedPayment(cs *stripe.CheckoutSession) (*CompletedPayment, error) {
	userID, err := strconv.Atoi(cs.Metadata[metaUserID])
	if err != nil {
		return nil, fmt.Errorf("session %s: bad %s metadata: %w", cs.ID, metaUserID, err)
	}
	competitionID, err := strconv.Atoi(cs.Metadata[metaCompetitionID])
	if err != nil {
		return nil, fmt.Errorf("session %s: bad %s metadata: %w", cs.ID, metaCompetitionID, err)
	}

	// sessions without a payment intent are keyed by the session id
	ref := cs.ID
	if cs.PaymentIntent != nil && cs.PaymentIntent.ID != "" {
		ref = cs.PaymentIntent.ID
	}
	return &CompletedPayment{
		PaymentIntentID: ref,
		UserID:          userID,
		CompetitionID:   competitionID,
		Amount:          decimal.New(cs.AmountTotal, -2),
	}, nil
}

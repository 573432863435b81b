package service

import (
	"testing"

	"github.com/GlebRadaev/prizepool/internal/config"
	"github.com/GlebRadaev/prizepool/internal/payment"
	"github.com/GlebRadaev/prizepool/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testConfig(mode string) *config.Config {
	return &config.Config{
		JWTSecret:           "secret",
		PublicURL:           "http://localhost:3000",
		PaymentMode:         mode,
		StripeSecretKey:     "sk_test_123",
		StripeWebhookSecret: "whsec_123",
		Currency:            "gbp",
		ProfitSharePercent:  decimal.NewFromInt(50),
		MinPayout:           decimal.NewFromInt(5),
	}
}

func TestNew(t *testing.T) {
	services := New(&repo.Repositories{}, testConfig(config.PaymentModeDemo))

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.UserService)
	assert.NotNil(t, services.CompetitionService)
	assert.NotNil(t, services.EntryService)
	assert.NotNil(t, services.ReferralService)
	assert.NotNil(t, services.DividendService)
	assert.NotNil(t, services.PayoutService)
	assert.NotNil(t, services.LedgerService)
	assert.NotNil(t, services.JWTService)
}

func TestNewProcessor(t *testing.T) {
	assert.IsType(t, &payment.Demo{}, newProcessor(testConfig(config.PaymentModeDemo)))
	assert.IsType(t, &payment.Stripe{}, newProcessor(testConfig(config.PaymentModeLive)))
}

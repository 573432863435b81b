package entryservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	competitions *MockCompetitionRepo
	entries      *MockEntryRepo
	accruer      *MockAccruer
	processor    *payment.MockProcessor
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		competitions: NewMockCompetitionRepo(ctrl),
		entries:      NewMockEntryRepo(ctrl),
		accruer:      NewMockAccruer(ctrl),
		processor:    payment.NewMockProcessor(ctrl),
	}
	service := New(m.competitions, m.entries, m.accruer, m.processor)
	defer ctrl.Finish()
	return service, m
}

func activeCompetition() *domain.Competition {
	return &domain.Competition{ID: 3, Title: "Car", EntryPrice: decimal.RequireFromString("2.50"), Status: domain.CompetitionActive}
}

func intPtr(v int) *int {
	return &v
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		prepareMock   func(m *mocks)
		expectEntry   bool
		expectedError error
	}{
		{
			name: "Demo session records the entry",
			prepareMock: func(m *mocks) {
				m.competitions.EXPECT().FindByID(ctx, 3).Return(activeCompetition(), nil)
				m.processor.EXPECT().CreateCheckoutSession(ctx, gomock.Any()).Return(&payment.Session{ID: "demo_1", URL: "http://x/checkout/success", Paid: true}, nil)
				m.entries.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.Entry) (*domain.Entry, error) {
					assert.Nil(t, e.PaymentIntentID)
					assert.True(t, e.AmountPaid.Equal(decimal.RequireFromString("2.5")))
					e.ID = 10
					return e, nil
				})
				m.accruer.EXPECT().Accrue(ctx, 10).Return(true, nil)
			},
			expectEntry: true,
		},
		{
			name: "Live session returns the processor URL only",
			prepareMock: func(m *mocks) {
				m.competitions.EXPECT().FindByID(ctx, 3).Return(activeCompetition(), nil)
				m.processor.EXPECT().CreateCheckoutSession(ctx, payment.CheckoutRequest{
					UserID: 1, CompetitionID: 3, Title: "Car", Amount: activeCompetition().EntryPrice,
				}).Return(&payment.Session{ID: "cs_1", URL: "https://checkout.stripe.com/cs_1"}, nil)
			},
		},
		{
			name: "Accrual failure keeps the entry",
			prepareMock: func(m *mocks) {
				m.competitions.EXPECT().FindByID(ctx, 3).Return(activeCompetition(), nil)
				m.processor.EXPECT().CreateCheckoutSession(ctx, gomock.Any()).Return(&payment.Session{ID: "demo_1", Paid: true}, nil)
				m.entries.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.Entry) (*domain.Entry, error) {
					e.ID = 10
					return e, nil
				})
				m.accruer.EXPECT().Accrue(ctx, 10).Return(false, domain.ErrUnavailable)
			},
			expectEntry: true,
		},
		{
			name: "Unknown competition",
			prepareMock: func(m *mocks) {
				m.competitions.EXPECT().FindByID(ctx, 3).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name: "Draft competition is hidden",
			prepareMock: func(m *mocks) {
				c := activeCompetition()
				c.Status = domain.CompetitionDraft
				m.competitions.EXPECT().FindByID(ctx, 3).Return(c, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name: "Ended competition",
			prepareMock: func(m *mocks) {
				c := activeCompetition()
				c.Status = domain.CompetitionEnded
				m.competitions.EXPECT().FindByID(ctx, 3).Return(c, nil)
			},
			expectedError: domain.ErrCompetitionClosed,
		},
		{
			name: "Full competition",
			prepareMock: func(m *mocks) {
				c := activeCompetition()
				c.MaxEntries, c.CurrentEntries = intPtr(2), 2
				m.competitions.EXPECT().FindByID(ctx, 3).Return(c, nil)
			},
			expectedError: domain.ErrConflict,
		},
		{
			name: "Processor down",
			prepareMock: func(m *mocks) {
				m.competitions.EXPECT().FindByID(ctx, 3).Return(activeCompetition(), nil)
				m.processor.EXPECT().CreateCheckoutSession(ctx, gomock.Any()).Return(nil, errors.New("timeout"))
			},
			expectedError: domain.ErrUnavailable,
		},
		{
			name: "Competition filled up meanwhile",
			prepareMock: func(m *mocks) {
				m.competitions.EXPECT().FindByID(ctx, 3).Return(activeCompetition(), nil)
				m.processor.EXPECT().CreateCheckoutSession(ctx, gomock.Any()).Return(&payment.Session{ID: "demo_1", Paid: true}, nil)
				m.entries.EXPECT().Create(ctx, gomock.Any()).Return(nil, domain.ErrCompetitionClosed)
			},
			expectedError: domain.ErrCompetitionClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			result, err := service.Checkout(ctx, 1, 3)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, result.URL+result.SessionID)
			if tt.expectEntry {
				require.NotNil(t, result.Entry)
				assert.Equal(t, 10, result.Entry.ID)
			} else {
				assert.Nil(t, result.Entry)
			}
		})
	}
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()
	paid := &payment.CompletedPayment{PaymentIntentID: "pi_1", UserID: 1, CompetitionID: 3, Amount: decimal.RequireFromString("2.50")}

	tests := []struct {
		name          string
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name: "Creates the entry",
			prepareMock: func(m *mocks) {
				m.processor.EXPECT().ParseWebhook([]byte("body"), "sig").Return(paid, nil)
				m.entries.EXPECT().FindByPaymentIntent(ctx, "pi_1").Return(nil, nil)
				m.entries.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.Entry) (*domain.Entry, error) {
					require.NotNil(t, e.PaymentIntentID)
					assert.Equal(t, "pi_1", *e.PaymentIntentID)
					e.ID = 11
					return e, nil
				})
				m.accruer.EXPECT().Accrue(ctx, 11).Return(false, nil)
			},
		},
		{
			name: "Bad signature",
			prepareMock: func(m *mocks) {
				m.processor.EXPECT().ParseWebhook([]byte("body"), "sig").Return(nil, payment.ErrInvalidSignature)
			},
			expectedError: domain.ErrUnauthorized,
		},
		{
			name: "Malformed event",
			prepareMock: func(m *mocks) {
				m.processor.EXPECT().ParseWebhook([]byte("body"), "sig").Return(nil, errors.New("bad metadata"))
			},
			expectedError: domain.ErrValidation,
		},
		{
			name: "Ignored event",
			prepareMock: func(m *mocks) {
				m.processor.EXPECT().ParseWebhook([]byte("body"), "sig").Return(nil, nil)
			},
		},
		{
			name: "Redelivery is acknowledged",
			prepareMock: func(m *mocks) {
				m.processor.EXPECT().ParseWebhook([]byte("body"), "sig").Return(paid, nil)
				m.entries.EXPECT().FindByPaymentIntent(ctx, "pi_1").Return(&domain.Entry{ID: 11}, nil)
			},
		},
		{
			name: "Concurrent redelivery is acknowledged",
			prepareMock: func(m *mocks) {
				m.processor.EXPECT().ParseWebhook([]byte("body"), "sig").Return(paid, nil)
				m.entries.EXPECT().FindByPaymentIntent(ctx, "pi_1").Return(nil, nil)
				m.entries.EXPECT().Create(ctx, gomock.Any()).Return(nil, domain.ErrDuplicate)
			},
		},
		{
			name: "Closed competition is acknowledged",
			prepareMock: func(m *mocks) {
				m.processor.EXPECT().ParseWebhook([]byte("body"), "sig").Return(paid, nil)
				m.entries.EXPECT().FindByPaymentIntent(ctx, "pi_1").Return(nil, nil)
				m.entries.EXPECT().Create(ctx, gomock.Any()).Return(nil, domain.ErrCompetitionClosed)
			},
		},
		{
			name: "Store failure is retried by the processor",
			prepareMock: func(m *mocks) {
				m.processor.EXPECT().ParseWebhook([]byte("body"), "sig").Return(paid, nil)
				m.entries.EXPECT().FindByPaymentIntent(ctx, "pi_1").Return(nil, nil)
				m.entries.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedError: domain.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			err := service.HandleWebhook(ctx, []byte("body"), "sig")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnterWithCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("Pays from site credit", func(t *testing.T) {
		service, m := NewMock(t)
		m.competitions.EXPECT().FindByID(ctx, 3).Return(activeCompetition(), nil)
		m.entries.EXPECT().CreatePaidWithCredit(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.Entry) (*domain.Entry, error) {
			e.ID = 12
			return e, nil
		})
		m.accruer.EXPECT().Accrue(ctx, 12).Return(true, nil)

		entry, err := service.EnterWithCredit(ctx, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, 12, entry.ID)
	})

	t.Run("Insufficient credit", func(t *testing.T) {
		service, m := NewMock(t)
		m.competitions.EXPECT().FindByID(ctx, 3).Return(activeCompetition(), nil)
		m.entries.EXPECT().CreatePaidWithCredit(ctx, gomock.Any()).Return(nil, domain.ErrInsufficientCredit)

		_, err := service.EnterWithCredit(ctx, 1, 3)
		assert.ErrorIs(t, err, domain.ErrInsufficientCredit)
	})
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	service, m := NewMock(t)

	m.entries.EXPECT().ListByUser(ctx, 1).Return([]domain.Entry{{ID: 1}}, nil)
	entries, err := service.ListForUser(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	m.entries.EXPECT().ListByUser(ctx, 1).Return(nil, errors.New("db error"))
	_, err = service.ListForUser(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

package entries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/dto"
	"github.com/GlebRadaev/prizepool/internal/service/entryservice"
	"github.com/GlebRadaev/prizepool/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*EntryHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func request(method, target string, userID int, id string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := req.Context()
	if userID != 0 {
		ctx = context.WithValue(ctx, auth.UserIDKey, userID)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
}

func TestCheckout(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		userID       int
		id           string
		prepareMock  func()
		expectedCode int
		expectEntry  bool
	}{
		{
			name:   "Live checkout returns the processor URL",
			userID: 1,
			id:     "7",
			prepareMock: func() {
				service.EXPECT().Checkout(gomock.Any(), 1, 7).Return(&entryservice.CheckoutResult{
					SessionID: "cs_test_1",
					URL:       "https://checkout.stripe.com/c/pay/cs_test_1",
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Demo checkout returns the entry",
			userID: 1,
			id:     "7",
			prepareMock: func() {
				service.EXPECT().Checkout(gomock.Any(), 1, 7).Return(&entryservice.CheckoutResult{
					SessionID: "demo_1",
					URL:       "http://localhost:3000/checkout/success",
					Entry:     &domain.Entry{ID: 3, UserID: 1, CompetitionID: 7, AmountPaid: decimal.RequireFromString("2.5")},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectEntry:  true,
		},
		{
			name:   "Competition full",
			userID: 1,
			id:     "7",
			prepareMock: func() {
				service.EXPECT().Checkout(gomock.Any(), 1, 7).Return(nil, domain.ErrCompetitionClosed)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Invalid id",
			userID:       1,
			id:           "-1",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Unauthorized",
			id:           "7",
			prepareMock:  func() {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.Checkout(rr, request(http.MethodPost, "/api/competitions/"+tt.id+"/checkout", tt.userID, tt.id))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.CheckoutResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.NotEmpty(t, resp.URL)
				if tt.expectEntry {
					require.NotNil(t, resp.Entry)
					assert.Equal(t, "2.50", resp.Entry.AmountPaid)
				} else {
					assert.Nil(t, resp.Entry)
				}
			}
		})
	}
}

func TestEnterWithCredit(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Entry paid from credit",
			prepareMock: func() {
				service.EXPECT().EnterWithCredit(gomock.Any(), 1, 7).Return(&domain.Entry{ID: 4, UserID: 1, CompetitionID: 7}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Insufficient credit",
			prepareMock: func() {
				service.EXPECT().EnterWithCredit(gomock.Any(), 1, 7).Return(nil, domain.ErrInsufficientCredit)
			},
			expectedCode: http.StatusPaymentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.EnterWithCredit(rr, request(http.MethodPost, "/api/competitions/7/enter-with-credit", 1, "7"))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestGetEntries(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().ListForUser(gomock.Any(), 1).Return([]domain.Entry{
		{ID: 1, UserID: 1, CompetitionID: 7, CompetitionTitle: "PS5", AmountPaid: decimal.NewFromInt(2)},
	}, nil)

	rr := httptest.NewRecorder()
	handler.GetEntries(rr, request(http.MethodGet, "/api/user/entries", 1, ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []dto.EntryResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "PS5", resp[0].CompetitionTitle)
	assert.Equal(t, "2.00", resp[0].AmountPaid)
}

func TestWebhook(t *testing.T) {
	handler, service := NewMock(t)
	payload := []byte(`{"type":"checkout.session.completed"}`)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Accepted",
			prepareMock: func() {
				service.EXPECT().HandleWebhook(gomock.Any(), payload, "t=1,v1=abc").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Bad signature",
			prepareMock: func() {
				service.EXPECT().HandleWebhook(gomock.Any(), payload, "t=1,v1=abc").
					Return(fmt.Errorf("%w: signature mismatch", domain.ErrUnauthorized))
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Store unavailable is retried by the processor",
			prepareMock: func() {
				service.EXPECT().HandleWebhook(gomock.Any(), payload, "t=1,v1=abc").Return(domain.Unavailable(assert.AnError))
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(payload))
			req.Header.Set("Stripe-Signature", "t=1,v1=abc")
			rr := httptest.NewRecorder()

			handler.Webhook(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

package account

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
	"github.com/GlebRadaev/prizepool/pkg/auth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	users     *MockUserService
	ledger    *MockLedgerService
	referrals *MockReferralService
}

func NewMock(t *testing.T) (*AccountHandler, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		users:     NewMockUserService(ctrl),
		ledger:    NewMockLedgerService(ctrl),
		referrals: NewMockReferralService(ctrl),
	}
	handler := New(m.users, m.ledger, m.referrals)
	defer ctrl.Finish()
	return handler, m
}

func withUser(req *http.Request, userID int) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, userID))
}

func TestGetProfile(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name         string
		userID       int
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Profile returned",
			userID: 1,
			prepareMock: func() {
				m.users.EXPECT().Profile(gomock.Any(), 1).Return(&domain.User{
					ID:         1,
					Email:      "player@example.com",
					SiteCredit: decimal.RequireFromString("18"),
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "User not found",
			userID: 2,
			prepareMock: func() {
				m.users.EXPECT().Profile(gomock.Any(), 2).Return(nil, fmt.Errorf("%w: user", domain.ErrNotFound))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Unauthorized",
			prepareMock:  func() {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
			if tt.userID != 0 {
				req = withUser(req, tt.userID)
			}
			rr := httptest.NewRecorder()

			handler.GetProfile(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.UserResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "18.00", resp.SiteCredit)
			}
		})
	}
}

func TestUpdatePayoutSettings(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Bank transfer saved",
			body: `{"payout_method":"bank_transfer","bank_sort_code":"12-34-56","bank_account_number":"12345678"}`,
			prepareMock: func() {
				m.users.EXPECT().UpdatePayoutSettings(gomock.Any(), 1, domain.PayoutBankTransfer, "12-34-56", "12345678").
					Return(&domain.User{ID: 1, PayoutMethod: domain.PayoutBankTransfer}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid bank details",
			body: `{"payout_method":"bank_transfer","bank_sort_code":"12"}`,
			prepareMock: func() {
				m.users.EXPECT().UpdatePayoutSettings(gomock.Any(), 1, domain.PayoutBankTransfer, "12", "").
					Return(nil, fmt.Errorf("%w: sort code must be 6 digits", domain.ErrValidation))
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid request body",
			body:         `{`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withUser(httptest.NewRequest(http.MethodPut, "/api/user/payout-settings", bytes.NewBufferString(tt.body)), 1)
			rr := httptest.NewRecorder()

			handler.UpdatePayoutSettings(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestGetSummary(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Summary returned",
			prepareMock: func() {
				m.ledger.EXPECT().UserSummary(gomock.Any(), 1).Return(&domain.UserSummary{
					UserID:           1,
					TotalSpent:       decimal.RequireFromString("100"),
					Entries:          40,
					DividendsPending: decimal.RequireFromString("42"),
					DividendsPaid:    decimal.RequireFromString("18"),
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Store unavailable is not reported as zero",
			prepareMock: func() {
				m.ledger.EXPECT().UserSummary(gomock.Any(), 1).Return(nil, domain.Unavailable(assert.AnError))
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withUser(httptest.NewRequest(http.MethodGet, "/api/user/summary", nil), 1)
			rr := httptest.NewRecorder()

			handler.GetSummary(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.SummaryResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "100.00", resp.TotalSpent)
				assert.Equal(t, "42.00", resp.DividendsPending)
				assert.Equal(t, "18.00", resp.DividendsPaid)
				assert.Equal(t, 40, resp.Entries)
			}
		})
	}
}

func TestGetReferrals(t *testing.T) {
	handler, m := NewMock(t)

	m.referrals.EXPECT().ListForUser(gomock.Any(), 1).Return([]domain.Referral{
		{ID: 1, ReferrerID: 1, RefereeID: 2, RefereeEmail: "friend@example.com",
			EarningsPercentage: decimal.NewFromInt(10), TotalEarned: decimal.RequireFromString("0.25")},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/user/referrals", nil), 1)
	rr := httptest.NewRecorder()

	handler.GetReferrals(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []dto.ReferralResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "friend@example.com", resp[0].RefereeEmail)
	assert.Equal(t, "0.2500", resp[0].TotalEarned)
	assert.Equal(t, "10", resp[0].EarningsPercentage)
}

package auth

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
	"github.com/GlebRadaev/prizepool/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)
	user := &domain.User{ID: 1, Email: "new@example.com", Role: domain.RoleUser}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful registration",
			body: `{"email":"new@example.com","password":"password123","referral_code":"2377225624"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "new@example.com", "password123", "2377225624").Return(user, nil)
				service.EXPECT().GenerateToken(user).Return("some-jwt-token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "User already exists",
			body: `{"email":"old@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "old@example.com", "password123", "").
					Return(nil, fmt.Errorf("%w: email already registered", domain.ErrConflict))
			},
			expectedCode:  http.StatusConflict,
			expectedError: "conflict: email already registered",
		},
		{
			name: "Unknown referral code",
			body: `{"email":"new@example.com","password":"password123","referral_code":"1234"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "new@example.com", "password123", "1234").
					Return(nil, fmt.Errorf("%w: invalid referral code", domain.ErrValidation))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "validation failed: invalid referral code",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Error generating token",
			body: `{"email":"new@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "new@example.com", "password123", "").Return(user, nil)
				service.EXPECT().GenerateToken(user).Return("", assert.AnError)
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/register", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var resp dto.AuthResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "some-jwt-token", resp.Token)
			assert.Equal(t, "Bearer some-jwt-token", rr.Header().Get("Authorization"))
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)
	user := &domain.User{ID: 1, Email: "player@example.com", Role: domain.RoleUser}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"email":"player@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(context.Background(), "player@example.com", "password123").Return(user, nil)
				service.EXPECT().GenerateToken(user).Return("some-jwt-token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid credentials",
			body: `{"email":"player@example.com","password":"wrong"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(context.Background(), "player@example.com", "wrong").
					Return(nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized))
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
		{
			name: "Store unavailable",
			body: `{"email":"player@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(context.Background(), "player@example.com", "password123").
					Return(nil, domain.Unavailable(assert.AnError))
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "Service temporarily unavailable",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			} else {
				assert.Equal(t, "Bearer some-jwt-token", rr.Header().Get("Authorization"))
			}
		})
	}
}

func TestRequestPasswordResetHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Reset requested",
			body: `{"email":"player@example.com"}`,
			prepareMock: func() {
				service.EXPECT().RequestPasswordReset(context.Background(), "player@example.com").Return(nil)
			},
			expectedCode: http.StatusAccepted,
		},
		{
			name: "Invalid email",
			body: `{"email":"nope"}`,
			prepareMock: func() {
				service.EXPECT().RequestPasswordReset(context.Background(), "nope").
					Return(fmt.Errorf("%w: invalid email", domain.ErrValidation))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "validation failed: invalid email",
		},
		{
			name: "Store unavailable",
			body: `{"email":"player@example.com"}`,
			prepareMock: func() {
				service.EXPECT().RequestPasswordReset(context.Background(), "player@example.com").
					Return(domain.Unavailable(assert.AnError))
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "Service temporarily unavailable",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/password-reset", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.RequestPasswordReset(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestConfirmPasswordResetHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Password updated",
			body: `{"token":"reset-token","password":"new-password"}`,
			prepareMock: func() {
				service.EXPECT().ResetPassword(context.Background(), "reset-token", "new-password").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Used or expired token",
			body: `{"token":"reset-token","password":"new-password"}`,
			prepareMock: func() {
				service.EXPECT().ResetPassword(context.Background(), "reset-token", "new-password").
					Return(fmt.Errorf("%w: reset token already used", domain.ErrUnauthorized))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid or expired reset token",
		},
		{
			name: "Short password",
			body: `{"token":"reset-token","password":"short"}`,
			prepareMock: func() {
				service.EXPECT().ResetPassword(context.Background(), "reset-token", "short").
					Return(fmt.Errorf("%w: password too short", domain.ErrValidation))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "validation failed: password too short",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/password-reset/confirm", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.ConfirmPasswordReset(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var resp dto.MessageResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "Password updated", resp.Message)
		})
	}
}

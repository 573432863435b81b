package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/stretchr/testify/assert"
)

func okHandler(t *testing.T, expectedUserID int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, expectedUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	jwtService := NewJWTService(testSecret)
	valid, _ := jwtService.GenerateJWT(42, domain.RoleUser, time.Now().Add(time.Hour))

	tests := []struct {
		name         string
		header       string
		expectedCode int
	}{
		{name: "No header", header: "", expectedCode: http.StatusUnauthorized},
		{name: "Not bearer", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "Bad token", header: "Bearer nope", expectedCode: http.StatusUnauthorized},
		{name: "Valid token", header: "Bearer " + valid, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			Middleware(jwtService)(okHandler(t, 42)).ServeHTTP(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		withUser     bool
		lookup       RoleLookup
		expectedCode int
	}{
		{
			name:     "Admin passes",
			withUser: true,
			lookup: func(ctx context.Context, userID int) (string, error) {
				return domain.RoleAdmin, nil
			},
			expectedCode: http.StatusOK,
		},
		{
			name:     "Regular user is forbidden",
			withUser: true,
			lookup: func(ctx context.Context, userID int) (string, error) {
				return domain.RoleUser, nil
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:     "Deleted user is unauthorized",
			withUser: true,
			lookup: func(ctx context.Context, userID int) (string, error) {
				return "", fmt.Errorf("%w: user 42", domain.ErrNotFound)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:     "Store down",
			withUser: true,
			lookup: func(ctx context.Context, userID int) (string, error) {
				return "", fmt.Errorf("%w: %w", domain.ErrUnavailable, errors.New("dial tcp"))
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name:     "No authenticated user",
			withUser: false,
			lookup: func(ctx context.Context, userID int) (string, error) {
				t.Fatal("lookup must not be called")
				return "", nil
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			if tt.withUser {
				r = r.WithContext(context.WithValue(r.Context(), UserIDKey, 42))
			}
			w := httptest.NewRecorder()

			AdminMiddleware(tt.lookup)(okHandler(t, 42)).ServeHTTP(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

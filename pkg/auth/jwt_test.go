package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateJWT(t *testing.T) {
	jwtService := NewJWTService(testSecret)

	tests := []struct {
		name           string
		userID         int
		role           string
		expirationTime time.Time
	}{
		{name: "User token", userID: 123, role: "user", expirationTime: time.Now().Add(time.Hour)},
		{name: "Admin token", userID: 1, role: "admin", expirationTime: time.Now().Add(time.Hour)},
		{name: "Already expired token", userID: 123, role: "user", expirationTime: time.Now().Add(-time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwtService.GenerateJWT(tt.userID, tt.role, tt.expirationTime)

			assert.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestValidateToken(t *testing.T) {
	jwtService := NewJWTService(testSecret)

	tests := []struct {
		name         string
		tokenString  string
		setup        func() string
		expectError  bool
		expectedRole string
	}{
		{
			name: "Valid Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(123, "admin", time.Now().Add(time.Hour))
				return token
			},
			expectedRole: "admin",
		},
		{
			name:        "Invalid Token",
			tokenString: "invalid.token.string",
			expectError: true,
		},
		{
			name: "Expired Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(123, "user", time.Now().Add(-time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Signed With Another Secret",
			setup: func() string {
				token, _ := NewJWTService("other-secret").GenerateJWT(123, "user", time.Now().Add(time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Missing User ID",
			setup: func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
					ExpiresAt: time.Now().Add(time.Hour).Unix(),
					Issuer:    issuer,
				})
				signedToken, _ := token.SignedString([]byte(testSecret))
				return signedToken
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString := tt.tokenString
			if tt.setup != nil {
				tokenString = tt.setup()
			}

			claims, err := jwtService.ValidateToken(tokenString)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 123, claims.UserID)
			assert.Equal(t, tt.expectedRole, claims.Role)
		})
	}
}

func TestValidateResetToken(t *testing.T) {
	jwtService := NewJWTService(testSecret)

	tests := []struct {
		name        string
		setup       func() string
		expectError bool
	}{
		{
			name: "Valid reset token",
			setup: func() string {
				token, _ := jwtService.GenerateResetToken(123, "abc123", time.Now().Add(time.Hour))
				return token
			},
		},
		{
			name: "Expired reset token",
			setup: func() string {
				token, _ := jwtService.GenerateResetToken(123, "abc123", time.Now().Add(-time.Minute))
				return token
			},
			expectError: true,
		},
		{
			name: "Session token is not a reset token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(123, "user", time.Now().Add(time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Signed with another secret",
			setup: func() string {
				token, _ := NewJWTService("other").GenerateResetToken(123, "abc123", time.Now().Add(time.Hour))
				return token
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwtService.ValidateResetToken(tt.setup())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 123, claims.UserID)
			assert.Equal(t, "abc123", claims.Fingerprint)
		})
	}
}

func TestResetTokenIsNotASession(t *testing.T) {
	jwtService := NewJWTService(testSecret)
	token, err := jwtService.GenerateResetToken(123, "abc123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)

	assert.Error(t, err)
	assert.Nil(t, claims)
}

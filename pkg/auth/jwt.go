package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	issuer      = "prizepool"
	resetIssuer = "prizepool/password-reset"
)

type JWTServiceInterface interface {
	GenerateJWT(userID int, role string, expirationTime time.Time) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GenerateResetToken(userID int, fingerprint string, expirationTime time.Time) (string, error)
	ValidateResetToken(tokenString string) (*ResetClaims, error)
}

type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// ResetClaims authorize a single password change. Fingerprint ties the token
// to the password hash it was issued against.
type ResetClaims struct {
	UserID      int    `json:"user_id"`
	Fingerprint string `json:"fpr"`
	jwt.StandardClaims
}

type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

func (s *JWTService) GenerateJWT(userID int, role string, expirationTime time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secret, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, s.keyFunc)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 || claims.Issuer != issuer {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

func (s *JWTService) GenerateResetToken(userID int, fingerprint string, expirationTime time.Time) (string, error) {
	claims := ResetClaims{
		UserID:      userID,
		Fingerprint: fingerprint,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    resetIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateResetToken rejects session tokens, as ValidateToken rejects reset
// tokens.
func (s *JWTService) ValidateResetToken(tokenString string) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, s.keyFunc)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid reset token")
	}
	claims, ok := token.Claims.(*ResetClaims)
	if !ok || claims.UserID == 0 || claims.Fingerprint == "" || claims.Issuer != resetIssuer {
		return nil, errors.New("invalid reset token claims")
	}

	return claims, nil
}

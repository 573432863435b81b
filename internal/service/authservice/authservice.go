package authservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/pkg/auth"
	"github.com/GlebRadaev/prizepool/pkg/validate"
	"go.uber.org/zap"
)

const (
	tokenTTL          = 24 * time.Hour
	resetTokenTTL     = 30 * time.Minute
	codeGenerateTries = 5
)

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID int, oldHash string, newHash string) (bool, error)
}

type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	sender      ResetSender
	newCode     func() string
	now         func() time.Time
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, sender ResetSender) *Service {
	return &Service{
		userRepo:    repo,
		hashService: hashService,
		jwtService:  jwtService,
		sender:      sender,
		newCode:     validate.NewReferralCode,
		now:         time.Now,
	}
}

// Register creates a user. A non-empty referralCode must belong to an
// existing user, who becomes the referrer.
func (s *Service) Register(ctx context.Context, email, password, referralCode string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validate.IsEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("email", email))
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	var referrerID *int
	if referralCode != "" {
		referrer, err := s.findReferrer(ctx, referralCode)
		if err != nil {
			return nil, err
		}
		referrerID = &referrer.ID
	}

	hashedPassword, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	code, err := s.freeReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
		ReferralCode: code,
		ReferrerID:   referrerID,
		PayoutMethod: domain.PayoutSiteCredit,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		zap.L().Error("can't create user", zap.Error(err))
		return nil, domain.Unavailable(err)
	}

	zap.L().Info("user successfully registered", zap.Int("user_id", newUser.ID), zap.Bool("referred", referrerID != nil))
	return newUser, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hashed, err := s.hashService.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrEmptyPassword) || errors.Is(err, auth.ErrShortPassword) {
			return "", fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		zap.L().Error("can't hash password", zap.Error(err))
		return "", err
	}
	return hashed, nil
}

func (s *Service) findReferrer(ctx context.Context, code string) (*domain.User, error) {
	if !validate.IsReferralCode(code) {
		return nil, fmt.Errorf("%w: invalid referral code", domain.ErrValidation)
	}
	referrer, err := s.userRepo.FindByReferralCode(ctx, code)
	if err != nil {
		zap.L().Error("can't find referrer", zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	if referrer == nil {
		return nil, fmt.Errorf("%w: unknown referral code", domain.ErrValidation)
	}
	return referrer, nil
}

func (s *Service) freeReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < codeGenerateTries; i++ {
		code := s.newCode()
		owner, err := s.userRepo.FindByReferralCode(ctx, code)
		if err != nil {
			zap.L().Error("can't check referral code", zap.Error(err))
			return "", domain.Unavailable(err)
		}
		if owner == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a referral code", domain.ErrConflict)
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	if user == nil || !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	zap.L().Info("user successfully authenticated", zap.Int("user_id", user.ID))
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	token, err := s.jwtService.GenerateJWT(user.ID, user.Role, s.now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// RequestPasswordReset sends a reset link to a registered email. Unknown
// emails succeed silently.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validate.IsEmail(email) {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return domain.Unavailable(err)
	}
	if user == nil {
		zap.L().Info("password reset for unknown email", zap.String("email", email))
		return nil
	}

	token, err := s.jwtService.GenerateResetToken(user.ID, passwordFingerprint(user.PasswordHash), s.now().Add(resetTokenTTL))
	if err != nil {
		zap.L().Error("can't generate reset token", zap.Int("user_id", user.ID), zap.Error(err))
		return err
	}
	if err := s.sender.SendPasswordReset(ctx, user.Email, token); err != nil {
		zap.L().Error("can't send reset link", zap.Int("user_id", user.ID), zap.Error(err))
		return domain.Unavailable(err)
	}
	return nil
}

// ResetPassword sets a new password for the holder of a valid reset token.
// A token stops working once the password it was issued against changes.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.jwtService.ValidateResetToken(token)
	if err != nil {
		zap.L().Info("reset token rejected", zap.Error(err))
		return fmt.Errorf("%w: invalid or expired reset token", domain.ErrUnauthorized)
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		zap.L().Error("can't find user", zap.Int("user_id", claims.UserID), zap.Error(err))
		return domain.Unavailable(err)
	}
	if user == nil || passwordFingerprint(user.PasswordHash) != claims.Fingerprint {
		return fmt.Errorf("%w: reset token already used", domain.ErrUnauthorized)
	}

	hashedPassword, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	updated, err := s.userRepo.UpdatePassword(ctx, user.ID, user.PasswordHash, hashedPassword)
	if err != nil {
		return domain.Unavailable(err)
	}
	if !updated {
		return fmt.Errorf("%w: reset token already used", domain.ErrUnauthorized)
	}
	zap.L().Info("password reset", zap.Int("user_id", user.ID))
	return nil
}

func passwordFingerprint(hash string) string {
	sum := sha256.Sum256([]byte(hash))
	return hex.EncodeToString(sum[:8])
}

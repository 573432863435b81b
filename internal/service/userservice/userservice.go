package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/pkg/validate"
	"go.uber.org/zap"
)

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	UpdatePayoutSettings(ctx context.Context, userID int, method string, sortCode *string, accountNumber *string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Role(ctx context.Context, userID int) (string, error)
	SetRole(ctx context.Context, userID int, role string) (bool, error)
	Delete(ctx context.Context, userID int) (bool, error)
}

type Service struct {
	userRepo Repo
}

func New(repo Repo) *Service {
	return &Service{userRepo: repo}
}

func (s *Service) Profile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get user", zap.Int("user_id", userID), zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	return user, nil
}

// UpdatePayoutSettings stores the payout preference. Switching to site
// credit clears any stored bank details.
func (s *Service) UpdatePayoutSettings(ctx context.Context, userID int, method, sortCode, accountNumber string) (*domain.User, error) {
	var sc, an *string
	switch method {
	case domain.PayoutSiteCredit:
	case domain.PayoutBankTransfer:
		if !validate.IsSortCode(sortCode) {
			return nil, fmt.Errorf("%w: sort code must be 6 digits", domain.ErrValidation)
		}
		if !validate.IsAccountNumber(accountNumber) {
			return nil, fmt.Errorf("%w: account number must be 8 digits", domain.ErrValidation)
		}
		digits := strings.ReplaceAll(sortCode, "-", "")
		sc, an = &digits, &accountNumber
	default:
		return nil, fmt.Errorf("%w: unknown payout method %q", domain.ErrValidation, method)
	}

	ok, err := s.userRepo.UpdatePayoutSettings(ctx, userID, method, sc, an)
	if err != nil {
		zap.L().Error("failed to update payout settings", zap.Int("user_id", userID), zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	zap.L().Info("payout settings updated", zap.Int("user_id", userID), zap.String("method", method))
	return s.Profile(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, domain.Unavailable(err)
	}
	return users, nil
}

// Role is looked up on every admin request so a revoked role takes effect
// without waiting for the token to expire.
func (s *Service) Role(ctx context.Context, userID int) (string, error) {
	role, err := s.userRepo.Role(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		return "", domain.Unavailable(err)
	}
	return role, nil
}

func (s *Service) SetRole(ctx context.Context, userID int, role string) error {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	ok, err := s.userRepo.SetRole(ctx, userID, role)
	if err != nil {
		zap.L().Error("failed to set role", zap.Int("user_id", userID), zap.Error(err))
		return domain.Unavailable(err)
	}
	if !ok {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	zap.L().Info("role changed", zap.Int("user_id", userID), zap.String("role", role))
	return nil
}

// Delete removes a user with their entries, dividends and referrals.
func (s *Service) Delete(ctx context.Context, adminID, userID int) error {
	if adminID == userID {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrValidation)
	}
	ok, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		zap.L().Error("failed to delete user", zap.Int("user_id", userID), zap.Error(err))
		return domain.Unavailable(err)
	}
	if !ok {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	zap.L().Info("user deleted", zap.Int("user_id", userID), zap.Int("admin_id", adminID))
	return nil
}

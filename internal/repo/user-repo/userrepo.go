package userrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// total_dividends has no column: it is summed from paid dividend rows.
const selectUser = `SELECT id, email, password_hash, role, referral_code, referrer_id, payout_method, bank_sort_code, bank_account_number, site_credit, total_spent, total_referral_earnings, COALESCE((SELECT SUM(d.amount) FROM dividends d WHERE d.user_id = users.id AND d.status = 'paid'), 0), created_at FROM users`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return repo.findOne(ctx, selectUser+" WHERE id = $1", id)
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return repo.findOne(ctx, selectUser+" WHERE email = $1", email)
}

func (repo *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return repo.findOne(ctx, selectUser+" WHERE referral_code = $1", code)
}

func (repo *Repository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// Create stores the user and, when a referrer is set, the referral row
// linking the two in the same transaction.
func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, role, referral_code, referrer_id, payout_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := repo.txManager.Begin(ctx, func(ctx context.Context) error {
		err := repo.db.QueryRow(ctx, query,
			user.Email, user.PasswordHash, user.Role, user.ReferralCode, user.ReferrerID, user.PayoutMethod,
		).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			return err
		}
		if user.ReferrerID == nil {
			return nil
		}
		_, err = repo.db.Exec(ctx,
			"INSERT INTO referrals (referrer_id, referee_id, earnings_percentage) VALUES ($1, $2, $3)",
			*user.ReferrerID, user.ID, domain.ReferralPercentage,
		)
		return err
	})
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email or referral code already taken", domain.ErrConflict)
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) UpdatePayoutSettings(ctx context.Context, userID int, method string, sortCode, accountNumber *string) (bool, error) {
	query := `
		UPDATE users
		SET payout_method = $1, bank_sort_code = $2, bank_account_number = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := repo.db.Exec(ctx, query, method, sortCode, accountNumber, userID)
	if err != nil {
		zap.L().Error("can't update payout settings", zap.Int("user_id", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdatePassword swaps the hash only while it still equals oldHash, so a
// reset token issued against oldHash works once.
func (repo *Repository) UpdatePassword(ctx context.Context, userID int, oldHash, newHash string) (bool, error) {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2 AND password_hash = $3
	`
	tag, err := repo.db.Exec(ctx, query, newHash, userID, oldHash)
	if err != nil {
		zap.L().Error("can't update password", zap.Int("user_id", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (repo *Repository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := repo.db.Query(ctx, selectUser+" ORDER BY created_at DESC")
	if err != nil {
		zap.L().Error("failed to fetch users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			zap.L().Error("failed to scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (repo *Repository) Role(ctx context.Context, userID int) (string, error) {
	var role string
	err := repo.db.QueryRow(ctx, "SELECT role FROM users WHERE id = $1", userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		zap.L().Error("can't load user role", zap.Int("user_id", userID), zap.Error(err))
		return "", err
	}
	return role, nil
}

func (repo *Repository) SetRole(ctx context.Context, userID int, role string) (bool, error) {
	tag, err := repo.db.Exec(ctx, "UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2", role, userID)
	if err != nil {
		zap.L().Error("can't update user role", zap.Int("user_id", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the user; entries, dividends and referrals go with it
// through ON DELETE CASCADE.
func (repo *Repository) Delete(ctx context.Context, userID int) (bool, error) {
	tag, err := repo.db.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		zap.L().Error("can't delete user", zap.Int("user_id", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.ReferralCode, &u.ReferrerID, &u.PayoutMethod,
		&u.BankSortCode, &u.BankAccountNumber, &u.SiteCredit, &u.TotalSpent, &u.TotalReferralEarnings, &u.TotalDividends, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

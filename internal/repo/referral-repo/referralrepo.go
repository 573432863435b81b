package referralrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

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

// FindTarget loads the entry and the referral of the user who made it.
// It returns nil when the entry's user was not referred.
func (r *Repository) FindTarget(ctx context.Context, entryID int) (*domain.ReferralTarget, error) {
	query := `
		SELECT e.id, e.amount_paid, r.id, r.referrer_id, r.earnings_percentage
		FROM entries e
		JOIN referrals r ON r.referee_id = e.user_id
		WHERE e.id = $1
	`
	var t domain.ReferralTarget
	err := r.db.QueryRow(ctx, query, entryID).Scan(&t.EntryID, &t.AmountPaid, &t.ReferralID, &t.ReferrerID, &t.EarningsPercentage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't load referral target", zap.Int("entry_id", entryID), zap.Error(err))
		return nil, err
	}
	return &t, nil
}

// Credit records the commission for one entry. The entry id is the
// idempotency key: when a credit for it already exists nothing changes
// and false is returned.
func (r *Repository) Credit(ctx context.Context, credit *domain.ReferralCredit, referrerID int) (bool, error) {
	var credited bool
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, `
			INSERT INTO referral_credits (referral_id, entry_id, amount)
			VALUES ($1, $2, $3)
			ON CONFLICT (entry_id) DO NOTHING
			RETURNING id, created_at
		`, credit.ReferralID, credit.EntryID, credit.Amount).Scan(&credit.ID, &credit.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err = r.db.Exec(ctx,
			"UPDATE referrals SET total_earned = total_earned + $1 WHERE id = $2",
			credit.Amount, credit.ReferralID,
		); err != nil {
			return err
		}
		if _, err = r.db.Exec(ctx,
			"UPDATE users SET total_referral_earnings = total_referral_earnings + $1, updated_at = NOW() WHERE id = $2",
			credit.Amount, referrerID,
		); err != nil {
			return err
		}
		credited = true
		return nil
	})
	if err != nil {
		zap.L().Error("can't credit referral", zap.Int("entry_id", credit.EntryID), zap.Error(err))
		return false, err
	}
	return credited, nil
}

func (r *Repository) ListByReferrer(ctx context.Context, referrerID int) ([]domain.Referral, error) {
	query := `
		SELECT r.id, r.referrer_id, r.referee_id, u.email, r.earnings_percentage, r.total_earned, r.created_at
		FROM referrals r
		JOIN users u ON u.id = r.referee_id
		WHERE r.referrer_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, referrerID)
	if err != nil {
		zap.L().Error("failed to fetch referrals", zap.Int("user_id", referrerID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var referrals []domain.Referral
	for rows.Next() {
		var ref domain.Referral
		err := rows.Scan(&ref.ID, &ref.ReferrerID, &ref.RefereeID, &ref.RefereeEmail, &ref.EarningsPercentage, &ref.TotalEarned, &ref.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan referral row", zap.Error(err))
			return nil, err
		}
		referrals = append(referrals, ref)
	}
	return referrals, rows.Err()
}

// ListUncreditedEntries returns ids of referred users' entries that have
// no commission recorded yet, oldest first.
func (r *Repository) ListUncreditedEntries(ctx context.Context, limit int) ([]int, error) {
	query := `
		SELECT e.id
		FROM entries e
		JOIN referrals r ON r.referee_id = e.user_id
		LEFT JOIN referral_credits rc ON rc.entry_id = e.id
		WHERE rc.id IS NULL
		ORDER BY e.id
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to fetch uncredited entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("failed to scan entry id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

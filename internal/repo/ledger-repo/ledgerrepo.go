package ledgerrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// UserSummary aggregates one user's ledger. It returns nil when the user
// does not exist; missing entries or dividends sum to zero.
func (r *Repository) UserSummary(ctx context.Context, userID int) (*domain.UserSummary, error) {
	query := `
		SELECT u.id,
			COALESCE((SELECT SUM(e.amount_paid) FROM entries e WHERE e.user_id = u.id), 0),
			(SELECT COUNT(*) FROM entries e WHERE e.user_id = u.id),
			COALESCE((SELECT SUM(d.amount) FROM dividends d WHERE d.user_id = u.id AND d.status = 'pending'), 0),
			COALESCE((SELECT SUM(d.amount) FROM dividends d WHERE d.user_id = u.id AND d.status = 'paid'), 0),
			u.total_referral_earnings,
			u.site_credit,
			(SELECT COUNT(*) FROM referrals r WHERE r.referrer_id = u.id)
		FROM users u
		WHERE u.id = $1
	`
	var s domain.UserSummary
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.TotalSpent, &s.Entries, &s.DividendsPending, &s.DividendsPaid,
		&s.ReferralEarnings, &s.SiteCredit, &s.Referrals,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't load user summary", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *Repository) PlatformTotals(ctx context.Context) (*domain.PlatformTotals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM entries),
			COALESCE((SELECT SUM(amount_paid) FROM entries), 0),
			COALESCE((SELECT SUM(amount) FROM dividends WHERE status = 'pending'), 0),
			COALESCE((SELECT SUM(amount) FROM dividends WHERE status = 'paid'), 0),
			COALESCE((SELECT SUM(site_credit) FROM users), 0)
	`
	var t domain.PlatformTotals
	err := r.db.QueryRow(ctx, query).Scan(
		&t.Users, &t.Entries, &t.TotalSpent, &t.DividendsPending, &t.DividendsPaid, &t.SiteCredit,
	)
	if err != nil {
		zap.L().Error("can't load platform totals", zap.Error(err))
		return nil, err
	}
	return &t, nil
}

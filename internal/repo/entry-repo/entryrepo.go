package entryrepo

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

// Create records a paid entry: it takes a slot in the competition, stores
// the entry and adds the amount to the user's spend, all or nothing.
func (r *Repository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	return r.create(ctx, entry, false)
}

// CreatePaidWithCredit is Create with the amount taken from site credit.
func (r *Repository) CreatePaidWithCredit(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	return r.create(ctx, entry, true)
}

func (r *Repository) create(ctx context.Context, entry *domain.Entry, fromCredit bool) (*domain.Entry, error) {
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, `
			UPDATE competitions
			SET current_entries = current_entries + 1, updated_at = NOW()
			WHERE id = $1 AND status = 'active' AND (max_entries IS NULL OR current_entries < max_entries)
		`, entry.CompetitionID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrCompetitionClosed
		}

		if fromCredit {
			tag, err = r.db.Exec(ctx,
				"UPDATE users SET site_credit = site_credit - $1, updated_at = NOW() WHERE id = $2 AND site_credit >= $1",
				entry.AmountPaid, entry.UserID,
			)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domain.ErrInsufficientCredit
			}
		}

		err = r.db.QueryRow(ctx, `
			INSERT INTO entries (user_id, competition_id, payment_intent_id, amount_paid)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, entry.UserID, entry.CompetitionID, entry.PaymentIntentID, entry.AmountPaid).Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			if pg.IsUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return err
		}

		_, err = r.db.Exec(ctx,
			"UPDATE users SET total_spent = total_spent + $1, updated_at = NOW() WHERE id = $2",
			entry.AmountPaid, entry.UserID,
		)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrConflict) && !errors.Is(err, domain.ErrInsufficientCredit) {
			zap.L().Error("can't save entry", zap.Int("user_id", entry.UserID), zap.Error(err))
		}
		return nil, err
	}
	return entry, nil
}

func (r *Repository) FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Entry, error) {
	var e domain.Entry
	err := r.db.QueryRow(ctx,
		"SELECT id, user_id, competition_id, payment_intent_id, amount_paid, created_at FROM entries WHERE payment_intent_id = $1",
		paymentIntentID,
	).Scan(&e.ID, &e.UserID, &e.CompetitionID, &e.PaymentIntentID, &e.AmountPaid, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find entry by payment intent", zap.Error(err))
		return nil, err
	}
	return &e, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int) ([]domain.Entry, error) {
	query := `
		SELECT e.id, e.user_id, e.competition_id, e.payment_intent_id, e.amount_paid, e.created_at, c.title
		FROM entries e
		JOIN competitions c ON c.id = e.competition_id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch entries", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		err := rows.Scan(&e.ID, &e.UserID, &e.CompetitionID, &e.PaymentIntentID, &e.AmountPaid, &e.CreatedAt, &e.CompetitionTitle)
		if err != nil {
			zap.L().Error("failed to scan entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) CountByCompetition(ctx context.Context, competitionID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM entries WHERE competition_id = $1", competitionID).Scan(&count)
	if err != nil {
		zap.L().Error("can't count entries", zap.Int("competition_id", competitionID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// EntryAt returns the competition's entry at the given zero-based position
// in insertion order.
func (r *Repository) EntryAt(ctx context.Context, competitionID, offset int) (*domain.Entry, error) {
	var e domain.Entry
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, competition_id, payment_intent_id, amount_paid, created_at
		FROM entries
		WHERE competition_id = $1
		ORDER BY id
		LIMIT 1 OFFSET $2
	`, competitionID, offset).Scan(&e.ID, &e.UserID, &e.CompetitionID, &e.PaymentIntentID, &e.AmountPaid, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't load entry", zap.Int("competition_id", competitionID), zap.Error(err))
		return nil, err
	}
	return &e, nil
}

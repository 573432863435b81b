package competitionrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const selectCompetition = `SELECT id, title, description, prize_image_url, entry_price, max_entries, current_entries, status, start_date, end_date, winner_id, terms_and_conditions, is_featured, created_at, updated_at FROM competitions`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, c *domain.Competition) (*domain.Competition, error) {
	query := `
		INSERT INTO competitions (title, description, prize_image_url, entry_price, max_entries, status, start_date, end_date, terms_and_conditions, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, current_entries, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		c.Title, c.Description, c.PrizeImageURL, c.EntryPrice, c.MaxEntries, c.Status,
		c.StartDate, c.EndDate, c.TermsAndConditions, c.IsFeatured,
	).Scan(&c.ID, &c.CurrentEntries, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save competition", zap.Error(err))
		return nil, err
	}
	return c, nil
}

// Update rewrites the editable fields. Status, entry count and winner
// have dedicated transitions and are left untouched.
func (r *Repository) Update(ctx context.Context, c *domain.Competition) (bool, error) {
	query := `
		UPDATE competitions
		SET title = $1, description = $2, prize_image_url = $3, entry_price = $4, max_entries = $5,
			start_date = $6, end_date = $7, terms_and_conditions = $8, is_featured = $9, updated_at = NOW()
		WHERE id = $10
	`
	tag, err := r.db.Exec(ctx, query,
		c.Title, c.Description, c.PrizeImageURL, c.EntryPrice, c.MaxEntries,
		c.StartDate, c.EndDate, c.TermsAndConditions, c.IsFeatured, c.ID,
	)
	if err != nil {
		zap.L().Error("can't update competition", zap.Int("competition_id", c.ID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a competition nobody has entered. Entries carry spend and
// referral credits, so a competition with entries is kept and false is
// returned.
func (r *Repository) Delete(ctx context.Context, id int) (bool, error) {
	query := `
		DELETE FROM competitions
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM entries WHERE competition_id = $1)
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if pg.IsForeignKeyViolation(err) {
			zap.L().Warn("competition gained entries while deleting", zap.Int("competition_id", id))
			return false, nil
		}
		zap.L().Error("can't delete competition", zap.Int("competition_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Competition, error) {
	c, err := scanCompetition(r.db.QueryRow(ctx, selectCompetition+" WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find competition", zap.Int("competition_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// List returns competitions newest first. An empty status lists all of them.
func (r *Repository) List(ctx context.Context, status string) ([]domain.Competition, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status == "" {
		rows, err = r.db.Query(ctx, selectCompetition+" ORDER BY created_at DESC")
	} else {
		rows, err = r.db.Query(ctx, selectCompetition+" WHERE status = $1 ORDER BY created_at DESC", status)
	}
	if err != nil {
		zap.L().Error("failed to fetch competitions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var competitions []domain.Competition
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			zap.L().Error("failed to scan competition row", zap.Error(err))
			return nil, err
		}
		competitions = append(competitions, *c)
	}
	return competitions, rows.Err()
}

// Featured picks the most recently updated featured active competition,
// falling back to the newest active one.
func (r *Repository) Featured(ctx context.Context) (*domain.Competition, error) {
	query := selectCompetition + `
		WHERE status = 'active'
		ORDER BY is_featured DESC, CASE WHEN is_featured THEN updated_at ELSE created_at END DESC
		LIMIT 1
	`
	c, err := scanCompetition(r.db.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find featured competition", zap.Error(err))
		return nil, err
	}
	return c, nil
}

// SetStatus moves a competition from one status to another. It reports
// false when the competition is missing or no longer in the from status.
func (r *Repository) SetStatus(ctx context.Context, id int, from, to string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE competitions SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3",
		to, id, from,
	)
	if err != nil {
		zap.L().Error("can't update competition status", zap.Int("competition_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetWinner records the winner once. It reports false when the competition
// is a draft or already has a winner.
func (r *Repository) SetWinner(ctx context.Context, id, winnerID int) (bool, error) {
	query := `
		UPDATE competitions
		SET winner_id = $1, status = 'ended', updated_at = NOW()
		WHERE id = $2 AND status IN ('active', 'ended') AND winner_id IS NULL
	`
	tag, err := r.db.Exec(ctx, query, winnerID, id)
	if err != nil {
		zap.L().Error("can't set competition winner", zap.Int("competition_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanCompetition(row pgx.Row) (*domain.Competition, error) {
	var c domain.Competition
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.PrizeImageURL, &c.EntryPrice, &c.MaxEntries, &c.CurrentEntries,
		&c.Status, &c.StartDate, &c.EndDate, &c.WinnerID, &c.TermsAndConditions, &c.IsFeatured,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

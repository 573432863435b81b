package dividendrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const selectDividend = `SELECT id, allocation_id, user_id, amount, period_start, period_end, type, payout_method, status, roll_up, payable_at, paid_at, created_at FROM dividends`

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

// SpendByUser sums entry amounts per user over [start, end).
func (r *Repository) SpendByUser(ctx context.Context, start, end time.Time) ([]domain.UserSpend, error) {
	query := `
		SELECT u.id, u.payout_method, SUM(e.amount_paid)
		FROM entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.created_at >= $1 AND e.created_at < $2
		GROUP BY u.id, u.payout_method
		HAVING SUM(e.amount_paid) > 0
		ORDER BY u.id
	`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		zap.L().Error("failed to fetch user spend", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var spends []domain.UserSpend
	for rows.Next() {
		var s domain.UserSpend
		if err := rows.Scan(&s.UserID, &s.PayoutMethod, &s.Spent); err != nil {
			zap.L().Error("failed to scan user spend row", zap.Error(err))
			return nil, err
		}
		spends = append(spends, s)
	}
	return spends, rows.Err()
}

// CreateAllocation writes the allocation and every dividend row of it in
// one transaction.
func (r *Repository) CreateAllocation(ctx context.Context, allocation *domain.Allocation, dividends []domain.Dividend) (*domain.Allocation, error) {
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, `
			INSERT INTO allocations (pool, total_spend, period_start, period_end, drawn_at, competition_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, allocation.Pool, allocation.TotalSpend, allocation.PeriodStart, allocation.PeriodEnd,
			allocation.DrawnAt, allocation.CompetitionID,
		).Scan(&allocation.ID, &allocation.CreatedAt)
		if err != nil {
			if pg.IsUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			if pg.IsForeignKeyViolation(err) {
				return domain.ErrUnknownCompetition
			}
			return err
		}

		for i := range dividends {
			d := &dividends[i]
			d.AllocationID = allocation.ID
			err := r.db.QueryRow(ctx, `
				INSERT INTO dividends (allocation_id, user_id, amount, period_start, period_end, type, payout_method, status, roll_up, payable_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				RETURNING id, created_at
			`, d.AllocationID, d.UserID, d.Amount, d.PeriodStart, d.PeriodEnd, d.Type, d.PayoutMethod,
				d.Status, d.RollUp, d.PayableAt,
			).Scan(&d.ID, &d.CreatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicate) && !errors.Is(err, domain.ErrUnknownCompetition) {
			zap.L().Error("can't save allocation", zap.Error(err))
		}
		return nil, err
	}
	return allocation, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int) ([]domain.Dividend, error) {
	return r.list(ctx, selectDividend+" WHERE user_id = $1 ORDER BY payable_at DESC, id", userID)
}

func (r *Repository) ListPending(ctx context.Context) ([]domain.Dividend, error) {
	return r.list(ctx, selectDividend+" WHERE status = 'pending' ORDER BY payable_at, id")
}

// ListDue returns pending site credit dividends payable at or before now,
// grouped by user.
func (r *Repository) ListDue(ctx context.Context, now time.Time) ([]domain.Dividend, error) {
	return r.list(ctx, selectDividend+" WHERE status = 'pending' AND payout_method = 'site_credit' AND payable_at <= $1 ORDER BY user_id, id", now)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Dividend, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch dividends", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var dividends []domain.Dividend
	for rows.Next() {
		d, err := scanDividend(rows)
		if err != nil {
			zap.L().Error("failed to scan dividend row", zap.Error(err))
			return nil, err
		}
		dividends = append(dividends, *d)
	}
	return dividends, rows.Err()
}

// MarkPaid settles a pending dividend and returns every dividend paid with
// it, the requested one first. A rolled-up dividend is paid together with
// the user's other due rolled-up dividends of the same payout method, and
// only once their total reaches minPayout. Site credit lands on the user's
// balance in the same transaction.
func (r *Repository) MarkPaid(ctx context.Context, id int, paidAt time.Time, minPayout decimal.Decimal) ([]domain.Dividend, error) {
	var paid []domain.Dividend
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		d, err := scanDividend(r.db.QueryRow(ctx, selectDividend+" WHERE id = $1 FOR UPDATE", id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}
		if d.Status == domain.DividendPaid {
			return domain.ErrAlreadyPaid
		}

		batch := []domain.Dividend{*d}
		if d.RollUp {
			group, err := r.list(ctx, selectDividend+`
				WHERE user_id = $1 AND payout_method = $2 AND roll_up AND status = 'pending'
				AND payable_at <= $3 AND id <> $4
				ORDER BY id FOR UPDATE`,
				d.UserID, d.PayoutMethod, paidAt, d.ID)
			if err != nil {
				return err
			}
			batch = append(batch, group...)
		}

		ids := make([]int, len(batch))
		total := decimal.Zero
		for i, b := range batch {
			ids[i] = b.ID
			total = total.Add(b.Amount)
		}
		if d.RollUp && total.LessThan(minPayout) {
			return domain.ErrBelowMinPayout
		}

		if _, err = r.db.Exec(ctx,
			"UPDATE dividends SET status = 'paid', paid_at = $1 WHERE id = ANY($2)",
			paidAt, ids,
		); err != nil {
			return err
		}
		if d.PayoutMethod == domain.PayoutSiteCredit {
			if _, err = r.db.Exec(ctx,
				"UPDATE users SET site_credit = site_credit + $1, updated_at = NOW() WHERE id = $2",
				total, d.UserID,
			); err != nil {
				return err
			}
		}

		for i := range batch {
			batch[i].Status = domain.DividendPaid
			batch[i].PaidAt = &paidAt
		}
		paid = batch
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrConflict) {
			zap.L().Error("can't mark dividend paid", zap.Int("dividend_id", id), zap.Error(err))
		}
		return nil, err
	}
	return paid, nil
}

func scanDividend(row pgx.Row) (*domain.Dividend, error) {
	var d domain.Dividend
	err := row.Scan(
		&d.ID, &d.AllocationID, &d.UserID, &d.Amount, &d.PeriodStart, &d.PeriodEnd, &d.Type,
		&d.PayoutMethod, &d.Status, &d.RollUp, &d.PayableAt, &d.PaidAt, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

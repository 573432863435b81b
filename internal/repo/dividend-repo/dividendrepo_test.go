package dividendrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/pg"
	"github.com/GlebRadaev/prizepool/internal/testutil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var (
	periodStart = time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	drawnAt     = time.Date(2024, 10, 5, 18, 0, 0, 0, time.UTC)

	dividendColumns = []string{
		"id", "allocation_id", "user_id", "amount", "period_start", "period_end", "type",
		"payout_method", "status", "roll_up", "payable_at", "paid_at", "created_at",
	}
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()

	return repo, mockDB, mockTxManager
}

func passThrough(tx *pg.MockTXManager) {
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

func testDividend(method, status string) domain.Dividend {
	return domain.Dividend{
		ID:           5,
		AllocationID: 1,
		UserID:       2,
		Amount:       decimal.RequireFromString("18.00"),
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		Type:         domain.DividendImmediate,
		PayoutMethod: method,
		Status:       status,
		PayableAt:    drawnAt.Add(24 * time.Hour),
		CreatedAt:    drawnAt,
	}
}

func dividendRow(d domain.Dividend) []any {
	return []any{
		d.ID, d.AllocationID, d.UserID, d.Amount, d.PeriodStart, d.PeriodEnd, d.Type,
		d.PayoutMethod, d.Status, d.RollUp, d.PayableAt, d.PaidAt, d.CreatedAt,
	}
}

func TestRepository_SpendByUser(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("WHERE e.created_at >= $1 AND e.created_at < $2 GROUP BY u.id, u.payout_method")
	spent := decimal.RequireFromString("100.00")

	mock.ExpectQuery(query).WithArgs(periodStart, periodEnd).
		WillReturnRows(pgxmock.NewRows([]string{"id", "payout_method", "sum"}).AddRow(2, domain.PayoutSiteCredit, spent))
	mock.ExpectQuery(query).WithArgs(periodStart, periodEnd).WillReturnError(errors.New("database error"))

	spends, err := repo.SpendByUser(context.Background(), periodStart, periodEnd)
	assert.NoError(t, err)
	assert.Equal(t, []domain.UserSpend{{UserID: 2, PayoutMethod: domain.PayoutSiteCredit, Spent: spent}}, spends)

	_, err = repo.SpendByUser(context.Background(), periodStart, periodEnd)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateAllocation(t *testing.T) {
	insertAllocation := regexp.QuoteMeta("INSERT INTO allocations (pool, total_spend, period_start, period_end, drawn_at, competition_id)")
	insertDividend := regexp.QuoteMeta("INSERT INTO dividends (allocation_id, user_id, amount")
	competitionID := 3

	newAllocation := func() *domain.Allocation {
		return &domain.Allocation{
			Pool:          decimal.NewFromInt(6000),
			TotalSpend:    decimal.NewFromInt(10000),
			PeriodStart:   periodStart,
			PeriodEnd:     periodEnd,
			DrawnAt:       drawnAt,
			CompetitionID: &competitionID,
		}
	}
	newDividends := func() []domain.Dividend {
		immediate := testDividend(domain.PayoutSiteCredit, domain.DividendPending)
		deferred := immediate
		deferred.Type, deferred.Amount = domain.DividendDeferred, decimal.RequireFromString("42.00")
		return []domain.Dividend{immediate, deferred}
	}
	expectAllocation := func(mock pgxmock.PgxPoolIface) *pgxmock.ExpectedQuery {
		return mock.ExpectQuery(insertAllocation).
			WithArgs(testutil.Decimal("6000"), testutil.Decimal("10000"), periodStart, periodEnd, drawnAt, &competitionID)
	}

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
	}{
		{
			name: "Allocation and dividends stored",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectAllocation(mock).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, drawnAt))
				mock.ExpectQuery(insertDividend).
					WithArgs(1, 2, testutil.Decimal("18"), periodStart, periodEnd, domain.DividendImmediate, domain.PayoutSiteCredit,
						domain.DividendPending, false, drawnAt.Add(24*time.Hour)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(10, drawnAt))
				mock.ExpectQuery(insertDividend).
					WithArgs(1, 2, testutil.Decimal("42"), periodStart, periodEnd, domain.DividendDeferred, domain.PayoutSiteCredit,
						domain.DividendPending, false, drawnAt.Add(24*time.Hour)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(11, drawnAt))
			},
		},
		{
			name: "Competition already allocated",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectAllocation(mock).WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			expectErr: domain.ErrDuplicate,
		},
		{
			name: "Unknown competition",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectAllocation(mock).WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "allocations_competition_id_fkey"})
			},
			expectErr: domain.ErrUnknownCompetition,
		},
		{
			name: "Dividend insert fails",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectAllocation(mock).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, drawnAt))
				mock.ExpectQuery(insertDividend).
					WithArgs(1, 2, pgxmock.AnyArg(), periodStart, periodEnd, pgxmock.AnyArg(), pgxmock.AnyArg(),
						pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, tx := NewMock(t)
			passThrough(tx)
			tt.mockSetup(mock)

			dividends := newDividends()
			result, err := repo.CreateAllocation(context.Background(), newAllocation(), dividends)
			if tt.expectErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr.Error())
				if errors.Is(tt.expectErr, domain.ErrNotFound) {
					assert.ErrorIs(t, err, domain.ErrNotFound)
				}
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, 10, dividends[0].ID)
				assert.Equal(t, 11, dividends[1].ID)
				assert.Equal(t, 1, dividends[1].AllocationID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Lists(t *testing.T) {
	repo, mock, _ := NewMock(t)
	d := testDividend(domain.PayoutSiteCredit, domain.DividendPending)
	now := drawnAt.Add(48 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(selectDividend + " WHERE user_id = $1")).WithArgs(2).
		WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(d)...))
	mock.ExpectQuery(regexp.QuoteMeta(selectDividend + " WHERE status = 'pending' ORDER BY payable_at, id")).
		WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(d)...))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'pending' AND payout_method = 'site_credit' AND payable_at <= $1")).WithArgs(now).
		WillReturnRows(pgxmock.NewRows(dividendColumns))

	byUser, err := repo.ListByUser(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, []domain.Dividend{d}, byUser)

	pending, err := repo.ListPending(context.Background())
	assert.NoError(t, err)
	assert.Len(t, pending, 1)

	due, err := repo.ListDue(context.Background(), now)
	assert.NoError(t, err)
	assert.Empty(t, due)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaid(t *testing.T) {
	lock := regexp.QuoteMeta(selectDividend + " WHERE id = $1 FOR UPDATE")
	lockGroup := regexp.QuoteMeta("WHERE user_id = $1 AND payout_method = $2 AND roll_up AND status = 'pending' AND payable_at <= $3 AND id <> $4 ORDER BY id FOR UPDATE")
	markPaid := regexp.QuoteMeta("UPDATE dividends SET status = 'paid', paid_at = $1 WHERE id = ANY($2)")
	addCredit := regexp.QuoteMeta("UPDATE users SET site_credit = site_credit + $1, updated_at = NOW() WHERE id = $2")
	paidAt := drawnAt.Add(25 * time.Hour)
	minPayout := decimal.NewFromInt(5)

	rolledUp := func(id int, method, amount string) domain.Dividend {
		d := testDividend(method, domain.DividendPending)
		d.ID, d.RollUp, d.Amount = id, true, decimal.RequireFromString(amount)
		return d
	}

	tests := []struct {
		name        string
		mockSetup   func(mock pgxmock.PgxPoolIface)
		expectErr   error
		expectedIDs []int
	}{
		{
			name: "Site credit payout raises the balance",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lock).WithArgs(5).
					WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(testDividend(domain.PayoutSiteCredit, domain.DividendPending))...))
				mock.ExpectExec(markPaid).WithArgs(paidAt, []int{5}).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec(addCredit).WithArgs(testutil.Decimal("18.00"), 2).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectedIDs: []int{5},
		},
		{
			name: "Bank transfer payout touches only the dividend",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lock).WithArgs(5).
					WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(testDividend(domain.PayoutBankTransfer, domain.DividendPending))...))
				mock.ExpectExec(markPaid).WithArgs(paidAt, []int{5}).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectedIDs: []int{5},
		},
		{
			name: "Rolled-up bank transfers are paid as a group",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lock).WithArgs(5).
					WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(rolledUp(5, domain.PayoutBankTransfer, "1.20"))...))
				mock.ExpectQuery(lockGroup).WithArgs(2, domain.PayoutBankTransfer, paidAt, 5).
					WillReturnRows(pgxmock.NewRows(dividendColumns).
						AddRow(dividendRow(rolledUp(8, domain.PayoutBankTransfer, "2.30"))...).
						AddRow(dividendRow(rolledUp(9, domain.PayoutBankTransfer, "1.50"))...))
				mock.ExpectExec(markPaid).WithArgs(paidAt, []int{5, 8, 9}).WillReturnResult(pgxmock.NewResult("UPDATE", 3))
			},
			expectedIDs: []int{5, 8, 9},
		},
		{
			name: "Rolled-up site credit adds the group total",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lock).WithArgs(5).
					WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(rolledUp(5, domain.PayoutSiteCredit, "4.00"))...))
				mock.ExpectQuery(lockGroup).WithArgs(2, domain.PayoutSiteCredit, paidAt, 5).
					WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(rolledUp(6, domain.PayoutSiteCredit, "1.00"))...))
				mock.ExpectExec(markPaid).WithArgs(paidAt, []int{5, 6}).WillReturnResult(pgxmock.NewResult("UPDATE", 2))
				mock.ExpectExec(addCredit).WithArgs(testutil.Decimal("5.00"), 2).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectedIDs: []int{5, 6},
		},
		{
			name: "Rolled-up total below the minimum stays pending",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lock).WithArgs(5).
					WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(rolledUp(5, domain.PayoutBankTransfer, "1.20"))...))
				mock.ExpectQuery(lockGroup).WithArgs(2, domain.PayoutBankTransfer, paidAt, 5).
					WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(rolledUp(8, domain.PayoutBankTransfer, "2.30"))...))
			},
			expectErr: domain.ErrBelowMinPayout,
		},
		{
			name: "Already paid",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lock).WithArgs(5).
					WillReturnRows(pgxmock.NewRows(dividendColumns).AddRow(dividendRow(testDividend(domain.PayoutSiteCredit, domain.DividendPaid))...))
			},
			expectErr: domain.ErrAlreadyPaid,
		},
		{
			name: "Not found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lock).WithArgs(5).WillReturnError(pgx.ErrNoRows)
			},
			expectErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, tx := NewMock(t)
			passThrough(tx)
			tt.mockSetup(mock)

			result, err := repo.MarkPaid(context.Background(), 5, paidAt, minPayout)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				ids := make([]int, len(result))
				for i, d := range result {
					ids[i] = d.ID
					assert.Equal(t, domain.DividendPaid, d.Status)
					assert.Equal(t, paidAt, *d.PaidAt)
				}
				assert.Equal(t, tt.expectedIDs, ids)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

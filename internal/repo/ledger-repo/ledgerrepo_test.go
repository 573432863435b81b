package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_UserSummary(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("FROM users u WHERE u.id = $1")
	columns := []string{"id", "spent", "entries", "pending", "paid", "referral_earnings", "site_credit", "referrals"}
	zero := decimal.Zero

	expected := &domain.UserSummary{
		UserID:           1,
		TotalSpent:       decimal.RequireFromString("100.00"),
		Entries:          40,
		DividendsPending: decimal.RequireFromString("42.00"),
		DividendsPaid:    decimal.RequireFromString("18.00"),
		ReferralEarnings: decimal.RequireFromString("3.2500"),
		SiteCredit:       decimal.RequireFromString("18.00"),
		Referrals:        2,
	}

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.UserSummary
	}{
		{
			name:   "Summary found",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).WillReturnRows(pgxmock.NewRows(columns).AddRow(
					1, expected.TotalSpent, 40, expected.DividendsPending, expected.DividendsPaid,
					expected.ReferralEarnings, expected.SiteCredit, 2,
				))
			},
			result: expected,
		},
		{
			name:   "User without activity reads as zeros",
			userID: 2,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(2).WillReturnRows(pgxmock.NewRows(columns).AddRow(
					2, zero, 0, zero, zero, zero, zero, 0,
				))
			},
			result: &domain.UserSummary{
				UserID: 2, TotalSpent: zero, DividendsPending: zero, DividendsPaid: zero, ReferralEarnings: zero, SiteCredit: zero,
			},
		},
		{
			name:   "Unknown user",
			userID: 3,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(3).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:   "Database error is not a zero summary",
			userID: 4,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(4).WillReturnError(errors.New("connection refused"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.UserSummary(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PlatformTotals(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("COALESCE((SELECT SUM(site_credit) FROM users), 0)")
	columns := []string{"users", "entries", "spent", "pending", "paid", "site_credit"}
	spent, pending, paid, credit := decimal.NewFromInt(10000), decimal.NewFromInt(4200), decimal.NewFromInt(1800), decimal.NewFromInt(950)

	mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows(columns).AddRow(12, 4000, spent, pending, paid, credit))
	mock.ExpectQuery(query).WillReturnError(errors.New("connection refused"))

	totals, err := repo.PlatformTotals(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, &domain.PlatformTotals{Users: 12, Entries: 4000, TotalSpent: spent, DividendsPending: pending, DividendsPaid: paid, SiteCredit: credit}, totals)

	_, err = repo.PlatformTotals(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

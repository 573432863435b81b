package competitionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/testutil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var competitionColumns = []string{
	"id", "title", "description", "prize_image_url", "entry_price", "max_entries", "current_entries",
	"status", "start_date", "end_date", "winner_id", "terms_and_conditions", "is_featured", "created_at", "updated_at",
}

var now = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func testCompetition() domain.Competition {
	maxEntries := 100
	return domain.Competition{
		ID:             1,
		Title:          "Win a car",
		Description:    "Electric hatchback",
		EntryPrice:     decimal.RequireFromString("2.50"),
		MaxEntries:     &maxEntries,
		CurrentEntries: 10,
		Status:         domain.CompetitionActive,
		IsFeatured:     true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func competitionRow(c domain.Competition) []any {
	return []any{
		c.ID, c.Title, c.Description, c.PrizeImageURL, c.EntryPrice, c.MaxEntries, c.CurrentEntries,
		c.Status, c.StartDate, c.EndDate, c.WinnerID, c.TermsAndConditions, c.IsFeatured, c.CreatedAt, c.UpdatedAt,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	c := testCompetition()
	c.ID, c.CurrentEntries = 0, 0

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO competitions")).
		WithArgs(c.Title, c.Description, c.PrizeImageURL, testutil.Decimal("2.5"), c.MaxEntries, c.Status,
			c.StartDate, c.EndDate, c.TermsAndConditions, c.IsFeatured).
		WillReturnRows(pgxmock.NewRows([]string{"id", "current_entries", "created_at", "updated_at"}).AddRow(4, 0, now, now))

	result, err := repo.Create(context.Background(), &c)

	assert.NoError(t, err)
	assert.Equal(t, 4, result.ID)
	assert.Equal(t, now, result.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	c := testCompetition()
	query := regexp.QuoteMeta(selectCompetition + " WHERE id = $1")

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Competition
	}{
		{
			name: "Competition found",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).
					WillReturnRows(pgxmock.NewRows(competitionColumns).AddRow(competitionRow(c)...))
			},
			result: &c,
		},
		{
			name: "Competition not found",
			id:   2,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(2).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			id:   3,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(3).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	c := testCompetition()

	mock.ExpectQuery(regexp.QuoteMeta(selectCompetition + " ORDER BY created_at DESC")).
		WillReturnRows(pgxmock.NewRows(competitionColumns).AddRow(competitionRow(c)...))
	mock.ExpectQuery(regexp.QuoteMeta(selectCompetition + " WHERE status = $1 ORDER BY created_at DESC")).
		WithArgs(domain.CompetitionDraft).
		WillReturnRows(pgxmock.NewRows(competitionColumns))

	all, err := repo.List(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, []domain.Competition{c}, all)

	drafts, err := repo.List(context.Background(), domain.CompetitionDraft)
	assert.NoError(t, err)
	assert.Empty(t, drafts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Featured(t *testing.T) {
	repo, mock := NewMock(t)
	c := testCompetition()
	query := regexp.QuoteMeta("WHERE status = 'active' ORDER BY is_featured DESC")

	mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows(competitionColumns).AddRow(competitionRow(c)...))
	mock.ExpectQuery(query).WillReturnError(pgx.ErrNoRows)

	featured, err := repo.Featured(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, &c, featured)

	featured, err = repo.Featured(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, featured)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)
	c := testCompetition()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE competitions SET title = $1")).
		WithArgs(c.Title, c.Description, c.PrizeImageURL, testutil.Decimal("2.50"), c.MaxEntries,
			c.StartDate, c.EndDate, c.TermsAndConditions, c.IsFeatured, c.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	found, err := repo.Update(context.Background(), &c)

	assert.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_StatusTransitions(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE competitions SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3")).
		WithArgs(domain.CompetitionActive, 1, domain.CompetitionDraft).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $2 AND status IN ('active', 'ended') AND winner_id IS NULL")).
		WithArgs(9, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM competitions")).
		WithArgs(1).
		WillReturnError(errors.New("database error"))

	moved, err := repo.SetStatus(context.Background(), 1, domain.CompetitionDraft, domain.CompetitionActive)
	assert.NoError(t, err)
	assert.True(t, moved)

	set, err := repo.SetWinner(context.Background(), 1, 9)
	assert.NoError(t, err)
	assert.False(t, set)

	_, err = repo.Delete(context.Background(), 1)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	tests := []struct {
		name            string
		prepareMock     func(mock pgxmock.PgxPoolIface)
		expectedDeleted bool
		expectedError   bool
	}{
		{
			name: "Competition without entries",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("NOT EXISTS (SELECT 1 FROM entries WHERE competition_id = $1)")).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
			expectedDeleted: true,
		},
		{
			name: "Competition with entries is kept",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("NOT EXISTS (SELECT 1 FROM entries WHERE competition_id = $1)")).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
		},
		{
			name: "Entry added while deleting",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM competitions")).
					WithArgs(1).
					WillReturnError(&pgconn.PgError{Code: "23503"})
			},
		},
		{
			name: "Database error",
			prepareMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM competitions")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.prepareMock(mock)

			deleted, err := repo.Delete(context.Background(), 1)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedDeleted, deleted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

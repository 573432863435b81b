package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ReferralPercentage of every referee entry is credited to the referrer.
var ReferralPercentage = decimal.NewFromInt(10)

const (
	PayoutBankTransfer = "bank_transfer"
	PayoutSiteCredit   = "site_credit"
)

const (
	CompetitionDraft  = "draft"
	CompetitionActive = "active"
	CompetitionEnded  = "ended"
)

const (
	DividendImmediate = "immediate"
	DividendDeferred  = "deferred"
)

const (
	DividendPending = "pending"
	DividendPaid    = "paid"
)

type User struct {
	ID                    int             `db:"id"`
	Email                 string          `db:"email"`
	PasswordHash          string          `db:"password_hash"`
	Role                  string          `db:"role"`
	ReferralCode          string          `db:"referral_code"`
	ReferrerID            *int            `db:"referrer_id"`
	PayoutMethod          string          `db:"payout_method"`
	BankSortCode          *string         `db:"bank_sort_code"`
	BankAccountNumber     *string         `db:"bank_account_number"`
	SiteCredit            decimal.Decimal `db:"site_credit"`
	TotalSpent            decimal.Decimal `db:"total_spent"`
	TotalReferralEarnings decimal.Decimal `db:"total_referral_earnings"`
	// TotalDividends is derived from paid dividend rows, it has no column.
	TotalDividends decimal.Decimal
	CreatedAt      time.Time `db:"created_at"`
}

type Competition struct {
	ID                 int             `db:"id"`
	Title              string          `db:"title"`
	Description        string          `db:"description"`
	PrizeImageURL      *string         `db:"prize_image_url"`
	EntryPrice         decimal.Decimal `db:"entry_price"`
	MaxEntries         *int            `db:"max_entries"`
	CurrentEntries     int             `db:"current_entries"`
	Status             string          `db:"status"`
	StartDate          *time.Time      `db:"start_date"`
	EndDate            *time.Time      `db:"end_date"`
	WinnerID           *int            `db:"winner_id"`
	TermsAndConditions *string         `db:"terms_and_conditions"`
	IsFeatured         bool            `db:"is_featured"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

func (c *Competition) IsFull() bool {
	return c.MaxEntries != nil && c.CurrentEntries >= *c.MaxEntries
}

type Entry struct {
	ID              int             `db:"id"`
	UserID          int             `db:"user_id"`
	CompetitionID   int             `db:"competition_id"`
	PaymentIntentID *string         `db:"payment_intent_id"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
	CreatedAt       time.Time       `db:"created_at"`

	CompetitionTitle string `db:"competition_title"`
}

type Allocation struct {
	ID            int             `db:"id"`
	Pool          decimal.Decimal `db:"pool"`
	TotalSpend    decimal.Decimal `db:"total_spend"`
	PeriodStart   time.Time       `db:"period_start"`
	PeriodEnd     time.Time       `db:"period_end"`
	DrawnAt       time.Time       `db:"drawn_at"`
	CompetitionID *int            `db:"competition_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

type Dividend struct {
	ID           int             `db:"id"`
	AllocationID int             `db:"allocation_id"`
	UserID       int             `db:"user_id"`
	Amount       decimal.Decimal `db:"amount"`
	PeriodStart  time.Time       `db:"period_start"`
	PeriodEnd    time.Time       `db:"period_end"`
	Type         string          `db:"type"`
	PayoutMethod string          `db:"payout_method"`
	Status       string          `db:"status"`
	RollUp       bool            `db:"roll_up"`
	PayableAt    time.Time       `db:"payable_at"`
	PaidAt       *time.Time      `db:"paid_at"`
	CreatedAt    time.Time       `db:"created_at"`
}

type Referral struct {
	ID                 int             `db:"id"`
	ReferrerID         int             `db:"referrer_id"`
	RefereeID          int             `db:"referee_id"`
	RefereeEmail       string          `db:"referee_email"`
	EarningsPercentage decimal.Decimal `db:"earnings_percentage"`
	TotalEarned        decimal.Decimal `db:"total_earned"`
	CreatedAt          time.Time       `db:"created_at"`
}

type ReferralCredit struct {
	ID         int             `db:"id"`
	ReferralID int             `db:"referral_id"`
	EntryID    int             `db:"entry_id"`
	Amount     decimal.Decimal `db:"amount"`
	CreatedAt  time.Time       `db:"created_at"`
}

// ReferralTarget is an entry together with the referral its user came through.
type ReferralTarget struct {
	EntryID            int             `db:"entry_id"`
	AmountPaid         decimal.Decimal `db:"amount_paid"`
	ReferralID         int             `db:"referral_id"`
	ReferrerID         int             `db:"referrer_id"`
	EarningsPercentage decimal.Decimal `db:"earnings_percentage"`
}

// UserSpend is one user's spend over an accrual period.
type UserSpend struct {
	UserID       int             `db:"user_id"`
	PayoutMethod string          `db:"payout_method"`
	Spent        decimal.Decimal `db:"spent"`
}

type UserSummary struct {
	UserID           int
	TotalSpent       decimal.Decimal
	Entries          int
	DividendsPending decimal.Decimal
	DividendsPaid    decimal.Decimal
	ReferralEarnings decimal.Decimal
	SiteCredit       decimal.Decimal
	Referrals        int
}

type PlatformTotals struct {
	Users            int
	Entries          int
	TotalSpent       decimal.Decimal
	DividendsPending decimal.Decimal
	DividendsPaid    decimal.Decimal
	SiteCredit       decimal.Decimal
}

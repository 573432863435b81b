package dto

import (
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
)

type UserResponseDTO struct {
	ID                    int       `json:"id" example:"1"`
	Email                 string    `json:"email" example:"player@example.com"`
	Role                  string    `json:"role" example:"user"`
	ReferralCode          string    `json:"referral_code" example:"2377225624"`
	PayoutMethod          string    `json:"payout_method" example:"site_credit"`
	BankSortCode          *string   `json:"bank_sort_code,omitempty" example:"123456"`
	BankAccountNumber     *string   `json:"bank_account_number,omitempty" example:"12345678"`
	SiteCredit            string    `json:"site_credit" example:"12.50"`
	TotalSpent            string    `json:"total_spent" example:"100.00"`
	TotalReferralEarnings string    `json:"total_referral_earnings" example:"4.20"`
	CreatedAt             time.Time `json:"created_at" example:"2024-03-01T12:00:00Z"`
}

func FromUser(u *domain.User) UserResponseDTO {
	return UserResponseDTO{
		ID:                    u.ID,
		Email:                 u.Email,
		Role:                  u.Role,
		ReferralCode:          u.ReferralCode,
		PayoutMethod:          u.PayoutMethod,
		BankSortCode:          u.BankSortCode,
		BankAccountNumber:     u.BankAccountNumber,
		SiteCredit:            Money(u.SiteCredit),
		TotalSpent:            Money(u.TotalSpent),
		TotalReferralEarnings: Money(u.TotalReferralEarnings),
		CreatedAt:             u.CreatedAt,
	}
}

type PayoutSettingsRequestDTO struct {
	PayoutMethod      string `json:"payout_method" example:"bank_transfer"`
	BankSortCode      string `json:"bank_sort_code,omitempty" example:"12-34-56"`
	BankAccountNumber string `json:"bank_account_number,omitempty" example:"12345678"`
}

type SetRoleRequestDTO struct {
	Role string `json:"role" example:"admin"`
}

type SummaryResponseDTO struct {
	TotalSpent       string `json:"total_spent" example:"100.00"`
	Entries          int    `json:"entries" example:"20"`
	DividendsPending string `json:"dividends_pending" example:"42.00"`
	DividendsPaid    string `json:"dividends_paid" example:"18.00"`
	ReferralEarnings string `json:"referral_earnings" example:"4.20"`
	SiteCredit       string `json:"site_credit" example:"18.00"`
	Referrals        int    `json:"referrals" example:"3"`
}

func FromSummary(s *domain.UserSummary) SummaryResponseDTO {
	return SummaryResponseDTO{
		TotalSpent:       Money(s.TotalSpent),
		Entries:          s.Entries,
		DividendsPending: Money(s.DividendsPending),
		DividendsPaid:    Money(s.DividendsPaid),
		ReferralEarnings: Money(s.ReferralEarnings),
		SiteCredit:       Money(s.SiteCredit),
		Referrals:        s.Referrals,
	}
}

type PlatformTotalsResponseDTO struct {
	Users            int    `json:"users" example:"120"`
	Entries          int    `json:"entries" example:"4000"`
	TotalSpent       string `json:"total_spent" example:"10000.00"`
	DividendsPending string `json:"dividends_pending" example:"4200.00"`
	DividendsPaid    string `json:"dividends_paid" example:"1800.00"`
	SiteCredit       string `json:"site_credit" example:"950.00"`
}

func FromPlatformTotals(t *domain.PlatformTotals) PlatformTotalsResponseDTO {
	return PlatformTotalsResponseDTO{
		Users:            t.Users,
		Entries:          t.Entries,
		TotalSpent:       Money(t.TotalSpent),
		DividendsPending: Money(t.DividendsPending),
		DividendsPaid:    Money(t.DividendsPaid),
		SiteCredit:       Money(t.SiteCredit),
	}
}

type ReferralResponseDTO struct {
	RefereeEmail       string    `json:"referee_email" example:"friend@example.com"`
	EarningsPercentage string    `json:"earnings_percentage" example:"10"`
	TotalEarned        string    `json:"total_earned" example:"1.0500"`
	CreatedAt          time.Time `json:"created_at" example:"2024-03-01T12:00:00Z"`
}

func FromReferral(r domain.Referral) ReferralResponseDTO {
	return ReferralResponseDTO{
		RefereeEmail:       r.RefereeEmail,
		EarningsPercentage: r.EarningsPercentage.String(),
		TotalEarned:        r.TotalEarned.StringFixed(4),
		CreatedAt:          r.CreatedAt,
	}
}

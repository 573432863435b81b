package dto

import (
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/shopspring/decimal"
)

type AllocateRequestDTO struct {
	Pool          decimal.Decimal `json:"pool" swaggertype:"string" example:"6000.00"`
	NetProfit     decimal.Decimal `json:"net_profit" swaggertype:"string" example:"12000.00"`
	SharePercent  decimal.Decimal `json:"share_percent" swaggertype:"string" example:"50"`
	PeriodStart   time.Time       `json:"period_start" example:"2024-03-01T00:00:00Z"`
	PeriodEnd     time.Time       `json:"period_end" example:"2024-04-01T00:00:00Z"`
	DrawnAt       *time.Time      `json:"drawn_at,omitempty" example:"2024-04-01T12:00:00Z"`
	CompetitionID *int            `json:"competition_id,omitempty" example:"7"`
}

type DividendResponseDTO struct {
	ID           int        `json:"id" example:"10"`
	AllocationID int        `json:"allocation_id" example:"3"`
	UserID       int        `json:"user_id" example:"1"`
	Amount       string     `json:"amount" example:"18.00"`
	PeriodStart  time.Time  `json:"period_start"`
	PeriodEnd    time.Time  `json:"period_end"`
	Type         string     `json:"type" example:"immediate"`
	PayoutMethod string     `json:"payout_method" example:"site_credit"`
	Status       string     `json:"status" example:"pending"`
	RollUp       bool       `json:"roll_up" example:"false"`
	PayableAt    time.Time  `json:"payable_at"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
}

func FromDividend(d *domain.Dividend) DividendResponseDTO {
	return DividendResponseDTO{
		ID:           d.ID,
		AllocationID: d.AllocationID,
		UserID:       d.UserID,
		Amount:       Money(d.Amount),
		PeriodStart:  d.PeriodStart,
		PeriodEnd:    d.PeriodEnd,
		Type:         d.Type,
		PayoutMethod: d.PayoutMethod,
		Status:       d.Status,
		RollUp:       d.RollUp,
		PayableAt:    d.PayableAt,
		PaidAt:       d.PaidAt,
	}
}

func FromDividends(ds []domain.Dividend) []DividendResponseDTO {
	response := make([]DividendResponseDTO, 0, len(ds))
	for i := range ds {
		response = append(response, FromDividend(&ds[i]))
	}
	return response
}

type AllocationResponseDTO struct {
	ID         int                   `json:"id" example:"3"`
	Pool       string                `json:"pool" example:"6000.00"`
	TotalSpend string                `json:"total_spend" example:"10000.00"`
	Dividends  []DividendResponseDTO `json:"dividends"`
}

type SettleResponseDTO struct {
	Settled int    `json:"settled" example:"12"`
	Error   string `json:"error,omitempty"`
}

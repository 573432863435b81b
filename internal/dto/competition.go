package dto

import (
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/shopspring/decimal"
)

type CompetitionRequestDTO struct {
	Title              string          `json:"title" example:"Win a PS5"`
	Description        string          `json:"description" example:"Draw on Friday"`
	PrizeImageURL      *string         `json:"prize_image_url,omitempty" example:"https://cdn.example.com/ps5.png"`
	EntryPrice         decimal.Decimal `json:"entry_price" swaggertype:"string" example:"2.50"`
	MaxEntries         *int            `json:"max_entries,omitempty" example:"1000"`
	Status             string          `json:"status,omitempty" example:"draft"`
	StartDate          *time.Time      `json:"start_date,omitempty" example:"2024-03-01T00:00:00Z"`
	EndDate            *time.Time      `json:"end_date,omitempty" example:"2024-03-31T00:00:00Z"`
	TermsAndConditions *string         `json:"terms_and_conditions,omitempty"`
	IsFeatured         bool            `json:"is_featured" example:"false"`
}

func (r CompetitionRequestDTO) ToDomain(id int) *domain.Competition {
	return &domain.Competition{
		ID:                 id,
		Title:              r.Title,
		Description:        r.Description,
		PrizeImageURL:      r.PrizeImageURL,
		EntryPrice:         r.EntryPrice,
		MaxEntries:         r.MaxEntries,
		Status:             r.Status,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		TermsAndConditions: r.TermsAndConditions,
		IsFeatured:         r.IsFeatured,
	}
}

type CompetitionResponseDTO struct {
	ID                 int        `json:"id" example:"7"`
	Title              string     `json:"title" example:"Win a PS5"`
	Description        string     `json:"description" example:"Draw on Friday"`
	PrizeImageURL      *string    `json:"prize_image_url,omitempty"`
	EntryPrice         string     `json:"entry_price" example:"2.50"`
	MaxEntries         *int       `json:"max_entries,omitempty" example:"1000"`
	CurrentEntries     int        `json:"current_entries" example:"120"`
	Status             string     `json:"status" example:"active"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	WinnerID           *int       `json:"winner_id,omitempty"`
	TermsAndConditions *string    `json:"terms_and_conditions,omitempty"`
	IsFeatured         bool       `json:"is_featured"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func FromCompetition(c *domain.Competition) CompetitionResponseDTO {
	return CompetitionResponseDTO{
		ID:                 c.ID,
		Title:              c.Title,
		Description:        c.Description,
		PrizeImageURL:      c.PrizeImageURL,
		EntryPrice:         Money(c.EntryPrice),
		MaxEntries:         c.MaxEntries,
		CurrentEntries:     c.CurrentEntries,
		Status:             c.Status,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		WinnerID:           c.WinnerID,
		TermsAndConditions: c.TermsAndConditions,
		IsFeatured:         c.IsFeatured,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func FromCompetitions(cs []domain.Competition) []CompetitionResponseDTO {
	response := make([]CompetitionResponseDTO, 0, len(cs))
	for i := range cs {
		response = append(response, FromCompetition(&cs[i]))
	}
	return response
}

type SetStatusRequestDTO struct {
	Status string `json:"status" example:"active"`
}

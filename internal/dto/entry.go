package dto

import (
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
)

type EntryResponseDTO struct {
	ID               int       `json:"id" example:"42"`
	CompetitionID    int       `json:"competition_id" example:"7"`
	CompetitionTitle string    `json:"competition_title,omitempty" example:"Win a PS5"`
	UserID           int       `json:"user_id" example:"1"`
	AmountPaid       string    `json:"amount_paid" example:"2.50"`
	PaymentIntentID  *string   `json:"payment_intent_id,omitempty" example:"pi_3Ou..."`
	CreatedAt        time.Time `json:"created_at" example:"2024-03-01T12:00:00Z"`
}

func FromEntry(e *domain.Entry) EntryResponseDTO {
	return EntryResponseDTO{
		ID:               e.ID,
		CompetitionID:    e.CompetitionID,
		CompetitionTitle: e.CompetitionTitle,
		UserID:           e.UserID,
		AmountPaid:       Money(e.AmountPaid),
		PaymentIntentID:  e.PaymentIntentID,
		CreatedAt:        e.CreatedAt,
	}
}

func FromEntries(es []domain.Entry) []EntryResponseDTO {
	response := make([]EntryResponseDTO, 0, len(es))
	for i := range es {
		response = append(response, FromEntry(&es[i]))
	}
	return response
}

type CheckoutResponseDTO struct {
	SessionID string            `json:"session_id" example:"cs_test_a1b2"`
	URL       string            `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_a1b2"`
	Entry     *EntryResponseDTO `json:"entry,omitempty"`
}

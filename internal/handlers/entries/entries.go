package entries

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/dto"
	"github.com/GlebRadaev/prizepool/internal/service/entryservice"
	"github.com/GlebRadaev/prizepool/pkg/auth"
	"github.com/GlebRadaev/prizepool/pkg/utils"
	"go.uber.org/zap"
)

const (
	signatureHeader = "Stripe-Signature"
	maxWebhookBody  = int64(65536)
)

type Service interface {
	Checkout(ctx context.Context, userID int, competitionID int) (*entryservice.CheckoutResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	EnterWithCredit(ctx context.Context, userID int, competitionID int) (*domain.Entry, error)
	ListForUser(ctx context.Context, userID int) ([]domain.Entry, error)
}

type EntryHandler struct {
	entryService Service
}

func New(entryService Service) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// Checkout godoc
//
//	@Summary		Start a paid entry
//	@Description	Creates a checkout session. In demo mode the entry is recorded at once and returned.
//	@Tags			Entries
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Competition ID"
//	@Success		200	{object}	dto.CheckoutResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid competition id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Failure		409	{object}	utils.Response	"Competition is not open for entries"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/competitions/{id}/checkout [post]
func (h *EntryHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, competitionID, ok := h.params(w, r)
	if !ok {
		return
	}
	result, err := h.entryService.Checkout(r.Context(), userID, competitionID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := dto.CheckoutResponseDTO{
		SessionID: result.SessionID,
		URL:       result.URL,
	}
	if result.Entry != nil {
		entry := dto.FromEntry(result.Entry)
		response.Entry = &entry
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// EnterWithCredit godoc
//
//	@Summary		Enter using site credit
//	@Tags			Entries
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Competition ID"
//	@Success		201	{object}	dto.EntryResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid competition id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Insufficient site credit"
//	@Failure		409	{object}	utils.Response	"Competition is not open for entries"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/competitions/{id}/enter-with-credit [post]
func (h *EntryHandler) EnterWithCredit(w http.ResponseWriter, r *http.Request) {
	userID, competitionID, ok := h.params(w, r)
	if !ok {
		return
	}
	entry, err := h.entryService.EnterWithCredit(r.Context(), userID, competitionID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromEntry(entry))
}

// GetEntries godoc
//
//	@Summary		Entries of the user
//	@Tags			Entries
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.EntryResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/entries [get]
func (h *EntryHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	entries, err := h.entryService.ListForUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromEntries(entries))
}

// Webhook godoc
//
//	@Summary		Payment processor webhook
//	@Description	Verifies the signature and records the entry a completed payment paid for
//	@Tags			Entries
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string	true	"Webhook signature"
//	@Success		200					{object}	utils.Response
//	@Failure		400					{object}	utils.Response	"Invalid signature or payload"
//	@Failure		503					{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/payments/webhook [post]
func (h *EntryHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	err = h.entryService.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, domain.ErrUnauthorized):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid signature")
	default:
		zap.L().Error("webhook not processed", zap.Error(err))
		utils.RespondWithDomainError(w, err)
	}
}

func (h *EntryHandler) params(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, 0, false
	}
	competitionID, ok := utils.IntParam(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid competition id")
		return 0, 0, false
	}
	return userID, competitionID, true
}

package account

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/dto"
	"github.com/GlebRadaev/prizepool/pkg/auth"
	"github.com/GlebRadaev/prizepool/pkg/utils"
)

type UserService interface {
	Profile(ctx context.Context, userID int) (*domain.User, error)
	UpdatePayoutSettings(ctx context.Context, userID int, method string, sortCode string, accountNumber string) (*domain.User, error)
}

type LedgerService interface {
	UserSummary(ctx context.Context, userID int) (*domain.UserSummary, error)
}

type ReferralService interface {
	ListForUser(ctx context.Context, userID int) ([]domain.Referral, error)
}

type AccountHandler struct {
	userService     UserService
	ledgerService   LedgerService
	referralService ReferralService
}

func New(userService UserService, ledgerService LedgerService, referralService ReferralService) *AccountHandler {
	return &AccountHandler{
		userService:     userService,
		ledgerService:   ledgerService,
		referralService: referralService,
	}
}

// GetProfile godoc
//
//	@Summary		Get current user
//	@Description	Profile of the authorized user with balances and payout settings
//	@Tags			Account
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.UserResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/profile [get]
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.userService.Profile(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromUser(user))
}

// UpdatePayoutSettings godoc
//
//	@Summary		Update payout settings
//	@Description	Choose site credit or bank transfer; bank transfer requires a sort code and account number
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.PayoutSettingsRequestDTO	true	"Payout settings"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid payout settings"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		503		{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/payout-settings [put]
func (h *AccountHandler) UpdatePayoutSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.PayoutSettingsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.userService.UpdatePayoutSettings(r.Context(), userID, req.PayoutMethod, req.BankSortCode, req.BankAccountNumber)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromUser(user))
}

// GetSummary godoc
//
//	@Summary		Dashboard summary
//	@Description	Spend, entries, dividends by status, referral earnings and site credit of the authorized user
//	@Tags			Account
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.SummaryResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/summary [get]
func (h *AccountHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	summary, err := h.ledgerService.UserSummary(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromSummary(summary))
}

// GetReferrals godoc
//
//	@Summary		Referrals made by the user
//	@Tags			Account
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.ReferralResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/referrals [get]
func (h *AccountHandler) GetReferrals(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	referrals, err := h.referralService.ListForUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.ReferralResponseDTO, 0, len(referrals))
	for _, referral := range referrals {
		response = append(response, dto.FromReferral(referral))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

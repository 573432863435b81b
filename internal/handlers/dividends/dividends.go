package dividends

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/dto"
	"github.com/GlebRadaev/prizepool/internal/service/dividendservice"
	"github.com/GlebRadaev/prizepool/pkg/auth"
	"github.com/GlebRadaev/prizepool/pkg/utils"
)

type Service interface {
	Allocate(ctx context.Context, req dividendservice.AllocateRequest) (*dividendservice.AllocationResult, error)
	ListForUser(ctx context.Context, userID int) ([]domain.Dividend, error)
	ListPending(ctx context.Context) ([]domain.Dividend, error)
}

type PayoutService interface {
	MarkPaid(ctx context.Context, id int) (*domain.Dividend, error)
	SettleDue(ctx context.Context, now time.Time) (int, error)
}

type DividendHandler struct {
	dividendService Service
	payoutService   PayoutService
	now             func() time.Time
}

func New(dividendService Service, payoutService PayoutService) *DividendHandler {
	return &DividendHandler{
		dividendService: dividendService,
		payoutService:   payoutService,
		now:             time.Now,
	}
}

// GetDividends godoc
//
//	@Summary		Dividends of the user
//	@Tags			Dividends
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.DividendResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/dividends [get]
func (h *DividendHandler) GetDividends(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	dividends, err := h.dividendService.ListForUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromDividends(dividends))
}

// Allocate godoc
//
//	@Summary		Distribute a profit pool
//	@Description	Splits the pool across users by spend in the period. Either pool or net_profit is required.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.AllocateRequestDTO	true	"Allocation request"
//	@Success		201		{object}	dto.AllocationResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid pool or no spend in period"
//	@Failure		403		{object}	utils.Response	"Admin only"
//	@Failure		404		{object}	utils.Response	"Competition does not exist"
//	@Failure		409		{object}	utils.Response	"Competition already allocated"
//	@Failure		503		{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/admin/dividends/allocate [post]
func (h *DividendHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	drawnAt := h.now().UTC()
	if req.DrawnAt != nil {
		drawnAt = *req.DrawnAt
	}
	result, err := h.dividendService.Allocate(r.Context(), dividendservice.AllocateRequest{
		Pool:          req.Pool,
		NetProfit:     req.NetProfit,
		SharePercent:  req.SharePercent,
		PeriodStart:   req.PeriodStart,
		PeriodEnd:     req.PeriodEnd,
		DrawnAt:       drawnAt,
		CompetitionID: req.CompetitionID,
	})
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.AllocationResponseDTO{
		ID:         result.Allocation.ID,
		Pool:       dto.Money(result.Allocation.Pool),
		TotalSpend: dto.Money(result.Allocation.TotalSpend),
		Dividends:  dto.FromDividends(result.Dividends),
	})
}

// GetPending godoc
//
//	@Summary		Pending dividends
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.DividendResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/admin/dividends/pending [get]
func (h *DividendHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	dividends, err := h.dividendService.ListPending(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromDividends(dividends))
}

// MarkPaid godoc
//
//	@Summary		Mark a dividend paid
//	@Description	Site credit dividends are credited to the user; bank transfers are instructed after the update. A rolled-up dividend is paid with the user's other due rolled-up dividends once their total reaches the minimum payout.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Dividend ID"
//	@Success		200	{object}	dto.DividendResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid dividend id"
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		404	{object}	utils.Response	"Dividend not found"
//	@Failure		409	{object}	utils.Response	"Dividend already paid or rolled-up total below minimum"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/admin/dividends/{id}/pay [post]
func (h *DividendHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IntParam(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid dividend id")
		return
	}
	dividend, err := h.payoutService.MarkPaid(r.Context(), id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromDividend(dividend))
}

// Settle godoc
//
//	@Summary		Settle due dividends now
//	@Description	Runs the scheduled settlement immediately
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.SettleResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Router			/api/admin/dividends/settle [post]
func (h *DividendHandler) Settle(w http.ResponseWriter, r *http.Request) {
	settled, err := h.payoutService.SettleDue(r.Context(), h.now().UTC())
	response := dto.SettleResponseDTO{Settled: settled}
	if err != nil {
		response.Error = err.Error()
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

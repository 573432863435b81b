package competitions

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/dto"
	"github.com/GlebRadaev/prizepool/pkg/utils"
)

type Service interface {
	ListActive(ctx context.Context) ([]domain.Competition, error)
	Featured(ctx context.Context) (*domain.Competition, error)
	GetPublished(ctx context.Context, id int) (*domain.Competition, error)
}

type CompetitionHandler struct {
	competitionService Service
}

func New(competitionService Service) *CompetitionHandler {
	return &CompetitionHandler{
		competitionService: competitionService,
	}
}

// List godoc
//
//	@Summary		Active competitions
//	@Tags			Competitions
//	@Produce		json
//	@Success		200	{array}		dto.CompetitionResponseDTO
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/competitions [get]
func (h *CompetitionHandler) List(w http.ResponseWriter, r *http.Request) {
	competitions, err := h.competitionService.ListActive(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetitions(competitions))
}

// Featured godoc
//
//	@Summary		Featured competition
//	@Description	The featured active competition, or the newest active one when none is featured
//	@Tags			Competitions
//	@Produce		json
//	@Success		200	{object}	dto.CompetitionResponseDTO
//	@Failure		404	{object}	utils.Response	"No active competition"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/competitions/featured [get]
func (h *CompetitionHandler) Featured(w http.ResponseWriter, r *http.Request) {
	competition, err := h.competitionService.Featured(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetition(competition))
}

// Get godoc
//
//	@Summary		Competition details
//	@Tags			Competitions
//	@Produce		json
//	@Param			id	path		int	true	"Competition ID"
//	@Success		200	{object}	dto.CompetitionResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid competition id"
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/competitions/{id} [get]
func (h *CompetitionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IntParam(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid competition id")
		return
	}
	competition, err := h.competitionService.GetPublished(r.Context(), id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetition(competition))
}

package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/dto"
	"github.com/GlebRadaev/prizepool/pkg/auth"
	"github.com/GlebRadaev/prizepool/pkg/utils"
)

type CompetitionService interface {
	Create(ctx context.Context, c *domain.Competition) (*domain.Competition, error)
	Update(ctx context.Context, c *domain.Competition) (*domain.Competition, error)
	Delete(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*domain.Competition, error)
	ListAll(ctx context.Context) ([]domain.Competition, error)
	SetStatus(ctx context.Context, id int, status string) (*domain.Competition, error)
	DrawWinner(ctx context.Context, id int) (*domain.Entry, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetRole(ctx context.Context, userID int, role string) error
	Delete(ctx context.Context, adminID int, userID int) error
}

type LedgerService interface {
	PlatformTotals(ctx context.Context) (*domain.PlatformTotals, error)
}

type AdminHandler struct {
	competitionService CompetitionService
	userService        UserService
	ledgerService      LedgerService
}

func New(competitionService CompetitionService, userService UserService, ledgerService LedgerService) *AdminHandler {
	return &AdminHandler{
		competitionService: competitionService,
		userService:        userService,
		ledgerService:      ledgerService,
	}
}

// ListCompetitions godoc
//
//	@Summary		All competitions
//	@Description	Competitions in every status, drafts included
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.CompetitionResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/admin/competitions [get]
func (h *AdminHandler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	competitions, err := h.competitionService.ListAll(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetitions(competitions))
}

// GetCompetition godoc
//
//	@Summary		Competition in any status
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Competition ID"
//	@Success		200	{object}	dto.CompetitionResponseDTO
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Router			/api/admin/competitions/{id} [get]
func (h *AdminHandler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	id, ok := competitionID(w, r)
	if !ok {
		return
	}
	competition, err := h.competitionService.Get(r.Context(), id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetition(competition))
}

// CreateCompetition godoc
//
//	@Summary		Create a competition
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.CompetitionRequestDTO	true	"Competition"
//	@Success		201		{object}	dto.CompetitionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid competition"
//	@Failure		403		{object}	utils.Response	"Admin only"
//	@Router			/api/admin/competitions [post]
func (h *AdminHandler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	var req dto.CompetitionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	competition, err := h.competitionService.Create(r.Context(), req.ToDomain(0))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromCompetition(competition))
}

// UpdateCompetition godoc
//
//	@Summary		Update a competition
//	@Description	Status is changed through the status endpoint and is ignored here
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int							true	"Competition ID"
//	@Param			request	body		dto.CompetitionRequestDTO	true	"Competition"
//	@Success		200		{object}	dto.CompetitionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid competition"
//	@Failure		404		{object}	utils.Response	"Competition not found"
//	@Router			/api/admin/competitions/{id} [put]
func (h *AdminHandler) UpdateCompetition(w http.ResponseWriter, r *http.Request) {
	id, ok := competitionID(w, r)
	if !ok {
		return
	}
	var req dto.CompetitionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	competition, err := h.competitionService.Update(r.Context(), req.ToDomain(id))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetition(competition))
}

// DeleteCompetition godoc
//
//	@Summary		Delete a competition
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Competition ID"
//	@Success		204
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Failure		409	{object}	utils.Response	"Competition has entries"
//	@Router			/api/admin/competitions/{id} [delete]
func (h *AdminHandler) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	id, ok := competitionID(w, r)
	if !ok {
		return
	}
	if err := h.competitionService.Delete(r.Context(), id); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetCompetitionStatus godoc
//
//	@Summary		Change competition status
//	@Description	Only draft to active and active to ended are allowed
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int						true	"Competition ID"
//	@Param			request	body		dto.SetStatusRequestDTO	true	"Target status"
//	@Success		200		{object}	dto.CompetitionResponseDTO
//	@Failure		400		{object}	utils.Response	"Unknown status"
//	@Failure		409		{object}	utils.Response	"Transition not allowed"
//	@Router			/api/admin/competitions/{id}/status [post]
func (h *AdminHandler) SetCompetitionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := competitionID(w, r)
	if !ok {
		return
	}
	var req dto.SetStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	competition, err := h.competitionService.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompetition(competition))
}

// DrawWinner godoc
//
//	@Summary		Draw a winner
//	@Description	Picks one entry uniformly at random and ends the competition
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Competition ID"
//	@Success		200	{object}	dto.EntryResponseDTO
//	@Failure		404	{object}	utils.Response	"Competition not found"
//	@Failure		409	{object}	utils.Response	"Draft, no entries or already drawn"
//	@Router			/api/admin/competitions/{id}/draw [post]
func (h *AdminHandler) DrawWinner(w http.ResponseWriter, r *http.Request) {
	id, ok := competitionID(w, r)
	if !ok {
		return
	}
	entry, err := h.competitionService.DrawWinner(r.Context(), id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromEntry(entry))
}

// ListUsers godoc
//
//	@Summary		All users
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.UserResponseDTO
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Router			/api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.UserResponseDTO, 0, len(users))
	for i := range users {
		response = append(response, dto.FromUser(&users[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// SetUserRole godoc
//
//	@Summary		Change a user's role
//	@Tags			Admin
//	@Accept			json
//	@Security		BearerAuth
//	@Param			id		path	int						true	"User ID"
//	@Param			request	body	dto.SetRoleRequestDTO	true	"Role"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Unknown role"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Router			/api/admin/users/{id}/role [put]
func (h *AdminHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IntParam(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	var req dto.SetRoleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.userService.SetRole(r.Context(), id, req.Role); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser godoc
//
//	@Summary		Delete a user
//	@Description	Removes the user with their entries, dividends and referrals
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			id	path	int	true	"User ID"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Cannot delete own account"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Router			/api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := utils.IntParam(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.userService.Delete(r.Context(), adminID, id); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTotals godoc
//
//	@Summary		Platform totals
//	@Description	Users, entries, spend, dividends by status and outstanding site credit
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.PlatformTotalsResponseDTO
//	@Failure		503	{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/admin/totals [get]
func (h *AdminHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.ledgerService.PlatformTotals(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromPlatformTotals(totals))
}

func competitionID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := utils.IntParam(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid competition id")
	}
	return id, ok
}

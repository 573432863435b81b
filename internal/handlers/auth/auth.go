package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/dto"
	"github.com/GlebRadaev/prizepool/pkg/utils"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password, referralCode string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GenerateToken(user *domain.User) (string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create a user account, optionally linked to a referrer by referral code
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or referral code"
//	@Failure		409		{object}	utils.Response	"User already exists"
//	@Failure		429		{object}	utils.Response	"Too many requests"
//	@Failure		503		{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.ReferralCode)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	h.respondWithToken(w, user, "User successfully registered")
}

// Login godoc
//
//	@Summary		Authenticate user
//	@Description	Log in with email and password and get a JWT token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		429		{object}	utils.Response	"Too many requests"
//	@Failure		503		{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			utils.RespondWithDomainError(w, err)
			return
		}
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	h.respondWithToken(w, user, "User successfully authenticated")
}

// RequestPasswordReset godoc
//
//	@Summary		Request a password reset
//	@Description	Sends a reset link when the email is registered. The response is the same either way.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PasswordResetRequestDTO	true	"Reset request body"
//	@Success		202		{object}	dto.MessageResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or email"
//	@Failure		429		{object}	utils.Response	"Too many requests"
//	@Failure		503		{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.MessageResponseDTO{
		Message: "If the email is registered, a reset link has been sent",
	})
}

// ConfirmPasswordReset godoc
//
//	@Summary		Set a new password
//	@Description	Uses a reset token to replace the password. Each token works once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PasswordResetConfirmDTO	true	"New password and reset token"
//	@Success		200		{object}	dto.MessageResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid body, password or token"
//	@Failure		429		{object}	utils.Response	"Too many requests"
//	@Failure		503		{object}	utils.Response	"Service temporarily unavailable"
//	@Router			/api/user/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetConfirmDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	err := h.authService.ResetPassword(r.Context(), req.Token, req.Password)
	switch {
	case err == nil:
		utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: "Password updated"})
	case errors.Is(err, domain.ErrUnauthorized):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or expired reset token")
	default:
		utils.RespondWithDomainError(w, err)
	}
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *domain.User, message string) {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		zap.L().Error("can't generate token", zap.Int("userID", user.ID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		Message: message,
		Token:   token,
	})
}

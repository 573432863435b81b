package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"go.uber.org/zap"
)

type Response struct {
	Error string `json:"error,omitempty" example:"Internal server error"`
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("can't marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, Response{Error: message})
}

// RespondWithDomainError maps the domain error taxonomy onto HTTP statuses.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInsufficientCredit):
		RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		RespondWithError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/pkg/utils"
	"go.uber.org/zap"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

// RoleLookup returns the current role of a user straight from the store.
type RoleLookup func(ctx context.Context, userID int) (string, error)

func Middleware(jwtService JWTServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware must run after Middleware. The role claim in the token is
// ignored: a demoted admin loses access on the next request.
func AdminMiddleware(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserID(r.Context())
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			role, err := lookup(r.Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				zap.L().Error("role lookup failed", zap.Int("userID", userID), zap.Error(err))
				utils.RespondWithDomainError(w, err)
				return
			}
			if role != domain.RoleAdmin {
				zap.L().Warn("admin route denied", zap.Int("userID", userID), zap.String("path", r.URL.Path))
				utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func UserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

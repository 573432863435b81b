package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/prizepool/docs"
	accounthandlers "github.com/GlebRadaev/prizepool/internal/handlers/account"
	adminhandlers "github.com/GlebRadaev/prizepool/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/prizepool/internal/handlers/auth"
	competitionhandlers "github.com/GlebRadaev/prizepool/internal/handlers/competitions"
	dividendhandlers "github.com/GlebRadaev/prizepool/internal/handlers/dividends"
	entryhandlers "github.com/GlebRadaev/prizepool/internal/handlers/entries"
	"github.com/GlebRadaev/prizepool/internal/metrics"
	"github.com/GlebRadaev/prizepool/internal/service"
	"github.com/GlebRadaev/prizepool/pkg/auth"
	"github.com/GlebRadaev/prizepool/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	RequestPasswordReset(w http.ResponseWriter, r *http.Request)
	ConfirmPasswordReset(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdatePayoutSettings(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetReferrals(w http.ResponseWriter, r *http.Request)
}

type CompetitionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Featured(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type EntryHandler interface {
	Checkout(w http.ResponseWriter, r *http.Request)
	EnterWithCredit(w http.ResponseWriter, r *http.Request)
	GetEntries(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
}

type DividendHandler interface {
	GetDividends(w http.ResponseWriter, r *http.Request)
	Allocate(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Settle(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListCompetitions(w http.ResponseWriter, r *http.Request)
	GetCompetition(w http.ResponseWriter, r *http.Request)
	CreateCompetition(w http.ResponseWriter, r *http.Request)
	UpdateCompetition(w http.ResponseWriter, r *http.Request)
	DeleteCompetition(w http.ResponseWriter, r *http.Request)
	SetCompetitionStatus(w http.ResponseWriter, r *http.Request)
	DrawWinner(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	SetUserRole(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
	GetTotals(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	AccountHandler     AccountHandler
	CompetitionHandler CompetitionHandler
	EntryHandler       EntryHandler
	DividendHandler    DividendHandler
	AdminHandler       AdminHandler

	JWTService auth.JWTServiceInterface
	RoleLookup auth.RoleLookup
	// AuthLimiter guards the credential and webhook endpoints.
	AuthLimiter *ratelimit.RateLimiter
}

func New(s *service.Services, limiter *ratelimit.RateLimiter) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		AccountHandler:     accounthandlers.New(s.UserService, s.LedgerService, s.ReferralService),
		CompetitionHandler: competitionhandlers.New(s.CompetitionService),
		EntryHandler:       entryhandlers.New(s.EntryService),
		DividendHandler:    dividendhandlers.New(s.DividendService, s.PayoutService),
		AdminHandler:       adminhandlers.New(s.CompetitionService, s.UserService, s.LedgerService),
		JWTService:         s.JWTService,
		RoleLookup:         s.UserService.Role,
		AuthLimiter:        limiter,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	authenticated := auth.Middleware(h.JWTService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.AuthLimiter.Handler)
			r.Post("/user/register", h.AuthHandler.Register)
			r.Post("/user/login", h.AuthHandler.Login)
			r.Post("/user/password-reset", h.AuthHandler.RequestPasswordReset)
			r.Post("/user/password-reset/confirm", h.AuthHandler.ConfirmPasswordReset)
			r.Post("/payments/webhook", h.EntryHandler.Webhook)
		})

		r.Route("/competitions", func(r chi.Router) {
			r.Get("/", h.CompetitionHandler.List)
			r.Get("/featured", h.CompetitionHandler.Featured)
			r.Get("/{id}", h.CompetitionHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/{id}/checkout", h.EntryHandler.Checkout)
				r.Post("/{id}/enter-with-credit", h.EntryHandler.EnterWithCredit)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/profile", h.AccountHandler.GetProfile)
			r.Put("/payout-settings", h.AccountHandler.UpdatePayoutSettings)
			r.Get("/summary", h.AccountHandler.GetSummary)
			r.Get("/referrals", h.AccountHandler.GetReferrals)
			r.Get("/entries", h.EntryHandler.GetEntries)
			r.Get("/dividends", h.DividendHandler.GetDividends)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticated, auth.AdminMiddleware(h.RoleLookup))

			r.Route("/competitions", func(r chi.Router) {
				r.Get("/", h.AdminHandler.ListCompetitions)
				r.Post("/", h.AdminHandler.CreateCompetition)
				r.Get("/{id}", h.AdminHandler.GetCompetition)
				r.Put("/{id}", h.AdminHandler.UpdateCompetition)
				r.Delete("/{id}", h.AdminHandler.DeleteCompetition)
				r.Post("/{id}/status", h.AdminHandler.SetCompetitionStatus)
				r.Post("/{id}/draw", h.AdminHandler.DrawWinner)
			})
			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.AdminHandler.ListUsers)
				r.Put("/{id}/role", h.AdminHandler.SetUserRole)
				r.Delete("/{id}", h.AdminHandler.DeleteUser)
			})
			r.Route("/dividends", func(r chi.Router) {
				r.Post("/allocate", h.DividendHandler.Allocate)
				r.Get("/pending", h.DividendHandler.GetPending)
				r.Post("/settle", h.DividendHandler.Settle)
				r.Post("/{id}/pay", h.DividendHandler.MarkPaid)
			})
			r.Get("/totals", h.AdminHandler.GetTotals)
		})
	})

	return r
}

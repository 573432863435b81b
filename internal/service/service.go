package service

import (
	"github.com/GlebRadaev/prizepool/internal/config"
	"github.com/GlebRadaev/prizepool/internal/payment"
	"github.com/GlebRadaev/prizepool/internal/repo"
	"github.com/GlebRadaev/prizepool/internal/service/authservice"
	"github.com/GlebRadaev/prizepool/internal/service/competitionservice"
	"github.com/GlebRadaev/prizepool/internal/service/dividendservice"
	"github.com/GlebRadaev/prizepool/internal/service/entryservice"
	"github.com/GlebRadaev/prizepool/internal/service/ledgerservice"
	"github.com/GlebRadaev/prizepool/internal/service/payoutservice"
	"github.com/GlebRadaev/prizepool/internal/service/referralservice"
	"github.com/GlebRadaev/prizepool/internal/service/userservice"
	"github.com/GlebRadaev/prizepool/pkg/auth"
	"github.com/GlebRadaev/prizepool/pkg/clients"
	"go.uber.org/zap"
)

type Services struct {
	AuthService        *authservice.Service
	UserService        *userservice.Service
	CompetitionService *competitionservice.Service
	EntryService       *entryservice.Service
	ReferralService    *referralservice.Service
	DividendService    *dividendservice.Service
	PayoutService      *payoutservice.Service
	LedgerService      *ledgerservice.Service
	JWTService         auth.JWTServiceInterface
}

func New(repo *repo.Repositories, cfg *config.Config) *Services {
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	referralService := referralservice.New(repo.ReferralRepo)

	return &Services{
		AuthService:        authservice.New(repo.UserRepo, &auth.HashService{}, jwtService, authservice.NewLogSender(cfg.PublicURL)),
		UserService:        userservice.New(repo.UserRepo),
		CompetitionService: competitionservice.New(repo.CompetitionRepo, repo.EntryRepo),
		EntryService:       entryservice.New(repo.CompetitionRepo, repo.EntryRepo, referralService, newProcessor(cfg)),
		ReferralService:    referralService,
		DividendService: dividendservice.New(repo.DividendRepo, dividendservice.Config{
			SharePercent: cfg.ProfitSharePercent,
			MinPayout:    cfg.MinPayout,
		}),
		PayoutService: payoutservice.New(
			repo.DividendRepo,
			repo.UserRepo,
			payoutservice.NewTransferGateway(cfg.TransferWebhookURL, clients.NewHTTPClient()),
			cfg.MinPayout,
		),
		LedgerService: ledgerservice.New(repo.LedgerRepo),
		JWTService:    jwtService,
	}
}

func newProcessor(cfg *config.Config) payment.Processor {
	if cfg.PaymentMode == config.PaymentModeLive {
		zap.L().Info("payments: live mode")
		return payment.NewStripe(payment.StripeConfig{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
			Currency:      cfg.Currency,
			PublicURL:     cfg.PublicURL,
		})
	}
	zap.L().Info("payments: demo mode, no charges are taken")
	return payment.NewDemo(cfg.PublicURL)
}

package repo

import (
	"github.com/GlebRadaev/prizepool/internal/pg"
	competitionrepo "github.com/GlebRadaev/prizepool/internal/repo/competition-repo"
	dividendrepo "github.com/GlebRadaev/prizepool/internal/repo/dividend-repo"
	entryrepo "github.com/GlebRadaev/prizepool/internal/repo/entry-repo"
	ledgerrepo "github.com/GlebRadaev/prizepool/internal/repo/ledger-repo"
	referralrepo "github.com/GlebRadaev/prizepool/internal/repo/referral-repo"
	userrepo "github.com/GlebRadaev/prizepool/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	CompetitionRepo *competitionrepo.Repository
	EntryRepo       *entryrepo.Repository
	DividendRepo    *dividendrepo.Repository
	ReferralRepo    *referralrepo.Repository
	LedgerRepo      *ledgerrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn, txManager),
		CompetitionRepo: competitionrepo.New(conn),
		EntryRepo:       entryrepo.New(conn, txManager),
		DividendRepo:    dividendrepo.New(conn, txManager),
		ReferralRepo:    referralrepo.New(conn, txManager),
		LedgerRepo:      ledgerrepo.New(conn),
	}
}

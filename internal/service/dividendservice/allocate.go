package dividendservice

import (
	"sort"
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/shopspring/decimal"
)

var immediateRatio = decimal.RequireFromString("0.30")

// Share is one user's part of a pool.
type Share struct {
	UserID       int
	PayoutMethod string
	Amount       decimal.Decimal
}

// Apportion splits pool across spends in proportion to each spend, to the
// penny. Pennies lost to flooring go to the largest remainders (lowest
// user id on ties), so the shares always add up to pool exactly.
func Apportion(pool decimal.Decimal, spends []domain.UserSpend) []Share {
	total := decimal.Zero
	for _, s := range spends {
		total = total.Add(s.Spent)
	}
	if !total.IsPositive() {
		return nil
	}

	pence := pool.Shift(2)
	type part struct {
		idx       int
		pence     decimal.Decimal
		remainder decimal.Decimal
	}
	parts := make([]part, len(spends))
	allotted := decimal.Zero
	for i, s := range spends {
		q, r := pence.Mul(s.Spent).QuoRem(total, 0)
		parts[i] = part{idx: i, pence: q, remainder: r}
		allotted = allotted.Add(q)
	}

	leftover := pence.Sub(allotted).IntPart()
	order := make([]int, len(parts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := parts[order[a]], parts[order[b]]
		if c := pa.remainder.Cmp(pb.remainder); c != 0 {
			return c > 0
		}
		return spends[pa.idx].UserID < spends[pb.idx].UserID
	})
	for i := int64(0); i < leftover; i++ {
		p := &parts[order[i]]
		p.pence = p.pence.Add(decimal.NewFromInt(1))
	}

	shares := make([]Share, len(spends))
	for i, s := range spends {
		shares[i] = Share{
			UserID:       s.UserID,
			PayoutMethod: s.PayoutMethod,
			Amount:       parts[i].pence.Shift(-2),
		}
	}
	return shares
}

// Split divides a share into its immediate 30% and the deferred rest.
func Split(share decimal.Decimal) (immediate, deferred decimal.Decimal) {
	immediate = share.Mul(immediateRatio).Round(2)
	return immediate, share.Sub(immediate)
}

// DeferredPayableAt is midnight UTC on the 1st of the month after drawnAt.
func DeferredPayableAt(drawnAt time.Time) time.Time {
	t := drawnAt.UTC()
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

func ImmediatePayableAt(drawnAt time.Time) time.Time {
	return drawnAt.UTC().Add(24 * time.Hour)
}

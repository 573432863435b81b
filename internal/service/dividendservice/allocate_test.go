package dividendservice

import (
	"math/rand"
	"testing"
	"time"

	"github.com/GlebRadaev/prizepool/internal/domain"
	"github.com/GlebRadaev/prizepool/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spend(userID int, amount string) domain.UserSpend {
	return domain.UserSpend{UserID: userID, PayoutMethod: domain.PayoutSiteCredit, Spent: decimal.RequireFromString(amount)}
}

func sum(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}

func TestApportionScenario(t *testing.T) {
	shares := Apportion(decimal.NewFromInt(6000), []domain.UserSpend{
		spend(1, "100"),
		spend(2, "9900"),
	})

	require.Len(t, shares, 2)
	testutil.AssertDecimal(t, "60", shares[0].Amount)
	testutil.AssertDecimal(t, "5940", shares[1].Amount)

	immediate, deferred := Split(shares[0].Amount)
	assert.Equal(t, "18.00", immediate.StringFixed(2))
	assert.Equal(t, "42.00", deferred.StringFixed(2))
}

func TestApportionHandsOutRemainderPennies(t *testing.T) {
	shares := Apportion(decimal.NewFromInt(100), []domain.UserSpend{
		spend(1, "1"),
		spend(2, "1"),
		spend(3, "1"),
	})

	testutil.AssertDecimal(t, "33.34", shares[0].Amount)
	testutil.AssertDecimal(t, "33.33", shares[1].Amount)
	testutil.AssertDecimal(t, "33.33", shares[2].Amount)
	testutil.AssertDecimal(t, "100", sum(shares))
}

func TestApportionLargestRemainderWins(t *testing.T) {
	// exact shares: 0.0666.., 0.1333.., 0.80 pence of 0.01
	shares := Apportion(decimal.RequireFromString("0.01"), []domain.UserSpend{
		spend(1, "1"),
		spend(2, "2"),
		spend(3, "12"),
	})

	testutil.AssertDecimal(t, "0", shares[0].Amount)
	testutil.AssertDecimal(t, "0", shares[1].Amount)
	testutil.AssertDecimal(t, "0.01", shares[2].Amount)
}

func TestApportionSumsToPool(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		pool := decimal.New(rng.Int63n(10_000_000)+1, -2)
		spends := make([]domain.UserSpend, rng.Intn(30)+1)
		for j := range spends {
			spends[j] = domain.UserSpend{UserID: j + 1, Spent: decimal.New(rng.Int63n(100_000)+1, -2)}
		}

		shares := Apportion(pool, spends)

		require.Truef(t, pool.Equal(sum(shares)), "pool %s, shares sum %s", pool, sum(shares))
		for _, s := range shares {
			assert.False(t, s.Amount.IsNegative())
			assert.True(t, s.Amount.Equal(s.Amount.Round(2)))

			immediate, deferred := Split(s.Amount)
			assert.True(t, immediate.Equal(s.Amount.Mul(immediateRatio).Round(2)))
			assert.True(t, s.Amount.Equal(immediate.Add(deferred)))
		}
	}
}

func TestApportionZeroSpend(t *testing.T) {
	assert.Nil(t, Apportion(decimal.NewFromInt(10), nil))
	assert.Nil(t, Apportion(decimal.NewFromInt(10), []domain.UserSpend{spend(1, "0")}))
}

func TestSplitRounding(t *testing.T) {
	tests := []struct {
		share     string
		immediate string
		deferred  string
	}{
		{share: "60", immediate: "18", deferred: "42"},
		{share: "0.05", immediate: "0.02", deferred: "0.03"},
		{share: "0.01", immediate: "0", deferred: "0.01"},
		{share: "3.33", immediate: "1", deferred: "2.33"},
		{share: "10.15", immediate: "3.05", deferred: "7.1"},
	}
	for _, tt := range tests {
		t.Run(tt.share, func(t *testing.T) {
			immediate, deferred := Split(decimal.RequireFromString(tt.share))
			testutil.AssertDecimal(t, tt.immediate, immediate)
			testutil.AssertDecimal(t, tt.deferred, deferred)
		})
	}
}

func TestPayableDates(t *testing.T) {
	drawn := time.Date(2024, 12, 15, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 12, 16, 18, 30, 0, 0, time.UTC), ImmediatePayableAt(drawn))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), DeferredPayableAt(drawn))

	london := time.FixedZone("BST", 3600)
	lateLocal := time.Date(2024, 7, 1, 0, 30, 0, 0, london)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), DeferredPayableAt(lateLocal))
}

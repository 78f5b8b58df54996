package pricing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// salePool builds n comps for a make/model with evenly spread costs.
func salePool(mk, model string, year, n, baseCost, step, days, gross int, now time.Time) []domain.SalesRecord {
	pool := make([]domain.SalesRecord, 0, n)
	for i := 0; i < n; i++ {
		cost := baseCost + i*step
		pool = append(pool, domain.SalesRecord{
			Make:        mk,
			Model:       model,
			Year:        year,
			SaleDate:    now.AddDate(0, 0, -60),
			DaysInStock: days,
			SellPrice:   cost + gross,
			TotalCost:   cost,
		})
	}
	return pool
}

func TestRun_TooFewComps(t *testing.T) {
	t.Parallel()

	q := domain.QueryVehicle{Make: "Toyota", Model: "Hilux", Year: 2021}
	pool := salePool("Toyota", "Hilux", 2021, 1, 15000, 0, 20, 2000, testNow)

	out := Run(q, pool, testNow)

	assert.False(t, out.AllowPrice)
	assert.Equal(t, domain.VerdictNeedPics, out.Verdict)
	assert.Equal(t, 1, out.NComps)
	assert.Nil(t, out.BuyLow)
	assert.Nil(t, out.BuyHigh)
	assert.Empty(t, out.DemandClass)
	assert.NotEmpty(t, out.Notes)
}

func TestRun_FastSellerPricesAtHighConfidence(t *testing.T) {
	t.Parallel()

	q := domain.QueryVehicle{Make: "Toyota", Model: "Hilux", Year: 2021}
	pool := salePool("Toyota", "Hilux", 2021, 5, 10000, 500, 15, 3000, testNow)

	out := Run(q, pool, testNow)

	require.True(t, out.AllowPrice)
	assert.Equal(t, domain.VerdictBuy, out.Verdict)
	assert.Equal(t, domain.DemandFast, out.DemandClass)
	assert.Equal(t, domain.ConfidenceHigh, out.Confidence)
	assert.Equal(t, 5, out.NComps)

	require.NotNil(t, out.BuyLow)
	require.NotNil(t, out.BuyHigh)
	assert.Equal(t, 11000, *out.BuyLow)  // weighted median of 10000..12000
	assert.Equal(t, 12000, *out.BuyHigh) // anchor + 1000, capped by nothing

	require.NotNil(t, out.AnchorOwe)
	assert.Equal(t, 11000, *out.AnchorOwe)
	require.NotNil(t, out.AnchorOweP75)
	assert.Equal(t, 11500, *out.AnchorOweP75)

	// Retail context is informational and derived from sell prices only.
	require.NotNil(t, out.RetailContextLow)
	assert.Equal(t, 14000, *out.RetailContextLow)
}

func TestRun_SlowMoverOverride(t *testing.T) {
	t.Parallel()

	q := domain.QueryVehicle{Make: "Holden", Model: "Cruze", Year: 2018}
	pool := salePool("Holden", "Cruze", 2018, 4, 9000, 500, 10, 2500, testNow)

	out := Run(q, pool, testNow)

	require.True(t, out.AllowPrice)
	assert.Equal(t, domain.DemandHardWork, out.DemandClass)
	assert.Equal(t, domain.VerdictHitIt, out.Verdict)

	found := false
	for _, note := range out.Notes {
		if strings.Contains(note, "overridden to hard_work") {
			found = true
		}
	}
	assert.True(t, found, "notes should explain the override: %v", out.Notes)
}

func TestRun_TruckFirewall(t *testing.T) {
	t.Parallel()

	q := domain.QueryVehicle{Make: "Chevrolet", Model: "Silverado 2500", Year: 2020}
	pool := salePool("Chevrolet", "Silverado 2500", 2020, 2, 110000, 5000, 30, 4000, testNow)

	out := Run(q, pool, testNow)

	assert.False(t, out.AllowPrice)
	assert.Equal(t, domain.VerdictEscalate, out.Verdict)
	assert.True(t, out.FirewallTriggered)
	assert.NotEmpty(t, out.EscalationReason)
	assert.Nil(t, out.BuyLow)
	assert.Nil(t, out.BuyHigh)
}

func TestRun_HeavyDutyFloorClamp(t *testing.T) {
	t.Parallel()

	// Enough comps to clear the firewall, but the comp costs are far below
	// what a late-model HD truck can actually be bought for.
	q := domain.QueryVehicle{Make: "Ram", Model: "3500", Year: 2019}
	pool := salePool("Ram", "3500", 2019, 4, 38000, 1000, 20, 2500, testNow)

	out := Run(q, pool, testNow)

	assert.False(t, out.AllowPrice)
	assert.Equal(t, domain.VerdictEscalate, out.Verdict)
	assert.True(t, out.FloorApplied)
	assert.False(t, out.FirewallTriggered, "floor clamp is not the truck firewall")
	assert.NotEmpty(t, out.EscalationReason)
	assert.Nil(t, out.BuyHigh)
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	q := domain.QueryVehicle{Make: "Toyota", Model: "Hilux", Year: 2021}
	pool := salePool("Toyota", "Hilux", 2021, 5, 10000, 500, 15, 3000, testNow)

	first := Run(q, pool, testNow)
	second := Run(q, pool, testNow)

	assert.Equal(t, first, second)
}

func TestRun_PriceInvariants(t *testing.T) {
	t.Parallel()

	pools := map[string][]domain.SalesRecord{
		"fast":      salePool("Toyota", "Hilux", 2021, 5, 10000, 500, 15, 3000, testNow),
		"average":   salePool("Toyota", "Hilux", 2021, 4, 30000, 1000, 30, 1500, testNow),
		"hard work": salePool("Toyota", "Hilux", 2021, 4, 30000, 1000, 70, 2500, testNow),
		"poison":    salePool("Toyota", "Hilux", 2021, 4, 20000, 500, 30, -2000, testNow),
	}

	q := domain.QueryVehicle{Make: "Toyota", Model: "Hilux", Year: 2021}

	for name, pool := range pools {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			maxCost := 0
			for _, r := range pool {
				if r.TotalCost > maxCost {
					maxCost = r.TotalCost
				}
			}

			out := Run(q, pool, testNow)
			require.True(t, out.AllowPrice, "notes: %v", out.Notes)

			require.NotNil(t, out.BuyLow)
			require.NotNil(t, out.BuyHigh)
			assert.Greater(t, *out.BuyHigh, *out.BuyLow)
			assert.LessOrEqual(t, *out.BuyHigh, maxCost,
				"never pay more than anyone has owed")
			assert.NotEmpty(t, out.DemandClass)
			assert.NotEmpty(t, out.Confidence)
			assert.True(t, out.Verdict.Priced())
		})
	}
}

func TestRun_EmptyPool(t *testing.T) {
	t.Parallel()

	q := domain.QueryVehicle{Make: "Toyota", Model: "Hilux", Year: 2021}
	out := Run(q, nil, testNow)

	assert.False(t, out.AllowPrice)
	assert.Equal(t, domain.VerdictNeedPics, out.Verdict)
	assert.Equal(t, 0, out.NComps)
}

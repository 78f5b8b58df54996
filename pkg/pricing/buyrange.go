package pricing

import (
	"fmt"
	"math"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// BuyRange is a bounded buy-price recommendation in whole AUD.
type BuyRange struct {
	Low        int
	High       int
	Anchor     int
	CapApplied bool
	Notes      []string
}

// Per-class multipliers and buffers.
const (
	poisonLowMult  = 0.80
	poisonHighMult = 0.88

	hardWorkLowMult   = 0.90
	hardWorkHighMult  = 0.97
	hardWorkP75Margin = 500

	velocityDiscountDays = 60
	velocityDiscountPct  = 0.03

	minSpread = 500
)

// buffer returns the tiered upside buffer for average/fast classes.
func buffer(anchor int, tiers [3]int) int {
	switch {
	case anchor < 20000:
		return tiers[0]
	case anchor < 40000:
		return tiers[1]
	default:
		return tiers[2]
	}
}

var (
	averageBuffers = [3]int{800, 1000, 1200}
	fastBuffers    = [3]int{1000, 1200, 1500}
)

// ComputeBuyRange derives the bounded buy range from the cost-basis
// statistics and demand class. The anchor is the weighted median, falling
// back to the plain median when weighting produced nothing. Post-processing
// order is fixed: round to $100, enforce the minimum spread, then apply the
// global cap at the highest OWE ever observed in the comp set. The engine
// never recommends paying more than anyone has actually owed.
func ComputeBuyRange(
	stats *OweStats,
	class domain.DemandClass,
	avgDays float64,
) BuyRange {
	anchor := stats.WeightedMedian
	if anchor <= 0 {
		anchor = stats.Median
	}

	br := BuyRange{Anchor: anchor}
	a := float64(anchor)
	var low, high float64

	switch class {
	case domain.DemandPoison:
		low = a * poisonLowMult
		high = a * poisonHighMult
		if high > float64(stats.Median) {
			high = float64(stats.Median)
			br.CapApplied = true
			br.Notes = append(br.Notes, "poison cap: buy_high held at median OWE")
		}
	case domain.DemandHardWork:
		low = a * hardWorkLowMult
		high = a * hardWorkHighMult
		if cap := float64(stats.P75 + hardWorkP75Margin); high > cap {
			high = cap
			br.CapApplied = true
			br.Notes = append(br.Notes, "hard_work cap: buy_high held at P75 + $500")
		}
		if avgDays > velocityDiscountDays {
			discount := a * velocityDiscountPct
			low -= discount
			high -= discount
			br.Notes = append(br.Notes, fmt.Sprintf(
				"velocity discount: avg %.0f days in stock, both bounds down 3%%", avgDays))
		}
	case domain.DemandAverage:
		low = a
		high = a + float64(buffer(anchor, averageBuffers))
	case domain.DemandFast:
		low = a
		high = a + float64(buffer(anchor, fastBuffers))
	}

	br.Low = roundTo100(low)
	br.High = roundTo100(high)

	// A class cap can land buy_high under buy_low when recent expensive
	// sales drag the weighted anchor far above the plain median. The cap
	// wins; low follows it down. Only an uncapped range resolves a
	// collapsed spread upward.
	if br.High <= br.Low {
		if br.CapApplied {
			br.Low = br.High - minSpread
		} else {
			br.High = br.Low + minSpread
		}
	}

	if br.High > stats.Max {
		br.High = stats.Max
		br.CapApplied = true
		br.Notes = append(br.Notes, fmt.Sprintf(
			"global cap: buy_high held at highest observed OWE $%d", stats.Max))
		if br.Low >= br.High {
			br.Low = br.High - minSpread
		}
	}

	return br
}

func roundTo100(v float64) int {
	return int(math.Round(v/100) * 100)
}

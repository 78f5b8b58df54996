package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

func TestComputeBuyRange_Fast(t *testing.T) {
	t.Parallel()

	stats := &OweStats{Median: 11000, P75: 11500, Max: 12000, WeightedMedian: 11000, N: 5}
	br := ComputeBuyRange(stats, domain.DemandFast, 15)

	assert.Equal(t, 11000, br.Low)
	assert.Equal(t, 12000, br.High)
	assert.Equal(t, 11000, br.Anchor)
	assert.False(t, br.CapApplied)
}

func TestComputeBuyRange_FastBufferTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		anchor   int
		wantHigh int
	}{
		{15000, 16000}, // under 20k: +1000
		{25000, 26200}, // under 40k: +1200
		{50000, 51500}, // 40k and up: +1500
	}

	for _, tt := range tests {
		stats := &OweStats{
			Median: tt.anchor, P75: tt.anchor, Max: tt.anchor + 5000,
			WeightedMedian: tt.anchor, N: 4,
		}
		br := ComputeBuyRange(stats, domain.DemandFast, 15)
		assert.Equal(t, tt.anchor, br.Low, "anchor %d", tt.anchor)
		assert.Equal(t, tt.wantHigh, br.High, "anchor %d", tt.anchor)
	}
}

func TestComputeBuyRange_AverageBufferTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		anchor   int
		wantHigh int
	}{
		{15000, 15800},
		{25000, 26000},
		{50000, 51200},
	}

	for _, tt := range tests {
		stats := &OweStats{
			Median: tt.anchor, P75: tt.anchor, Max: tt.anchor + 5000,
			WeightedMedian: tt.anchor, N: 4,
		}
		br := ComputeBuyRange(stats, domain.DemandAverage, 30)
		assert.Equal(t, tt.anchor, br.Low, "anchor %d", tt.anchor)
		assert.Equal(t, tt.wantHigh, br.High, "anchor %d", tt.anchor)
	}
}

func TestComputeBuyRange_Poison(t *testing.T) {
	t.Parallel()

	t.Run("discounted below anchor", func(t *testing.T) {
		t.Parallel()

		stats := &OweStats{Median: 20000, P75: 21000, Max: 22000, WeightedMedian: 20000, N: 4}
		br := ComputeBuyRange(stats, domain.DemandPoison, 30)

		assert.Equal(t, 16000, br.Low)  // 20000 * 0.80
		assert.Equal(t, 17600, br.High) // 20000 * 0.88
		assert.False(t, br.CapApplied)
	})

	t.Run("high capped at median", func(t *testing.T) {
		t.Parallel()

		// Weighted anchor above the plain median pushes 0.88*anchor past it.
		stats := &OweStats{Median: 17000, P75: 19000, Max: 21000, WeightedMedian: 20000, N: 4}
		br := ComputeBuyRange(stats, domain.DemandPoison, 30)

		assert.Equal(t, 16000, br.Low)
		assert.Equal(t, 17000, br.High)
		assert.True(t, br.CapApplied)
	})

	t.Run("median cap wins over minimum spread", func(t *testing.T) {
		t.Parallel()

		// Recent expensive sales over old cheap ones put the weighted
		// anchor far above the plain median. The capped high must stay at
		// the median with low pulled down under it, never re-raised.
		stats := &OweStats{Median: 10000, P75: 10000, Max: 30000, WeightedMedian: 30000, N: 4}
		br := ComputeBuyRange(stats, domain.DemandPoison, 30)

		assert.True(t, br.CapApplied)
		assert.Equal(t, 10000, br.High)
		assert.Equal(t, 9500, br.Low)
		assert.LessOrEqual(t, br.High, stats.Median)
	})
}

func TestComputeBuyRange_HardWork(t *testing.T) {
	t.Parallel()

	t.Run("discount multipliers", func(t *testing.T) {
		t.Parallel()

		stats := &OweStats{Median: 30000, P75: 30500, Max: 32000, WeightedMedian: 30000, N: 4}
		br := ComputeBuyRange(stats, domain.DemandHardWork, 30)

		assert.Equal(t, 27000, br.Low)  // 30000 * 0.90
		assert.Equal(t, 29100, br.High) // 30000 * 0.97
	})

	t.Run("high capped at P75 plus margin", func(t *testing.T) {
		t.Parallel()

		stats := &OweStats{Median: 36000, P75: 36000, Max: 42000, WeightedMedian: 40000, N: 4}
		br := ComputeBuyRange(stats, domain.DemandHardWork, 30)

		assert.Equal(t, 36000, br.Low)
		assert.Equal(t, 36500, br.High)
		assert.True(t, br.CapApplied)
	})

	t.Run("velocity discount past sixty days", func(t *testing.T) {
		t.Parallel()

		stats := &OweStats{Median: 30000, P75: 30500, Max: 32000, WeightedMedian: 30000, N: 4}
		br := ComputeBuyRange(stats, domain.DemandHardWork, 70)

		assert.Equal(t, 26100, br.Low)  // 27000 - 900
		assert.Equal(t, 28200, br.High) // 29100 - 900
		assert.Contains(t, br.Notes[0], "velocity discount")
	})

	t.Run("p75 cap wins over minimum spread", func(t *testing.T) {
		t.Parallel()

		stats := &OweStats{Median: 10000, P75: 10000, Max: 30000, WeightedMedian: 30000, N: 4}
		br := ComputeBuyRange(stats, domain.DemandHardWork, 30)

		assert.True(t, br.CapApplied)
		assert.Equal(t, 10500, br.High) // P75 + 500
		assert.Equal(t, 10000, br.Low)
	})
}

func TestComputeBuyRange_MinimumSpread(t *testing.T) {
	t.Parallel()

	stats := &OweStats{Median: 500, P75: 500, Max: 2000, WeightedMedian: 500, N: 2}
	br := ComputeBuyRange(stats, domain.DemandPoison, 30)

	// Both bounds round to 400; the spread rule forces daylight between them.
	assert.Equal(t, 400, br.Low)
	assert.Equal(t, 900, br.High)
}

func TestComputeBuyRange_GlobalCap(t *testing.T) {
	t.Parallel()

	t.Run("high held at max observed owe", func(t *testing.T) {
		t.Parallel()

		stats := &OweStats{Median: 11000, P75: 11200, Max: 11200, WeightedMedian: 11000, N: 4}
		br := ComputeBuyRange(stats, domain.DemandFast, 15)

		assert.Equal(t, 11000, br.Low)
		assert.Equal(t, 11200, br.High)
		assert.True(t, br.CapApplied)
	})

	t.Run("low pulled back under a tight cap", func(t *testing.T) {
		t.Parallel()

		stats := &OweStats{Median: 11000, P75: 11000, Max: 11000, WeightedMedian: 11000, N: 3}
		br := ComputeBuyRange(stats, domain.DemandFast, 15)

		assert.Equal(t, 11000, br.High)
		assert.Equal(t, 10500, br.Low)
		assert.Less(t, br.Low, br.High)
	})
}

func TestComputeBuyRange_AnchorFallsBackToMedian(t *testing.T) {
	t.Parallel()

	stats := &OweStats{Median: 15000, P75: 15500, Max: 17000, WeightedMedian: 0, N: 3}
	br := ComputeBuyRange(stats, domain.DemandAverage, 30)

	assert.Equal(t, 15000, br.Anchor)
	assert.Equal(t, 15000, br.Low)
}

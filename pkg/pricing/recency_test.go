package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestRecency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		saleDate   time.Time
		wantWeight float64
		wantMonths int
	}{
		{
			name:       "three months old gets full weight",
			saleDate:   testNow.AddDate(0, 0, -91),
			wantWeight: 1.0,
			wantMonths: 2,
		},
		{
			name:       "eight months old",
			saleDate:   testNow.AddDate(0, 0, -244),
			wantWeight: 0.85,
			wantMonths: 8,
		},
		{
			name:       "twenty months old",
			saleDate:   testNow.AddDate(0, 0, -609),
			wantWeight: 0.65,
			wantMonths: 20,
		},
		{
			name:       "thirty months old",
			saleDate:   testNow.AddDate(0, 0, -913),
			wantWeight: 0.4,
			wantMonths: 29,
		},
		{
			// 1461 days is 47.99 average months; age truncates.
			name:       "four years old",
			saleDate:   testNow.AddDate(0, 0, -1461),
			wantWeight: 0.2,
			wantMonths: 47,
		},
		{
			name:       "zero date falls in oldest band",
			saleDate:   time.Time{},
			wantWeight: 0.2,
			wantMonths: 99,
		},
		{
			name:       "future date falls in oldest band",
			saleDate:   testNow.AddDate(0, 1, 0),
			wantWeight: 0.2,
			wantMonths: 99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			weight, months := Recency(tt.saleDate, testNow)
			assert.InDelta(t, tt.wantWeight, weight, 0.0001)
			assert.Equal(t, tt.wantMonths, months)
		})
	}
}

func TestBuildWeightedComps(t *testing.T) {
	t.Parallel()

	comps := []domain.SalesRecord{
		{TotalCost: 10000, SaleDate: testNow.AddDate(0, 0, -30)},
		{TotalCost: 12000, SaleDate: testNow.AddDate(0, 0, -800)},
		{TotalCost: 14000},
	}

	weighted := BuildWeightedComps(comps, testNow)
	require.Len(t, weighted, 3)

	assert.InDelta(t, 1.0, weighted[0].Weight, 0.0001)
	// 800 days is 26 months, past the two-year band.
	assert.InDelta(t, 0.4, weighted[1].Weight, 0.0001)
	assert.Equal(t, 26, weighted[1].Months)
	assert.InDelta(t, 0.2, weighted[2].Weight, 0.0001)
	assert.Equal(t, 99, weighted[2].Months)
}

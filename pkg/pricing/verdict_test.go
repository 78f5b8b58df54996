package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// confComp builds a comp with a given age in months.
func confComp(months int) WeightedComp {
	return WeightedComp{Record: domain.SalesRecord{TotalCost: 10000}, Months: months}
}

func TestComputeConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		months []int
		want   domain.Confidence
	}{
		{"five comps three recent", []int{2, 4, 8, 20, 30}, domain.ConfidenceHigh},
		{"five comps but stale", []int{2, 14, 20, 26, 30}, domain.ConfidenceMed},
		{"three stale comps", []int{20, 26, 30}, domain.ConfidenceMed},
		{"two recent comps", []int{3, 6}, domain.ConfidenceMed},
		{"two comps one recent", []int{3, 20}, domain.ConfidenceLow},
		{"single comp", []int{2}, domain.ConfidenceLow},
		{"nothing", nil, domain.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			comps := make([]WeightedComp, 0, len(tt.months))
			for _, m := range tt.months {
				comps = append(comps, confComp(m))
			}
			assert.Equal(t, tt.want, ComputeConfidence(comps))
		})
	}
}

func TestVerdictFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		class domain.DemandClass
		conf  domain.Confidence
		want  domain.Verdict
	}{
		{domain.DemandPoison, domain.ConfidenceHigh, domain.VerdictWalk},
		{domain.DemandPoison, domain.ConfidenceLow, domain.VerdictWalk},
		{domain.DemandHardWork, domain.ConfidenceHigh, domain.VerdictHitIt},
		{domain.DemandFast, domain.ConfidenceHigh, domain.VerdictBuy},
		{domain.DemandFast, domain.ConfidenceMed, domain.VerdictHardWork},
		{domain.DemandFast, domain.ConfidenceLow, domain.VerdictHardWork},
		{domain.DemandAverage, domain.ConfidenceHigh, domain.VerdictBuy},
		{domain.DemandAverage, domain.ConfidenceMed, domain.VerdictBuy},
		{domain.DemandAverage, domain.ConfidenceLow, domain.VerdictHardWork},
	}

	for _, tt := range tests {
		got := VerdictFor(tt.class, tt.conf)
		assert.Equal(t, tt.want, got, "%s/%s", tt.class, tt.conf)
	}
}

func TestShouldForceEscalation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		q      domain.QueryVehicle
		nComps int
		want   bool
	}{
		{
			name:   "late model silverado with thin comps",
			q:      domain.QueryVehicle{Make: "Chevrolet", Model: "Silverado 2500", Year: 2020},
			nComps: 2,
			want:   true,
		},
		{
			name:   "enough comps clears the firewall",
			q:      domain.QueryVehicle{Make: "Chevrolet", Model: "Silverado 2500", Year: 2020},
			nComps: 3,
			want:   false,
		},
		{
			name:   "old trucks are priced normally",
			q:      domain.QueryVehicle{Make: "Chevrolet", Model: "Silverado 2500", Year: 2016},
			nComps: 2,
			want:   false,
		},
		{
			name:   "keyword split across model and variant",
			q:      domain.QueryVehicle{Make: "Ram", Model: "2500", VariantFamily: "Laramie", Year: 2021},
			nComps: 1,
			want:   true,
		},
		{
			name:   "tundra is on the list",
			q:      domain.QueryVehicle{Make: "Toyota", Model: "Tundra", Year: 2022},
			nComps: 0,
			want:   true,
		},
		{
			name:   "ordinary ute never fires",
			q:      domain.QueryVehicle{Make: "Toyota", Model: "Hilux", Year: 2022},
			nComps: 0,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			forced, reason := ShouldForceEscalation(tt.q, tt.nComps)
			assert.Equal(t, tt.want, forced)
			if tt.want {
				require.NotEmpty(t, reason)
				assert.Contains(t, reason, "firewall")
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}

func TestHeavyDutyFloor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		q         domain.QueryVehicle
		wantFloor int
		wantOK    bool
	}{
		{
			name:      "ram 3500",
			q:         domain.QueryVehicle{Make: "Ram", Model: "3500"},
			wantFloor: 95000,
			wantOK:    true,
		},
		{
			name:      "f-250",
			q:         domain.QueryVehicle{Make: "Ford", Model: "F-250"},
			wantFloor: 85000,
			wantOK:    true,
		},
		{
			name:   "ram 1500 is not heavy duty",
			q:      domain.QueryVehicle{Make: "Ram", Model: "1500"},
			wantOK: false,
		},
		{
			name:   "not a truck",
			q:      domain.QueryVehicle{Make: "Toyota", Model: "Hilux"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			floor, ok := HeavyDutyFloor(tt.q)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFloor, floor)
		})
	}
}

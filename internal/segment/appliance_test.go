package segment

import (
	"math"
	"testing"
)

func TestAppliance(t *testing.T) {
	tests := []struct {
		name     string
		power    []float64
		params   ApplianceParams
		expected [][]float64
	}{
		{
			name:   "single run closed by later pause",
			power:  []float64{0, 0, 0, 1, 2, 3, 3, 3, 0, 0, 0, 0, 1, 1, 1},
			params: ApplianceParams{MaxPauseAllowed: 2, MinDuration: 2, MaxRise: 10},
			// The flat [1,1,1] tail never closes and is dropped.
			expected: [][]float64{{0, 1, 2, 3}},
		},
		{
			name:     "trailing open run dropped",
			power:    []float64{0, 0, 0, 0, 1, 2, 3},
			params:   ApplianceParams{MaxPauseAllowed: 2, MinDuration: 1, MaxRise: 10},
			expected: nil,
		},
		{
			name:   "too steep run discarded",
			power:  []float64{0, 0, 0, 5, 10, 15, 15, 15, 0, 0, 0, 0, 1, 2, 3, 3, 3, 0, 0, 0, 0, 9, 9},
			params: ApplianceParams{MaxPauseAllowed: 2, MinDuration: 2, MaxRise: 10},
			// First episode rises 15 kWh and is rejected; second is kept.
			expected: [][]float64{{0, 1, 2, 3}},
		},
		{
			name:     "too short run discarded",
			power:    []float64{0, 0, 0, 1, 2, 0, 0, 0, 0, 5, 5},
			params:   ApplianceParams{MaxPauseAllowed: 2, MinDuration: 3, MaxRise: 10},
			expected: nil,
		},
		{
			name:     "short pause stays inside run",
			power:    []float64{0, 0, 0, 1, 2, 2, 2, 3, 4, 0, 0, 0, 0, 9, 9},
			params:   ApplianceParams{MaxPauseAllowed: 2, MinDuration: 2, MaxRise: 10},
			expected: [][]float64{{0, 1, 2, 3, 4}},
		},
		{
			name:     "empty input",
			power:    nil,
			params:   ApplianceParams{MaxPauseAllowed: 1, MinDuration: 1, MaxRise: 1},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := Appliance(tt.power, tt.params)

			if len(runs) != len(tt.expected) {
				t.Fatalf("expected %d runs, got %d", len(tt.expected), len(runs))
			}
			for i, r := range runs {
				if len(r.Values) != len(tt.expected[i]) {
					t.Fatalf("run %d: expected %d samples, got %d", i, len(tt.expected[i]), len(r.Values))
				}
				for j, v := range r.Values {
					if math.Abs(v-tt.expected[i][j]) > 1e-9 {
						t.Errorf("run %d sample %d: expected %v, got %v", i, j, tt.expected[i][j], v)
					}
				}
			}
		})
	}
}

func TestApplianceRunsStartAtZero(t *testing.T) {
	power := []float64{3, 3, 3, 4, 5, 6, 6, 6, 6, 6, 7, 7}
	runs := Appliance(power, ApplianceParams{MaxPauseAllowed: 2, MinDuration: 1, MaxRise: 10})

	if len(runs) == 0 {
		t.Fatal("expected at least one run")
	}
	for i, r := range runs {
		if r.Values[0] != 0 {
			t.Errorf("run %d: first sample is %v, want 0 after rebasing", i, r.Values[0])
		}
	}
}

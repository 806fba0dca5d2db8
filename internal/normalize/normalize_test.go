package normalize

import (
	"math"
	"testing"

	"github.com/hauslab/powerprofiles/internal/profile"
)

func runs(values ...[]float64) []profile.Run {
	out := make([]profile.Run, len(values))
	for i, v := range values {
		out[i] = profile.Run{Values: v}
	}
	return out
}

func TestEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		runs     []profile.Run
		expected []float64
	}{
		{
			name:     "pointwise maximum",
			runs:     runs([]float64{1, 2, 0}, []float64{2, 1, 0}),
			expected: []float64{2, 2, 0},
		},
		{
			name:     "single run is its own envelope",
			runs:     runs([]float64{0.5, 1.5}),
			expected: []float64{0.5, 1.5},
		},
		{
			name:     "empty family",
			runs:     nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Envelope(tt.runs)
			if err != nil {
				t.Fatal(err)
			}
			if len(env) != len(tt.expected) {
				t.Fatalf("expected %d samples, got %d", len(tt.expected), len(env))
			}
			for i := range tt.expected {
				if env[i] != tt.expected[i] {
					t.Errorf("sample %d: expected %v, got %v", i, tt.expected[i], env[i])
				}
			}
		})
	}
}

func TestEnvelopeLengthMismatch(t *testing.T) {
	if _, err := Envelope(runs([]float64{1, 2}, []float64{1})); err == nil {
		t.Fatal("expected an error for runs of unequal length")
	}
}

func TestRuns(t *testing.T) {
	family := runs([]float64{1, 2, 0}, []float64{2, 1, 0})

	env, err := Runs(family)
	if err != nil {
		t.Fatal(err)
	}

	wantEnv := []float64{2, 2, 0}
	for i := range wantEnv {
		if env[i] != wantEnv[i] {
			t.Errorf("envelope sample %d: expected %v, got %v", i, wantEnv[i], env[i])
		}
	}

	want := [][]float64{{0.5, 1, 0}, {1, 0.5, 0}}
	for i, r := range family {
		for j, v := range r.Values {
			if math.Abs(v-want[i][j]) > 1e-9 {
				t.Errorf("run %d sample %d: expected %v, got %v", i, j, want[i][j], v)
			}
		}
	}
}

func TestRunsBounds(t *testing.T) {
	family := runs(
		[]float64{0.3, 1.8, 0.7, 0},
		[]float64{1.1, 0.2, 0.7, 0},
		[]float64{0.9, 0.9, 0.1, 0},
	)

	env, err := Runs(family)
	if err != nil {
		t.Fatal(err)
	}

	for i := range env {
		peak := 0.0
		for _, r := range family {
			v := r.Values[i]
			if v < 0 || v > 1 {
				t.Fatalf("sample %d out of [0,1]: %v", i, v)
			}
			if v > peak {
				peak = v
			}
		}
		if env[i] != 0 && math.Abs(peak-1) > 1e-9 {
			t.Errorf("sample %d: no run reaches 1, peak is %v", i, peak)
		}
		if env[i] == 0 && peak != 0 {
			t.Errorf("sample %d: zero envelope must force 0, got peak %v", i, peak)
		}
	}
}

func TestRunsEmptyFamily(t *testing.T) {
	env, err := Runs(nil)
	if err != nil {
		t.Fatal(err)
	}
	if env != nil {
		t.Fatalf("expected nil envelope for empty family, got %v", env)
	}
}

package profile

import (
	"math"
	"testing"
	"time"
)

func TestRunAccessors(t *testing.T) {
	r := Run{Values: []float64{0, 0.5, 2.0, 1.5}}

	if got := r.Duration(); got != 4 {
		t.Errorf("Duration = %d, want 4", got)
	}
	if got := r.Peak(); got != 2.0 {
		t.Errorf("Peak = %v, want 2.0", got)
	}
	if got := r.Sum(); math.Abs(got-4.0) > 1e-9 {
		t.Errorf("Sum = %v, want 4.0", got)
	}

	var empty Run
	if empty.Duration() != 0 || empty.Peak() != 0 || empty.Sum() != 0 {
		t.Errorf("empty run: got %d, %v, %v", empty.Duration(), empty.Peak(), empty.Sum())
	}
}

func TestRunRebase(t *testing.T) {
	r := Run{Values: []float64{3, 4, 6}}
	r.Rebase()

	want := []float64{0, 1, 3}
	for i := range want {
		if r.Values[i] != want[i] {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], r.Values[i])
		}
	}
}

func TestRunCumulativeRoundTrip(t *testing.T) {
	start := time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)
	cumulative := Run{Values: []float64{1, 1.5, 3, 3}, Start: start}

	perSample := cumulative.NonCumulative()
	want := []float64{1, 0.5, 1.5, 0}
	for i := range want {
		if math.Abs(perSample.Values[i]-want[i]) > 1e-9 {
			t.Errorf("per-sample %d: expected %v, got %v", i, want[i], perSample.Values[i])
		}
	}
	if !perSample.Start.Equal(start) {
		t.Errorf("start timestamp lost: %v", perSample.Start)
	}

	back := perSample.Cumulative()
	for i := range cumulative.Values {
		if math.Abs(back.Values[i]-cumulative.Values[i]) > 1e-9 {
			t.Errorf("round trip %d: expected %v, got %v", i, cumulative.Values[i], back.Values[i])
		}
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month  time.Month
		season Season
	}{
		{time.January, Winter},
		{time.February, Winter},
		{time.March, Spring},
		{time.May, Spring},
		{time.June, Summer},
		{time.August, Summer},
		{time.September, Autumn},
		{time.November, Autumn},
		{time.December, Winter},
	}

	for _, tt := range tests {
		if got := SeasonOf(tt.month); got != tt.season {
			t.Errorf("SeasonOf(%s) = %s, want %s", tt.month, got, tt.season)
		}
	}
}

func TestWeatherTypeOrder(t *testing.T) {
	// Index order is production order: buckets map low sums to rainy and
	// high sums to sunny.
	want := []WeatherType{Rainy, Cloudy, PartiallyCloudy, Sunny}
	if len(WeatherTypes) != len(want) {
		t.Fatalf("expected %d weather types, got %d", len(want), len(WeatherTypes))
	}
	for i, w := range want {
		if WeatherTypes[i] != w {
			t.Errorf("WeatherTypes[%d] = %s, want %s", i, WeatherTypes[i], w)
		}
	}
	if PartiallyCloudy.String() != "partially_cloudy" {
		t.Errorf("unexpected label %q", PartiallyCloudy.String())
	}
}

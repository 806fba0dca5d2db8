package weather

import (
	"math"
	"testing"

	"github.com/hauslab/powerprofiles/internal/profile"
)

func run(values ...float64) profile.Run {
	return profile.Run{Values: values}
}

func TestLimits(t *testing.T) {
	runs := []profile.Run{run(2), run(4), run(6), run(8)}

	limits := Limits(runs, NumTypes)

	want := []float64{2, 3.5, 5, 6.5, 8}
	if len(limits) != len(want) {
		t.Fatalf("expected %d limits, got %d", len(want), len(limits))
	}
	for i := range want {
		if math.Abs(limits[i]-want[i]) > 1e-9 {
			t.Errorf("limit %d: expected %v, got %v", i, want[i], limits[i])
		}
	}
	if limits[len(limits)-1] != 8 {
		t.Errorf("last limit must be exactly the maximum, got %v", limits[len(limits)-1])
	}
}

func TestLimitsEmpty(t *testing.T) {
	if limits := Limits(nil, NumTypes); limits != nil {
		t.Fatalf("expected nil limits for no runs, got %v", limits)
	}
}

func TestBucket(t *testing.T) {
	limits := []float64{2, 3.5, 5, 6.5, 8}

	tests := []struct {
		sum    float64
		bucket int
		ok     bool
	}{
		{2, 0, true},
		{3, 0, true},
		{3.5, 1, true}, // boundaries belong to the upper bucket
		{4.9, 1, true},
		{5, 2, true},
		{6.5, 3, true},
		{7, 3, true},
		{8, 3, true}, // topmost bucket is closed
		{1.9, 0, false},
		{8.1, 0, false},
	}

	for _, tt := range tests {
		got, ok := Bucket(tt.sum, limits)
		if ok != tt.ok || (ok && got != tt.bucket) {
			t.Errorf("Bucket(%v) = %d, %v; want %d, %v", tt.sum, got, ok, tt.bucket, tt.ok)
		}
	}
}

func TestCategorize(t *testing.T) {
	runs := []profile.Run{run(1, 1), run(2, 2), run(3, 3), run(4, 4)}

	byWeather := Categorize(runs)

	want := map[profile.WeatherType]int{
		profile.Rainy:           1,
		profile.Cloudy:          1,
		profile.PartiallyCloudy: 1,
		profile.Sunny:           1,
	}
	total := 0
	for w, n := range want {
		if len(byWeather[w]) != n {
			t.Errorf("%s: expected %d runs, got %d", w, n, len(byWeather[w]))
		}
		total += len(byWeather[w])
	}
	if total != len(runs) {
		t.Errorf("every run must land in exactly one bucket: %d of %d placed", total, len(runs))
	}

	if len(byWeather[profile.Rainy]) == 1 && byWeather[profile.Rainy][0].Sum() != 2 {
		t.Errorf("lowest production day must be rainy, got sum %v", byWeather[profile.Rainy][0].Sum())
	}
	if len(byWeather[profile.Sunny]) == 1 && byWeather[profile.Sunny][0].Sum() != 8 {
		t.Errorf("highest production day must be sunny, got sum %v", byWeather[profile.Sunny][0].Sum())
	}
}

func TestCategorizeIdenticalSums(t *testing.T) {
	// Degenerate range: all limits collapse onto one value, so every run
	// falls into the closed topmost bucket.
	runs := []profile.Run{run(5), run(5), run(5)}

	byWeather := Categorize(runs)

	if len(byWeather[profile.Sunny]) != 3 {
		t.Fatalf("expected all 3 runs in the sunny bucket, got %d", len(byWeather[profile.Sunny]))
	}
}

func TestCategorizeEmpty(t *testing.T) {
	byWeather := Categorize(nil)
	if len(byWeather) != 0 {
		t.Fatalf("expected empty mapping, got %v", byWeather)
	}
}

// Package weather assigns PV runs to weather types by partitioning the
// observed range of accumulated per-run production into equal-width bins.
package weather

import "github.com/hauslab/powerprofiles/internal/profile"

// NumTypes is the number of weather buckets: rainy, cloudy, partially
// cloudy, sunny, from lowest to highest accumulated production.
const NumTypes = 4

// Limits computes the nTypes+1 bin boundaries over the accumulated values of
// the given runs: the minimum, nTypes-1 equal-width steps, and the maximum.
// The last boundary is forced exactly to the maximum to absorb floating
// point drift from the repeated additions. Returns nil when there are no
// runs; the season then contributes nothing to any bucket.
func Limits(runs []profile.Run, nTypes int) []float64 {
	if len(runs) == 0 {
		return nil
	}

	first := runs[0].Sum()
	min, max := first, first
	for _, r := range runs[1:] {
		s := r.Sum()
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	limits := make([]float64, 0, nTypes+1)
	limits = append(limits, min)
	step := (max - min) / float64(nTypes)
	for i := 0; i < nTypes-1; i++ {
		limits = append(limits, limits[len(limits)-1]+step)
	}
	limits = append(limits, max)
	return limits
}

// Bucket places an accumulated value into its bin: bucket i covers
// [limits[i], limits[i+1]), except the topmost bucket which is closed on
// both ends. Returns false if the value falls outside all bins, which for
// limits derived from the same run set cannot happen.
func Bucket(sum float64, limits []float64) (int, bool) {
	n := len(limits) - 1
	for i := 0; i < n-1; i++ {
		if limits[i] <= sum && sum < limits[i+1] {
			return i, true
		}
	}
	if n > 0 && limits[n-1] <= sum && sum <= limits[n] {
		return n - 1, true
	}
	return 0, false
}

// Categorize buckets every run of one PV season into its weather type. An
// empty season yields an empty mapping.
func Categorize(runs []profile.Run) map[profile.WeatherType][]profile.Run {
	byWeather := make(map[profile.WeatherType][]profile.Run)
	limits := Limits(runs, NumTypes)
	if limits == nil {
		return byWeather
	}

	for _, r := range runs {
		if i, ok := Bucket(r.Sum(), limits); ok {
			w := profile.WeatherTypes[i]
			byWeather[w] = append(byWeather[w], r)
		}
	}
	return byWeather
}

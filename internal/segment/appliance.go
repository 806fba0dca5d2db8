// Package segment splits raw power time series into discrete runs: bounded
// activity episodes for appliances and calendar-day profiles for PV units.
package segment

import "github.com/hauslab/powerprofiles/internal/profile"

// ApplianceParams are the thresholds for appliance run detection. All three
// are expressed in sample counts / kWh, not wall-clock time, so they scale
// with the sampling resolution of the input series.
type ApplianceParams struct {
	// MaxPauseAllowed is the longest flat stretch (in samples) tolerated
	// inside a single run. A longer flat stretch followed by a rising edge
	// closes the run.
	MaxPauseAllowed int

	// MinDuration is the sample count a run must exceed to be kept.
	MinDuration int

	// MaxRise is the total rise (last minus first value, kWh) a run must
	// stay below to be kept. Larger rises indicate meter artifacts rather
	// than a single cycle.
	MaxRise float64
}

// Appliance scans a cumulative appliance power series and returns its
// discrete runs, each rebased to start at 0.
//
// Adjacent equal samples grow an off-period counter; a differing pair is a
// rising edge and resets it. A rising edge arriving after a flat stretch
// longer than MaxPauseAllowed closes the open run, which is kept only if it
// is longer than MinDuration and rises less than MaxRise in total. A run
// still open when the series ends is discarded, never flushed.
func Appliance(power []float64, p ApplianceParams) []profile.Run {
	var runs []profile.Run
	var current []float64
	offPeriod := 0
	climbing := false

	for i := 0; i+1 < len(power); i++ {
		if power[i] == power[i+1] {
			offPeriod++
			climbing = false
			continue
		}
		if !climbing && offPeriod > p.MaxPauseAllowed {
			if len(current) > p.MinDuration && current[len(current)-1]-current[0] < p.MaxRise {
				runs = append(runs, profile.Run{Values: current})
			}
			current = nil
		}
		current = append(current, power[i])
		offPeriod = 0
		climbing = true
	}

	for _, r := range runs {
		r.Rebase()
	}
	return runs
}

// Package profile defines the core data types shared by the pipeline stages:
// runs (bounded episodes of appliance activity or single PV days), season
// buckets, and weather types.
package profile

import "time"

// Run is a finite ordered sequence of power samples representing one bounded
// activity episode (appliance) or one calendar day (PV). The start timestamp
// is carried alongside the numeric content and is zero when unknown.
type Run struct {
	Values []float64
	Start  time.Time
}

// Duration returns the number of samples in the run. Thresholds elsewhere in
// the pipeline are sample counts, so duration scales with the caller's
// sampling resolution.
func (r Run) Duration() int {
	return len(r.Values)
}

// Peak returns the maximum sample value of the run.
func (r Run) Peak() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	max := r.Values[0]
	for _, v := range r.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Sum returns the accumulated value of the run.
func (r Run) Sum() float64 {
	var s float64
	for _, v := range r.Values {
		s += v
	}
	return s
}

// Rebase shifts the run in place so that it starts at 0, offsetting every
// sample by the original first value.
func (r Run) Rebase() {
	if len(r.Values) == 0 {
		return
	}
	first := r.Values[0]
	for i := range r.Values {
		r.Values[i] -= first
	}
}

// NonCumulative returns a per-sample version of a cumulative run.
func (r Run) NonCumulative() Run {
	if len(r.Values) == 0 {
		return Run{Start: r.Start}
	}
	out := make([]float64, len(r.Values))
	out[0] = r.Values[0]
	for i := 1; i < len(r.Values); i++ {
		out[i] = r.Values[i] - r.Values[i-1]
	}
	return Run{Values: out, Start: r.Start}
}

// Cumulative returns a running-total version of a non-cumulative run.
func (r Run) Cumulative() Run {
	if len(r.Values) == 0 {
		return Run{Start: r.Start}
	}
	out := make([]float64, len(r.Values))
	out[0] = r.Values[0]
	for i := 1; i < len(r.Values); i++ {
		out[i] = out[i-1] + r.Values[i]
	}
	return Run{Values: out, Start: r.Start}
}

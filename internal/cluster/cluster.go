// Package cluster classifies appliance runs into hand-parameterized
// operating-mode clusters: rectangular (duration, peak-consumption) regions
// with a Mahalanobis-distance admission threshold derived from training
// runs.
package cluster

import "github.com/hauslab/powerprofiles/internal/profile"

// Cluster is one operating-mode cluster. The four bounds are externally
// supplied, hand-calibrated constants; only the run lists and the threshold
// are mutated by the classifier.
type Cluster struct {
	// Rectangle bounds: duration in samples, consumption in kWh.
	MinDuration    int
	MaxDuration    int
	MinConsumption float64
	MaxConsumption float64

	// TrainingRuns are the runs assigned by rectangle membership.
	TrainingRuns []profile.Run

	// ClassifiedRuns are the verification runs admitted by threshold.
	ClassifiedRuns []profile.Run

	// Threshold is the Mahalanobis admission bound derived from the
	// training runs. It stays 0 for a cluster that attracted no training
	// runs, which then rejects every verification run.
	Threshold float64
}

// Accepts reports rectangle membership for a run, both bounds inclusive.
func (c *Cluster) Accepts(r profile.Run) bool {
	dur := r.Duration()
	peak := r.Peak()
	return c.MinDuration <= dur && dur <= c.MaxDuration &&
		c.MinConsumption <= peak && peak <= c.MaxConsumption
}

package cluster

import "github.com/hauslab/powerprofiles/internal/profile"

// Split partitions runs into the training/verification sets used by the
// classifier: every third run (indices 0, 3, 6, ...) is verification, the
// other two thirds are training.
func Split(runs []profile.Run) (training, verification []profile.Run) {
	for i, r := range runs {
		if i%3 == 0 {
			verification = append(verification, r)
		} else {
			training = append(training, r)
		}
	}
	return training, verification
}

// AssignTraining appends each training run to the first cluster whose
// rectangle accepts it. Clusters are tested in the given order: first match
// wins, deliberately, rather than best fit, so reordering the cluster slice
// changes assignments. Runs accepted by no cluster are returned as
// unclassified.
func AssignTraining(clusters []*Cluster, training []profile.Run) (unclassified []profile.Run) {
	for _, r := range training {
		assigned := false
		for _, c := range clusters {
			if c.Accepts(r) {
				c.TrainingRuns = append(c.TrainingRuns, r)
				assigned = true
				break
			}
		}
		if !assigned {
			unclassified = append(unclassified, r)
		}
	}
	return unclassified
}

// DeriveThresholds sets each cluster's threshold to the largest Mahalanobis
// distance from any of its training runs to the cluster's own training
// distribution: the tightest bound that still admits every training
// example. Clusters with no training runs are skipped and keep threshold 0.
// A cluster with a degenerate training distribution (fewer than 2 runs, or
// singular covariance) yields ErrDegenerateDistribution.
func DeriveThresholds(clusters []*Cluster) error {
	for _, c := range clusters {
		if len(c.TrainingRuns) == 0 {
			continue
		}
		var max float64
		for _, r := range c.TrainingRuns {
			d, err := Mahalanobis(c.TrainingRuns, r)
			if err != nil {
				return err
			}
			if d > max {
				max = d
			}
		}
		c.Threshold = max
	}
	return nil
}

// Classify assigns each verification run to the cluster whose threshold
// admits it. When several clusters admit a run, the one at the smallest
// distance wins (explicit nearest-distance tie-break, not cluster order).
// Runs admitted by no cluster are returned as unclassified; that is a
// first-class outcome, not an error. Clusters with degenerate training
// distributions reject every run.
func Classify(clusters []*Cluster, verification []profile.Run) (unclassified []profile.Run) {
	for _, r := range verification {
		var best *Cluster
		var bestDist float64
		for _, c := range clusters {
			d, err := Mahalanobis(c.TrainingRuns, r)
			if err != nil {
				continue
			}
			if d < c.Threshold && (best == nil || d < bestDist) {
				best = c
				bestDist = d
			}
		}
		if best != nil {
			best.ClassifiedRuns = append(best.ClassifiedRuns, r)
		} else {
			unclassified = append(unclassified, r)
		}
	}
	return unclassified
}

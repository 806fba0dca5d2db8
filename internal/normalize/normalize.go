// Package normalize rescales a family of same-season PV runs against their
// envelope, the pointwise maximum profile across the family.
package normalize

import (
	"fmt"

	"github.com/hauslab/powerprofiles/internal/profile"
)

// Envelope returns the pointwise maximum across all runs. The runs must all
// have equal length. An empty family yields a nil envelope.
func Envelope(runs []profile.Run) ([]float64, error) {
	if len(runs) == 0 {
		return nil, nil
	}

	env := make([]float64, len(runs[0].Values))
	copy(env, runs[0].Values)

	for _, r := range runs[1:] {
		if len(r.Values) != len(env) {
			return nil, fmt.Errorf("normalize: run length %d does not match envelope length %d",
				len(r.Values), len(env))
		}
		for i, v := range r.Values {
			if v > env[i] {
				env[i] = v
			}
		}
	}
	return env, nil
}

// Runs divides every run in place by the family's envelope and returns the
// envelope for diagnostic display. Where the envelope is exactly 0 the
// output sample is forced to 0. After normalization every value lies in
// [0,1] and, at each index with a non-zero envelope, at least one run is
// exactly 1. An empty family is a no-op.
func Runs(runs []profile.Run) ([]float64, error) {
	env, err := Envelope(runs)
	if err != nil || env == nil {
		return env, err
	}

	for _, r := range runs {
		for i, v := range r.Values {
			if env[i] != 0 {
				r.Values[i] = v / env[i]
			} else {
				r.Values[i] = 0
			}
		}
	}
	return env, nil
}

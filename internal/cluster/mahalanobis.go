package cluster

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hauslab/powerprofiles/internal/profile"
)

// ErrDegenerateDistribution is returned when a Mahalanobis distance is
// requested against fewer than 2 runs or a distribution whose feature
// covariance matrix is singular (for example, all runs sharing one
// duration). Callers must filter such clusters before deriving thresholds.
var ErrDegenerateDistribution = errors.New("cluster: distribution undefined for mahalanobis distance")

// features is the 2D featurization every run is reduced to for clustering:
// sample-count duration and peak consumption.
func features(r profile.Run) (duration, peak float64) {
	return float64(r.Duration()), r.Peak()
}

// Mahalanobis returns the distance from a run to the distribution formed by
// a set of reference runs, in (duration, peak) feature space, using the
// inverse sample covariance of the distribution as the metric tensor.
func Mahalanobis(distribution []profile.Run, point profile.Run) (float64, error) {
	n := len(distribution)
	if n < 2 {
		return 0, ErrDegenerateDistribution
	}

	samples := mat.NewDense(n, 2, nil)
	var meanDur, meanPeak float64
	for i, r := range distribution {
		d, p := features(r)
		samples.Set(i, 0, d)
		samples.Set(i, 1, p)
		meanDur += d
		meanPeak += p
	}
	meanDur /= float64(n)
	meanPeak /= float64(n)

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, samples, nil)

	var covInv mat.Dense
	if err := covInv.Inverse(&cov); err != nil {
		return 0, ErrDegenerateDistribution
	}

	d, p := features(point)
	diff := mat.NewVecDense(2, []float64{d - meanDur, p - meanPeak})

	var tmp mat.VecDense
	tmp.MulVec(&covInv, diff)
	return math.Sqrt(mat.Dot(diff, &tmp)), nil
}

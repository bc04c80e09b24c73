package validate

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Pearson computes the Pearson correlation coefficient between two equal-length
// samples and the two-sided p-value from the Student's t distribution with n-2
// degrees of freedom. Samples too small for the test return (0, 1).
func Pearson(x, y []float64) (r, p float64) {
	n := len(x)
	if n != len(y) || n < 3 {
		return 0, 1
	}

	r = stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		// zero variance in one of the samples
		return 0, 1
	}

	if r >= 1 || r <= -1 {
		return r, 0
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.CDF(-math.Abs(t))
	return r, p
}

package bootstrap

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"bootcompare/domain/stats"
)

// twoProportionZ computes the pooled proportion and the z-statistic of the
// two-proportion test. The denominator is zero when pooled is 0 or 1; the
// caller screens for that before trusting z.
func twoProportionZ(e1, e2 stats.ProportionEstimate) (pooled, z float64) {
	n1, n2 := float64(e1.Trials), float64(e2.Trials)
	p1, p2 := e1.P(), e2.P()

	pooled = (n1*p1 + n2*p2) / (n1 + n2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/n1 + 1/n2))
	z = (p1 - p2) / se
	return pooled, z
}

// upperTail returns P(Z > z) for the standard normal
func upperTail(z float64) float64 {
	return distuv.UnitNormal.Survival(z)
}

// degenerateSentinel is the limiting p-value when the test cannot be formed:
// 0 if dist1 won every draw, 1 if it lost every draw, NaN otherwise.
func degenerateSentinel(e1 stats.ProportionEstimate) stats.TestResult {
	switch {
	case e1.Trials > 0 && e1.Successes == e1.Trials:
		return 0
	case e1.Trials > 0 && e1.Successes == 0:
		return 1
	default:
		return stats.TestResult(math.NaN())
	}
}

// isDegenerate reports whether the z-test has no usable variance.
// With paired outcomes pooled is always 1/2, so the per-side check on e1 is
// what catches a sweep where one sample won every comparison.
func isDegenerate(e1 stats.ProportionEstimate, pooled, z float64) bool {
	return e1.Unanimous() ||
		pooled <= 0 || pooled >= 1 ||
		math.IsNaN(z) || math.IsInf(z, 0)
}

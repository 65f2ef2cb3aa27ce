package stationarity

import "gonum.org/v1/gonum/stat/distuv"

// MacKinnon (1994) response-surface coefficients for the Dickey-Fuller
// tau distribution, single-series regression with a constant. Outside the
// tabulated range the p-value saturates at 0 or 1.
const (
	tauMaxC  = 2.74
	tauMinC  = -18.83
	tauStarC = -1.61
)

var (
	tauSmallPC = [3]float64{2.1659, 1.4412, 0.038269}
	tauLargePC = [4]float64{1.7339, 0.93202, -0.12745, -0.010368}
)

// MacKinnonP maps a Dickey-Fuller tau statistic to an approximate
// asymptotic p-value.
func MacKinnonP(stat float64) float64 {
	switch {
	case stat > tauMaxC:
		return 1.0
	case stat < tauMinC:
		return 0.0
	}
	var z float64
	if stat <= tauStarC {
		z = tauSmallPC[0] + tauSmallPC[1]*stat + tauSmallPC[2]*stat*stat
	} else {
		z = tauLargePC[0] + tauLargePC[1]*stat + tauLargePC[2]*stat*stat + tauLargePC[3]*stat*stat*stat
	}
	return distuv.UnitNormal.CDF(z)
}

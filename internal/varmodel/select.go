package varmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Criterion names the information criterion driving lag selection.
type Criterion string

const (
	AIC  Criterion = "aic"
	BIC  Criterion = "bic"
	HQIC Criterion = "hqic"
)

// ParseCriterion validates a criterion name from configuration.
func ParseCriterion(s string) (Criterion, error) {
	switch Criterion(s) {
	case AIC, BIC, HQIC:
		return Criterion(s), nil
	}
	return "", fmt.Errorf("unknown information criterion %q (want aic, bic or hqic)", s)
}

// SelectLags picks the lag order minimizing the criterion over candidate
// orders 0..maxLags, each fitted on a common sample so the criteria are
// comparable. Selection never fails: a chosen order below 1, a degenerate
// criterion, or any estimation error falls back to min(maxLags, 1), and
// the result is always a positive order no larger than maxLags.
func SelectLags(endog *mat.Dense, names []string, maxLags int, ic Criterion, det Deterministic) int {
	const fallback = 1 // min(maxLags, 1) with maxLags >= 1
	if maxLags < 1 {
		return fallback
	}
	if endog == nil {
		return fallback
	}
	T, K := endog.Dims()
	if T <= maxLags+1 {
		return fallback
	}

	best := -1
	bestVal := math.Inf(1)
	for p := 0; p <= maxLags; p++ {
		// Trim the first maxLags-p rows so every candidate regresses on
		// the same effective sample.
		offset := maxLags - p
		sub := mat.DenseCopyOf(endog.Slice(offset, T, 0, K))

		var resid *mat.Dense
		if p == 0 {
			u, err := detOnlyResiduals(sub, det, offset)
			if err != nil {
				continue
			}
			resid = u
		} else {
			model, err := Estimate(sub, names, ModelSpec{Lags: p, Deterministic: det})
			if err != nil {
				continue
			}
			resid = model.Residuals()
		}

		val, ok := criterionValue(resid, p, K, det.NumTerms(), ic)
		if !ok {
			continue
		}
		if val < bestVal {
			bestVal = val
			best = p
		}
	}

	if best < 1 {
		return fallback
	}
	return best
}

// criterionValue evaluates the chosen criterion from the ML residual
// covariance: logdet(Sigma) plus a free-parameter penalty.
func criterionValue(resid *mat.Dense, p, K, detCols int, ic Criterion) (float64, bool) {
	Treg, _ := resid.Dims()
	if Treg <= 1 {
		return 0, false
	}
	var utu mat.Dense
	utu.Mul(resid.T(), resid)
	sigma := mat.NewDense(K, K, nil)
	sigma.Scale(1.0/float64(Treg), &utu)

	ld, sign := mat.LogDet(sigma)
	if sign <= 0 || math.IsNaN(ld) || math.IsInf(ld, 0) {
		return 0, false
	}

	free := float64(p*K*K + K*detCols)
	T := float64(Treg)
	var val float64
	switch ic {
	case BIC:
		val = ld + math.Log(T)*free/T
	case HQIC:
		if T <= math.E {
			return 0, false
		}
		val = ld + 2.0*math.Log(math.Log(T))*free/T
	default: // AIC
		val = ld + 2.0*free/T
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

// detOnlyResiduals handles the zero-lag candidate: residuals from a
// regression on deterministic terms alone (or the data itself when there
// are none). offset keeps the trend index aligned with the full sample.
func detOnlyResiduals(endog *mat.Dense, det Deterministic, offset int) (*mat.Dense, error) {
	T, K := endog.Dims()
	detCols := det.NumTerms()
	if detCols == 0 {
		return mat.DenseCopyOf(endog), nil
	}
	X := mat.NewDense(T, detCols, nil)
	for t := 0; t < T; t++ {
		timeIndex := float64(offset + t + 1)
		X.Set(t, 0, 1.0)
		if detCols >= 2 {
			X.Set(t, 1, timeIndex)
		}
		if detCols >= 3 {
			X.Set(t, 2, timeIndex*timeIndex)
		}
	}
	B, err := solveLeastSquares(X, endog, detCols, K)
	if err != nil {
		return nil, err
	}
	var fitted mat.Dense
	fitted.Mul(X, B)
	U := mat.NewDense(T, K, nil)
	U.Sub(endog, &fitted)
	return U, nil
}

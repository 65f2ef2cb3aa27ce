// Package stationarity implements the augmented Dickey-Fuller unit-root
// test with automatic lag selection by AIC and MacKinnon (1994)
// approximate p-values, for a regression with a constant term.
package stationarity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Result reports one unit-root test.
type Result struct {
	Variable string
	Stat     float64
	PValue   float64
	LagsUsed int
	NObs     int // observations used in the final regression
}

// ADF runs the augmented Dickey-Fuller test on series. NaN entries are
// dropped first; the input slice is never mutated. The lag order of the
// augmenting difference terms is chosen by AIC up to the conventional
// 12*(n/100)^0.25 ceiling.
func ADF(series []float64, name string) (Result, error) {
	x := dropNaN(series)
	n := len(x)
	if n < 6 {
		return Result{}, fmt.Errorf("adf %s: need at least 6 observations, got %d", name, n)
	}

	maxLag := int(math.Ceil(12.0 * math.Pow(float64(n)/100.0, 0.25)))
	// The common-sample autolag regression must keep positive degrees of
	// freedom: each candidate uses n-1-maxLag rows and up to maxLag+2
	// regressors.
	if cap := n/2 - 2; maxLag > cap {
		maxLag = cap
	}
	if maxLag < 0 {
		return Result{}, fmt.Errorf("adf %s: sample of %d too short for lag search", name, n)
	}

	usedLag, err := autoLag(x, maxLag)
	if err != nil {
		return Result{}, fmt.Errorf("adf %s: %w", name, err)
	}

	stat, nObs, err := dfStatistic(x, usedLag)
	if err != nil {
		return Result{}, fmt.Errorf("adf %s: %w", name, err)
	}

	return Result{
		Variable: name,
		Stat:     stat,
		PValue:   MacKinnonP(stat),
		LagsUsed: usedLag,
		NObs:     nObs,
	}, nil
}

// autoLag picks the augmenting lag count minimizing AIC over a common
// sample (all candidates see the same rows, trimmed for maxLag).
func autoLag(x []float64, maxLag int) (int, error) {
	y, X := dfDesign(x, maxLag)
	rows := len(y)

	bestLag := 0
	bestAIC := math.Inf(1)
	for lag := 0; lag <= maxLag; lag++ {
		k := lag + 2 // level lag, `lag` difference lags, constant
		if rows <= k {
			break
		}
		cols := append([]int{}, 0)
		for j := 1; j <= lag; j++ {
			cols = append(cols, j)
		}
		ssr, _, _, err := olsFit(y, X, cols)
		if err != nil {
			continue
		}
		aic := float64(rows)*math.Log(ssr/float64(rows)) + 2.0*float64(k)
		if aic < bestAIC {
			bestAIC = aic
			bestLag = lag
		}
	}
	if math.IsInf(bestAIC, 1) {
		return 0, fmt.Errorf("lag search failed for all candidates up to %d", maxLag)
	}
	return bestLag, nil
}

// dfStatistic re-runs the Dickey-Fuller regression with the chosen lag on
// the longest sample that lag allows and returns the t-statistic on the
// lagged level.
func dfStatistic(x []float64, lag int) (stat float64, nObs int, err error) {
	y, X := dfDesign(x, lag)
	rows := len(y)
	k := lag + 2
	if rows <= k {
		return 0, 0, fmt.Errorf("only %d usable observations for %d regressors", rows, k)
	}
	cols := make([]int, lag+1)
	for j := range cols {
		cols[j] = j
	}
	_, beta, se, err := olsFit(y, X, cols)
	if err != nil {
		return 0, 0, err
	}
	if se[0] == 0 || math.IsNaN(se[0]) {
		return 0, 0, fmt.Errorf("degenerate regression: zero standard error on the level term")
	}
	return beta[0] / se[0], rows, nil
}

// dfDesign builds the regression Δy_t on [y_{t-1}, Δy_{t-1..t-lag}].
// y holds the responses and X one row per response with lag+1 columns
// (column 0 is the lagged level). The constant is appended by olsFit.
func dfDesign(x []float64, lag int) ([]float64, [][]float64) {
	n := len(x)
	d := make([]float64, n-1)
	for i := 1; i < n; i++ {
		d[i-1] = x[i] - x[i-1]
	}
	rows := n - 1 - lag
	y := make([]float64, rows)
	X := make([][]float64, rows)
	for t := 0; t < rows; t++ {
		// response is Δy at original time lag+1+t
		y[t] = d[lag+t]
		row := make([]float64, lag+1)
		row[0] = x[lag+t] // level one period before the response
		for j := 1; j <= lag; j++ {
			row[j] = d[lag+t-j]
		}
		X[t] = row
	}
	return y, X
}

// olsFit regresses y on the selected columns of X plus a constant and
// returns the residual sum of squares, coefficients and standard errors
// for the selected columns (constant last, not returned).
func olsFit(y []float64, X [][]float64, cols []int) (ssr float64, beta, se []float64, err error) {
	rows := len(y)
	k := len(cols) + 1
	design := mat.NewDense(rows, k, nil)
	for t := 0; t < rows; t++ {
		for j, c := range cols {
			design.Set(t, j, X[t][c])
		}
		design.Set(t, k-1, 1.0)
	}
	resp := mat.NewVecDense(rows, append([]float64{}, y...))

	var qr mat.QR
	qr.Factorize(design)
	var b mat.Dense
	if err := qr.SolveTo(&b, false, resp); err != nil {
		return 0, nil, nil, fmt.Errorf("least squares solve: %w", err)
	}

	var fitted mat.Dense
	fitted.Mul(design, &b)
	ssr = 0
	for t := 0; t < rows; t++ {
		r := y[t] - fitted.At(t, 0)
		ssr += r * r
	}

	// Standard errors from sigma^2 (X'X)^-1.
	var xtx mat.Dense
	xtx.Mul(design.T(), design)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return 0, nil, nil, fmt.Errorf("X'X not invertible: %w", err)
	}
	sigma2 := ssr / float64(rows-k)

	beta = make([]float64, len(cols))
	se = make([]float64, len(cols))
	for j := range cols {
		beta[j] = b.At(j, 0)
		se[j] = math.Sqrt(sigma2 * xtxInv.At(j, j))
	}
	return ssr, beta, se, nil
}

func dropNaN(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

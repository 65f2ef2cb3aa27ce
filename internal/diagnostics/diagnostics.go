// Package diagnostics computes residual checks for a fitted VAR:
// Ljung-Box serial correlation, Jarque-Bera normality, Durbin-Watson
// first-order autocorrelation and companion-root stability.
package diagnostics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/varmodel"
)

// VariableStats holds the per-residual-series statistics.
type VariableStats struct {
	Variable       string
	LjungBoxStat   float64
	LjungBoxP      float64
	JarqueBeraStat float64
	JarqueBeraP    float64
	DurbinWatson   float64
}

// Record is the diagnostics result for one fitted model.
type Record struct {
	PerVariable    []VariableStats
	LjungBoxLags   int
	Stable         bool
	MaxRootModulus float64 // NaN when the model exposes no roots
	NObs           int     // residual sample size
}

// Run evaluates all diagnostics. The Ljung-Box lag is capped at
// min(usedLags, 2), matching the upstream analysis this pipeline
// reproduces.
func Run(model varmodel.FittedModel, names []string, usedLags int) (Record, error) {
	resid := model.Residuals()
	if resid == nil {
		return Record{}, fmt.Errorf("model has no residuals")
	}
	T, K := resid.Dims()
	if K != len(names) {
		return Record{}, fmt.Errorf("got %d names for %d residual series", len(names), K)
	}

	lbLag := usedLags
	if lbLag > 2 {
		lbLag = 2
	}
	if lbLag < 1 {
		lbLag = 1
	}

	rec := Record{
		PerVariable:  make([]VariableStats, K),
		LjungBoxLags: lbLag,
		NObs:         T,
	}
	for j := 0; j < K; j++ {
		series := make([]float64, T)
		for t := 0; t < T; t++ {
			series[t] = resid.At(t, j)
		}
		lbStat, lbP := LjungBox(series, lbLag)
		jbStat, jbP := JarqueBera(series)
		rec.PerVariable[j] = VariableStats{
			Variable:       names[j],
			LjungBoxStat:   lbStat,
			LjungBoxP:      lbP,
			JarqueBeraStat: jbStat,
			JarqueBeraP:    jbP,
			DurbinWatson:   DurbinWatson(series),
		}
	}

	moduli := model.RootModuli()
	rec.Stable = true
	rec.MaxRootModulus = math.NaN()
	for _, m := range moduli {
		if math.IsNaN(rec.MaxRootModulus) || m > rec.MaxRootModulus {
			rec.MaxRootModulus = m
		}
		if m >= 1.0 {
			rec.Stable = false
		}
	}

	return rec, nil
}

// LjungBox computes the portmanteau statistic over autocorrelations
// 1..lag and its chi-squared p-value with lag degrees of freedom.
func LjungBox(series []float64, lag int) (stat, pValue float64) {
	n := len(series)
	if n < 3 || lag < 1 {
		return math.NaN(), math.NaN()
	}
	acf := autocorr(series, lag)
	stat = 0
	for k := 1; k <= lag; k++ {
		stat += acf[k] * acf[k] / float64(n-k)
	}
	stat *= float64(n) * float64(n+2)
	chi2 := distuv.ChiSquared{K: float64(lag)}
	return stat, chi2.Survival(stat)
}

// JarqueBera computes the normality statistic from sample skewness and
// kurtosis (population moments, no df correction) and its chi-squared
// p-value with 2 degrees of freedom.
func JarqueBera(series []float64) (stat, pValue float64) {
	n := len(series)
	if n < 2 {
		return math.NaN(), math.NaN()
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	var m2, m3, m4 float64
	for _, v := range series {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= float64(n)
	m3 /= float64(n)
	m4 /= float64(n)
	if m2 == 0 {
		return math.NaN(), math.NaN()
	}

	skew := m3 / math.Pow(m2, 1.5)
	kurt := m4 / (m2 * m2)
	stat = float64(n) / 6.0 * (skew*skew + (kurt-3.0)*(kurt-3.0)/4.0)
	chi2 := distuv.ChiSquared{K: 2}
	return stat, chi2.Survival(stat)
}

// DurbinWatson computes sum of squared first differences over the sum of
// squares. Values near 2 indicate no first-order autocorrelation.
func DurbinWatson(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return math.NaN()
	}
	var num, den float64
	for t, v := range series {
		den += v * v
		if t > 0 {
			d := v - series[t-1]
			num += d * d
		}
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// autocorr returns demeaned autocorrelations for lags 0..maxLag.
func autocorr(series []float64, maxLag int) []float64 {
	n := len(series)
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	denom := 0.0
	for _, v := range series {
		d := v - mean
		denom += d * d
	}
	acf := make([]float64, maxLag+1)
	if denom == 0 {
		return acf
	}
	acf[0] = 1.0
	for k := 1; k <= maxLag && k < n; k++ {
		sum := 0.0
		for t := k; t < n; t++ {
			sum += (series[t] - mean) * (series[t-k] - mean)
		}
		acf[k] = sum / denom
	}
	return acf
}

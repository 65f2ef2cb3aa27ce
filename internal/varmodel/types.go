// Package varmodel estimates reduced-form vector autoregressions by OLS
// and exposes forecasting, impulse-response and stability operations on
// the fitted model.
package varmodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Deterministic selects the deterministic terms in the regression.
type Deterministic int

const (
	DetNone Deterministic = iota
	DetConst
	DetConstTrend
	DetConstTrendSquared
)

// NumTerms is the number of deterministic regressors.
func (d Deterministic) NumTerms() int {
	switch d {
	case DetConst:
		return 1
	case DetConstTrend:
		return 2
	case DetConstTrendSquared:
		return 3
	default:
		return 0
	}
}

func (d Deterministic) String() string {
	switch d {
	case DetNone:
		return "n"
	case DetConst:
		return "c"
	case DetConstTrend:
		return "ct"
	case DetConstTrendSquared:
		return "ctt"
	default:
		return fmt.Sprintf("Deterministic(%d)", int(d))
	}
}

// ParseDeterministic maps the conventional trend codes onto the enum.
func ParseDeterministic(s string) (Deterministic, error) {
	switch s {
	case "n", "none":
		return DetNone, nil
	case "c":
		return DetConst, nil
	case "ct":
		return DetConstTrend, nil
	case "ctt":
		return DetConstTrendSquared, nil
	}
	return 0, fmt.Errorf("unknown deterministic spec %q (want n, c, ct or ctt)", s)
}

// ModelSpec is what to fit: lag order and deterministic terms.
type ModelSpec struct {
	Lags          int
	Deterministic Deterministic
}

// FittedModel is the capability surface diagnostics and forecasting need,
// so both can be exercised against fakes.
type FittedModel interface {
	// Residuals returns the (T-p) x K residual matrix.
	Residuals() *mat.Dense
	// RootModuli returns companion-matrix eigenvalue moduli, descending.
	// Empty when the model has no autoregressive part.
	RootModuli() []float64
	// Forecast produces steps x K multi-step forecasts seeded with the
	// last p rows of seed.
	Forecast(seed *mat.Dense, steps int) (*mat.Dense, error)
}

// ImpulseResponder is satisfied by models that can trace shocks.
type ImpulseResponder interface {
	IRF(horizon, impulse int) (*mat.Dense, error)
}

// Model is a reduced-form VAR fitted by OLS.
type Model struct {
	Spec  ModelSpec
	Names []string

	// A holds the K x K coefficient matrices for lags 1..p.
	A []*mat.Dense
	// C holds the deterministic coefficients, K x NumTerms, or nil.
	C *mat.Dense
	// SigmaU is the df-adjusted residual covariance.
	SigmaU *mat.SymDense

	resid      *mat.Dense
	sampleSize int // rows of the estimation sample, trend continuation
}

// Residuals returns the estimation residuals, one row per usable
// observation.
func (m *Model) Residuals() *mat.Dense { return m.resid }

// NumVars returns K.
func (m *Model) NumVars() int {
	if len(m.A) == 0 {
		return 0
	}
	k, _ := m.A[0].Dims()
	return k
}

var _ FittedModel = (*Model)(nil)
var _ ImpulseResponder = (*Model)(nil)

package varmodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Forecast produces multi-step ahead forecasts. Only the last p rows of
// seed feed the recursion; deterministic trend terms continue the time
// index of the estimation sample. The result is steps x K.
func (m *Model) Forecast(seed *mat.Dense, steps int) (*mat.Dense, error) {
	if m == nil || len(m.A) == 0 {
		return nil, fmt.Errorf("VAR model not estimated")
	}
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be > 0")
	}
	p := m.Spec.Lags
	if p <= 0 {
		return nil, fmt.Errorf("lags must be > 0 to forecast")
	}
	T, K := seed.Dims()
	if T < p {
		return nil, fmt.Errorf("need at least %d seed rows, got %d", p, T)
	}
	if K != m.NumVars() {
		return nil, fmt.Errorf("seed has %d variables, model has %d", K, m.NumVars())
	}

	totalRows := p + steps
	out := mat.NewDense(totalRows, K, nil)
	for i := 0; i < p; i++ {
		for k := 0; k < K; k++ {
			out.Set(i, k, seed.At(T-p+i, k))
		}
	}

	detCols := m.Spec.Deterministic.NumTerms()
	for step := 0; step < steps; step++ {
		row := p + step
		// Trend index continues one past the fitted sample.
		tIdx := float64(m.sampleSize + step + 1)

		for eq := 0; eq < K; eq++ {
			val := 0.0
			if m.C != nil && detCols > 0 {
				val += m.C.At(eq, 0)
				if detCols >= 2 {
					val += m.C.At(eq, 1) * tIdx
				}
				if detCols >= 3 {
					val += m.C.At(eq, 2) * tIdx * tIdx
				}
			}
			// Lagged part: sum_j A_j y_{t-j}
			for lag := 1; lag <= p; lag++ {
				A := m.A[lag-1]
				prevRow := row - lag
				for j := 0; j < K; j++ {
					val += A.At(eq, j) * out.At(prevRow, j)
				}
			}
			out.Set(row, eq, val)
		}
	}

	return mat.DenseCopyOf(out.Slice(p, totalRows, 0, K)), nil
}

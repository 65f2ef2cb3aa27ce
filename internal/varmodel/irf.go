package varmodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// IRF traces a one-time unit shock in variable impulse across all K
// variables over horizon periods. Row h of the result is the response at
// horizon h (h = 0 is the impact period).
func (m *Model) IRF(horizon, impulse int) (*mat.Dense, error) {
	shock, err := m.unitShock(impulse)
	if err != nil {
		return nil, err
	}
	return m.propagate(horizon, shock)
}

// OrthoIRF is the orthogonalized variant: the shock is the impulse column
// of the Cholesky factor of the residual covariance, one unit shock when
// the covariance is unavailable or not positive definite.
func (m *Model) OrthoIRF(horizon, impulse int) (*mat.Dense, error) {
	shock, err := m.unitShock(impulse)
	if err != nil {
		return nil, err
	}
	if m.SigmaU != nil {
		K := len(shock)
		var chol mat.Cholesky
		if chol.Factorize(m.SigmaU) {
			L := mat.NewTriDense(K, mat.Lower, nil)
			chol.LTo(L)
			for i := 0; i < K; i++ {
				shock[i] = L.At(i, impulse)
			}
		}
	}
	return m.propagate(horizon, shock)
}

func (m *Model) unitShock(impulse int) ([]float64, error) {
	if m == nil || len(m.A) == 0 {
		return nil, fmt.Errorf("VAR model not estimated")
	}
	K := m.NumVars()
	if impulse < 0 || impulse >= K {
		return nil, fmt.Errorf("impulse index must be between 0 and %d", K-1)
	}
	shock := make([]float64, K)
	shock[impulse] = 1.0
	return shock, nil
}

// propagate computes the moving-average matrices Psi_h recursively and
// applies them to the shock vector.
func (m *Model) propagate(horizon int, shock []float64) (*mat.Dense, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be > 0")
	}
	p := m.Spec.Lags
	K := m.NumVars()

	Psi := make([]*mat.Dense, horizon)
	ident := make([]float64, K*K)
	for i := 0; i < K; i++ {
		ident[i*K+i] = 1.0
	}
	Psi[0] = mat.NewDense(K, K, ident)
	for h := 1; h < horizon; h++ {
		M := mat.NewDense(K, K, nil)
		maxLag := p
		if h < p {
			maxLag = h
		}
		for j := 1; j <= maxLag; j++ {
			var tmp mat.Dense
			tmp.Mul(m.A[j-1], Psi[h-j])
			M.Add(M, &tmp)
		}
		Psi[h] = M
	}

	irf := mat.NewDense(horizon, K, nil)
	shockVec := mat.NewVecDense(K, shock)
	for h := 0; h < horizon; h++ {
		var resp mat.VecDense
		resp.MulVec(Psi[h], shockVec)
		for i := 0; i < K; i++ {
			irf.Set(h, i, resp.AtVec(i))
		}
	}
	return irf, nil
}

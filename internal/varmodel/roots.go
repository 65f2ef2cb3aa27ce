package varmodel

import (
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// RootModuli returns the moduli of the companion-matrix eigenvalues in
// descending order. The process is stable when every modulus is strictly
// inside the unit circle. An empty slice means no autoregressive part.
func (m *Model) RootModuli() []float64 {
	p := len(m.A)
	if p == 0 {
		return nil
	}
	K := m.NumVars()
	n := K * p

	// Companion form: top block row holds [A_1 ... A_p], an identity
	// shifts the state below it.
	F := mat.NewDense(n, n, nil)
	for j, Aj := range m.A {
		for r := 0; r < K; r++ {
			for c := 0; c < K; c++ {
				F.Set(r, j*K+c, Aj.At(r, c))
			}
		}
	}
	for i := K; i < n; i++ {
		F.Set(i, i-K, 1.0)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(F, mat.EigenNone); !ok {
		return nil
	}
	vals := eig.Values(nil)
	moduli := make([]float64, len(vals))
	for i, v := range vals {
		moduli[i] = cmplx.Abs(v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(moduli)))
	return moduli
}

package varmodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Estimate fits the VAR by equation-wise OLS. endog is T x K with rows in
// time order; names labels its columns. Normal equations are tried first
// and a minimum-norm SVD solve covers the singular case.
func Estimate(endog *mat.Dense, names []string, spec ModelSpec) (*Model, error) {
	if endog == nil {
		return nil, fmt.Errorf("time series data not provided")
	}
	T, K := endog.Dims()
	p := spec.Lags
	if p <= 0 {
		return nil, fmt.Errorf("lags must be > 0")
	}
	if T <= p {
		return nil, fmt.Errorf("need at least p+1 observations: p = %d, T = %d", p, T)
	}
	if len(names) != K {
		return nil, fmt.Errorf("got %d names for %d variables", len(names), K)
	}

	Treg := T - p
	Yreg := mat.NewDense(Treg, K, nil)
	for t := 0; t < Treg; t++ {
		for k := 0; k < K; k++ {
			Yreg.Set(t, k, endog.At(t+p, k))
		}
	}

	detCols := spec.Deterministic.NumTerms()
	m := detCols + p*K

	X := mat.NewDense(Treg, m, nil)
	for t := 0; t < Treg; t++ {
		col := 0
		timeIndex := float64(t + p + 1)
		if detCols >= 1 {
			X.Set(t, col, 1.0)
			col++
		}
		if detCols >= 2 {
			X.Set(t, col, timeIndex)
			col++
		}
		if detCols >= 3 {
			X.Set(t, col, timeIndex*timeIndex)
			col++
		}
		// Lagged blocks [ y_{t-1}, y_{t-2}, ..., y_{t-p} ]
		for j := 1; j <= p; j++ {
			srcRow := t + p - j
			for k := 0; k < K; k++ {
				X.Set(t, col, endog.At(srcRow, k))
				col++
			}
		}
	}

	B, err := solveLeastSquares(X, Yreg, m, K)
	if err != nil {
		return nil, err
	}

	// Split B into deterministic coefficients and the lag matrices.
	var C *mat.Dense
	if detCols > 0 {
		C = mat.NewDense(K, detCols, nil)
		for k := 0; k < K; k++ {
			for d := 0; d < detCols; d++ {
				C.Set(k, d, B.At(d, k))
			}
		}
	}
	A := make([]*mat.Dense, p)
	for j := 0; j < p; j++ {
		Aj := mat.NewDense(K, K, nil)
		rowOffset := detCols + j*K
		for eq := 0; eq < K; eq++ {
			for colVar := 0; colVar < K; colVar++ {
				Aj.Set(eq, colVar, B.At(rowOffset+colVar, eq))
			}
		}
		A[j] = Aj
	}

	// Residuals and df-adjusted covariance.
	var Yhat mat.Dense
	Yhat.Mul(X, B)
	U := mat.NewDense(Treg, K, nil)
	U.Sub(Yreg, &Yhat)

	var utu mat.Dense
	utu.Mul(U.T(), U)
	df := float64(Treg - m)
	if df <= 0 {
		df = float64(Treg)
	}
	sigmaData := make([]float64, K*K)
	for i := 0; i < K; i++ {
		for j := 0; j < K; j++ {
			sigmaData[i*K+j] = utu.At(i, j) / df
		}
	}

	nameCopy := make([]string, K)
	copy(nameCopy, names)

	return &Model{
		Spec:       spec,
		Names:      nameCopy,
		A:          A,
		C:          C,
		SigmaU:     mat.NewSymDense(K, sigmaData),
		resid:      U,
		sampleSize: T,
	}, nil
}

// solveLeastSquares computes B minimizing ||Y - X B||_F. Normal equations
// when X'X inverts, minimum-norm SVD otherwise.
func solveLeastSquares(X, Y *mat.Dense, m, K int) (*mat.Dense, error) {
	var B mat.Dense

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	var xtxInv mat.Dense
	if errInv := xtxInv.Inverse(&xtx); errInv == nil {
		var xty mat.Dense
		xty.Mul(X.T(), Y)
		B.Mul(&xtxInv, &xty)
		return &B, nil
	}

	var svd mat.SVD
	if ok := svd.Factorize(X, mat.SVDFullU|mat.SVDFullV); !ok {
		return nil, fmt.Errorf("OLS failed: X'X singular and SVD factorization failed")
	}
	rank := svd.Rank(1e-12)
	if rank == 0 {
		// Numerically all-zero design: minimum-norm solution is B = 0.
		return mat.NewDense(m, K, nil), nil
	}
	svd.SolveTo(&B, Y, rank)
	return &B, nil
}

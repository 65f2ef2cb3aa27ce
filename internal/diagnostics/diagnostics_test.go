package diagnostics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/varmodel"
)

// almostEqual compares floats with tolerance
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

var residFixture = []float64{
	0.12, -0.31, 0.05, 0.44, -0.22, 0.18, -0.09, 0.27, -0.35, 0.08,
	0.15, -0.19, 0.31, -0.04, 0.22, -0.28, 0.11, 0.02, -0.16, 0.25,
}

// fakeModel lets diagnostics run against arbitrary residuals and roots.
type fakeModel struct {
	resid  *mat.Dense
	moduli []float64
}

func (f *fakeModel) Residuals() *mat.Dense { return f.resid }
func (f *fakeModel) RootModuli() []float64 { return f.moduli }
func (f *fakeModel) Forecast(*mat.Dense, int) (*mat.Dense, error) {
	return nil, nil
}

var _ varmodel.FittedModel = (*fakeModel)(nil)

func TestLjungBox(t *testing.T) {
	stat1, p1 := LjungBox(residFixture, 1)
	if !almostEqual(stat1, 7.9671378842, 1e-8) || !almostEqual(p1, 0.0047634197, 1e-8) {
		t.Errorf("lag 1: stat=%.10f p=%.10f", stat1, p1)
	}
	stat2, p2 := LjungBox(residFixture, 2)
	if !almostEqual(stat2, 8.2906498374, 1e-8) || !almostEqual(p2, 0.0158382890, 1e-8) {
		t.Errorf("lag 2: stat=%.10f p=%.10f", stat2, p2)
	}
}

func TestLjungBoxDegenerate(t *testing.T) {
	if stat, _ := LjungBox([]float64{1, 2}, 1); !math.IsNaN(stat) {
		t.Errorf("two observations: stat = %v, want NaN", stat)
	}
	if stat, _ := LjungBox(residFixture, 0); !math.IsNaN(stat) {
		t.Errorf("zero lag: stat = %v, want NaN", stat)
	}
}

func TestJarqueBera(t *testing.T) {
	stat, p := JarqueBera(residFixture)
	if !almostEqual(stat, 0.8777331831, 1e-8) {
		t.Errorf("stat = %.10f, want 0.8777331831", stat)
	}
	if !almostEqual(p, 0.6447667912, 1e-8) {
		t.Errorf("p = %.10f, want 0.6447667912", p)
	}
}

func TestJarqueBeraConstantSeries(t *testing.T) {
	stat, p := JarqueBera([]float64{3, 3, 3, 3})
	if !math.IsNaN(stat) || !math.IsNaN(p) {
		t.Errorf("constant series: stat=%v p=%v, want NaN", stat, p)
	}
}

func TestDurbinWatson(t *testing.T) {
	if got := DurbinWatson(residFixture); !almostEqual(got, 3.0635066259, 1e-8) {
		t.Errorf("dw = %.10f, want 3.0635066259", got)
	}

	// Perfectly alternating residuals: num = 4(n-1), den = n.
	alt := []float64{1, -1, 1, -1, 1, -1}
	if got := DurbinWatson(alt); !almostEqual(got, 20.0/6.0, 1e-12) {
		t.Errorf("alternating dw = %v, want %v", got, 20.0/6.0)
	}

	if got := DurbinWatson([]float64{1}); !math.IsNaN(got) {
		t.Errorf("single point: dw = %v, want NaN", got)
	}
}

func TestRunPerVariable(t *testing.T) {
	T := len(residFixture)
	resid := mat.NewDense(T, 2, nil)
	for i, v := range residFixture {
		resid.Set(i, 0, v)
		resid.Set(i, 1, -v) // sign flip leaves every statistic unchanged
	}
	m := &fakeModel{resid: resid, moduli: []float64{0.8, 0.3}}

	rec, err := Run(m, []string{"yield_10y", "inflation_yoy"}, 2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.LjungBoxLags != 2 {
		t.Errorf("LjungBoxLags = %d, want 2", rec.LjungBoxLags)
	}
	if rec.NObs != T {
		t.Errorf("NObs = %d, want %d", rec.NObs, T)
	}
	if len(rec.PerVariable) != 2 {
		t.Fatalf("got %d variables", len(rec.PerVariable))
	}
	for _, v := range rec.PerVariable {
		if !almostEqual(v.LjungBoxStat, 8.2906498374, 1e-8) {
			t.Errorf("%s: lb stat = %.10f", v.Variable, v.LjungBoxStat)
		}
		if !almostEqual(v.JarqueBeraStat, 0.8777331831, 1e-8) {
			t.Errorf("%s: jb stat = %.10f", v.Variable, v.JarqueBeraStat)
		}
		if !almostEqual(v.DurbinWatson, 3.0635066259, 1e-8) {
			t.Errorf("%s: dw = %.10f", v.Variable, v.DurbinWatson)
		}
	}
	if !rec.Stable || !almostEqual(rec.MaxRootModulus, 0.8, 1e-12) {
		t.Errorf("stable=%t max=%v, want stable with max 0.8", rec.Stable, rec.MaxRootModulus)
	}
}

func TestRunLjungBoxLagCap(t *testing.T) {
	resid := mat.NewDense(len(residFixture), 1, residFixture)
	m := &fakeModel{resid: resid}

	cases := []struct {
		usedLags int
		want     int
	}{
		{0, 1}, // floor
		{1, 1},
		{2, 2},
		{5, 2}, // cap
	}
	for _, tc := range cases {
		rec, err := Run(m, []string{"x"}, tc.usedLags)
		if err != nil {
			t.Fatalf("Run(usedLags=%d): %v", tc.usedLags, err)
		}
		if rec.LjungBoxLags != tc.want {
			t.Errorf("usedLags=%d: LjungBoxLags = %d, want %d", tc.usedLags, rec.LjungBoxLags, tc.want)
		}
	}
}

func TestRunStabilityBoundary(t *testing.T) {
	resid := mat.NewDense(len(residFixture), 1, residFixture)

	// A root exactly on the unit circle is unstable.
	onCircle := &fakeModel{resid: resid, moduli: []float64{1.0, 0.4}}
	rec, err := Run(onCircle, []string{"x"}, 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.Stable {
		t.Error("modulus 1.0 should be unstable")
	}
	if !almostEqual(rec.MaxRootModulus, 1.0, 1e-12) {
		t.Errorf("max modulus = %v, want 1.0", rec.MaxRootModulus)
	}

	inside := &fakeModel{resid: resid, moduli: []float64{0.999}}
	rec, err = Run(inside, []string{"x"}, 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rec.Stable {
		t.Error("modulus 0.999 should be stable")
	}
}

func TestRunNoRoots(t *testing.T) {
	resid := mat.NewDense(len(residFixture), 1, residFixture)
	m := &fakeModel{resid: resid}
	rec, err := Run(m, []string{"x"}, 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rec.Stable {
		t.Error("no roots should report stable")
	}
	if !math.IsNaN(rec.MaxRootModulus) {
		t.Errorf("max modulus = %v, want NaN", rec.MaxRootModulus)
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := Run(&fakeModel{}, []string{"x"}, 1); err == nil {
		t.Error("nil residuals should fail")
	}
	resid := mat.NewDense(len(residFixture), 1, residFixture)
	if _, err := Run(&fakeModel{resid: resid}, []string{"a", "b"}, 1); err == nil {
		t.Error("name count mismatch should fail")
	}
}

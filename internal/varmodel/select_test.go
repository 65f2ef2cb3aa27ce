package varmodel

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// Simulated bivariate VAR(1) with intercepts, 60 observations. All three
// criteria should land on order 1.
var (
	selFixtureCol0 = []float64{
		0.5000000000, 0.5918040106, 0.5916053950, 1.0535821341, 0.6534757817, 0.7329136067,
		0.6584713931, 0.7511971927, 0.5479915593, 0.6062891730, 0.4882028839, 0.2444510332,
		0.9840393942, 1.2729495634, 1.5508270549, 1.1849547563, 1.0095184529, 1.1522532883,
		0.8825383140, 0.1973951467, 0.8625967516, 0.4660337295, 0.3077466875, -0.0108635810,
		0.5822883572, 0.1772453050, 0.9041483516, 0.6951358674, 0.7447808580, 0.7978814596,
		0.5207566731, 0.4201168702, 0.6740863087, 0.1610148433, 0.0422003555, 0.3999189599,
		0.0220986526, -0.0855685188, 0.4690563982, 0.4536161106, 0.6694081029, 0.7857290361,
		0.8831125527, 1.0788069848, 1.2719833530, 1.1266702243, 1.0890633801, 1.0611247111,
		0.8972325455, 1.0028794131, 0.7909147255, 1.0510993158, 0.5634950542, -0.2671580747,
		0.1188865729, 0.1641579671, -0.0724262075, 0.2710358949, 0.2017329655, 0.4292611499,
	}
	selFixtureCol1 = []float64{
		0.4000000000, 0.0787815053, 0.0685557013, 0.7824059151, 0.2966209345, 0.4950689632,
		-0.1562107429, 0.3054608819, 0.8526341567, 1.2403191813, 0.7217512534, 0.6224460031,
		0.7628323288, 0.6066404240, 0.4680360585, 0.0403629495, 0.0885999067, 0.0060411195,
		0.2303760293, 0.5447032250, 0.4592156660, -0.0015298067, -0.0592937969, 0.5532872641,
		0.4114119115, 0.8521937136, 0.5265895544, 0.4896502101, -0.2279392722, 0.1552261184,
		0.5757053605, 0.6632077701, 0.9208030635, 0.8652047917, 0.6176771562, 0.1556100254,
		0.4314673394, -0.1560035958, 0.3984929186, 0.6473200842, 0.7507300702, 0.7568366609,
		0.6614796315, 1.0747885766, 0.4281793394, 0.2063889551, 0.2386526420, 0.5190619512,
		0.5587656605, 0.4830950155, -0.0710514544, -0.1353146125, 0.0847824763, 0.4522268599,
		0.1579388430, 0.2139471830, 0.3814440642, 0.2279020121, 0.3733965527, 0.3557360658,
	}
)

func selFixtureData() *mat.Dense {
	n := len(selFixtureCol0)
	y := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		y.Set(i, 0, selFixtureCol0[i])
		y.Set(i, 1, selFixtureCol1[i])
	}
	return y
}

func TestSelectLagsVAR1Data(t *testing.T) {
	names := []string{"a", "b"}
	data := selFixtureData()
	for _, ic := range []Criterion{AIC, BIC, HQIC} {
		got := SelectLags(data, names, 2, ic, DetConstTrend)
		if got != 1 {
			t.Errorf("SelectLags(%s) = %d, want 1", ic, got)
		}
	}
}

func TestSelectLagsBounds(t *testing.T) {
	names := []string{"a", "b"}
	data := selFixtureData()
	for maxLags := 1; maxLags <= 4; maxLags++ {
		got := SelectLags(data, names, maxLags, AIC, DetConstTrend)
		if got < 1 || got > maxLags {
			t.Errorf("SelectLags with maxLags=%d returned %d, outside [1,%d]", maxLags, got, maxLags)
		}
	}
}

func TestSelectLagsFallback(t *testing.T) {
	names := []string{"a", "b"}

	if got := SelectLags(selFixtureData(), names, 0, AIC, DetConst); got != 1 {
		t.Errorf("maxLags 0: got %d, want fallback 1", got)
	}
	if got := SelectLags(nil, names, 2, AIC, DetConst); got != 1 {
		t.Errorf("nil data: got %d, want fallback 1", got)
	}

	short := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	if got := SelectLags(short, names, 2, AIC, DetConst); got != 1 {
		t.Errorf("short sample: got %d, want fallback 1", got)
	}

	// NaN data poisons every candidate's criterion.
	bad := mat.NewDense(20, 2, nil)
	for i := 0; i < 20; i++ {
		bad.Set(i, 0, math.NaN())
		bad.Set(i, 1, math.NaN())
	}
	if got := SelectLags(bad, names, 2, AIC, DetConst); got != 1 {
		t.Errorf("degenerate data: got %d, want fallback 1", got)
	}
}

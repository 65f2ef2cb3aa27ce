package report

import (
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/diagnostics"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/metrics"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/pipeline"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/stationarity"
)

func samplePack() *pipeline.ResultsPack {
	return &pipeline.ResultsPack{
		UsedLags:    1,
		Transformed: true,
		Variables:   []string{"yield_10y", "inflation_yoy"},
		Meta: pipeline.TransformMeta{
			Differenced: true,
			Before: []stationarity.Result{
				{Variable: "yield_10y", Stat: -0.83, PValue: 0.81, LagsUsed: 0, NObs: 14},
				{Variable: "inflation_yoy", Stat: -1.57, PValue: 0.50, LagsUsed: 4, NObs: 10},
			},
			After: []stationarity.Result{
				{Variable: "yield_10y", Stat: -6.00, PValue: 0.00, LagsUsed: 5, NObs: 8},
				{Variable: "inflation_yoy", Stat: -1.29, PValue: 0.63, LagsUsed: 2, NObs: 11},
			},
		},
		Diagnostics: diagnostics.Record{
			PerVariable: []diagnostics.VariableStats{
				{Variable: "yield_10y", LjungBoxStat: 1.2, LjungBoxP: 0.27, JarqueBeraStat: 0.4, JarqueBeraP: 0.82, DurbinWatson: 2.1},
				{Variable: "inflation_yoy", LjungBoxStat: 0.8, LjungBoxP: 0.37, JarqueBeraStat: 0.9, JarqueBeraP: 0.64, DurbinWatson: 1.9},
			},
			LjungBoxLags:   1,
			Stable:         true,
			MaxRootModulus: 0.83,
			NObs:           13,
		},
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf}
	sum := p.Report(samplePack(), "United States")

	out := buf.String()
	for _, want := range []string{
		"Country: United States",
		"Used lags: 1",
		"Differenced to stationary: true",
		"ADF before:",
		"ADF after:",
		"yield_10y",
		"inflation_yoy",
		"Ljung-Box lags: 1",
		"stable (all roots inside unit circle): true",
		"max root modulus: 0.830000",
		"residual sample size: 13",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q\n%s", want, out)
		}
	}

	if sum.Country != "United States" || sum.UsedLags != 1 || !sum.Transformed ||
		!sum.Stable || sum.NObs != 13 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestReportSkipsAfterWhenUntransformed(t *testing.T) {
	pack := samplePack()
	pack.Transformed = false

	var buf bytes.Buffer
	(&Printer{W: &buf}).Report(pack, "Japan")
	if strings.Contains(buf.String(), "ADF after:") {
		t.Error("untransformed run should not print post-differencing tests")
	}
}

func TestPrintForecast(t *testing.T) {
	fc := &pipeline.Forecast{
		Steps: []int{1, 2},
		Names: []string{"yield_10y", "inflation_yoy"},
		Levels: mat.NewDense(2, 2, []float64{
			4.91, 2.97,
			5.02, 3.01,
		}),
	}

	var buf bytes.Buffer
	(&Printer{W: &buf}).PrintForecast(fc)
	out := buf.String()
	for _, want := range []string{"step", "yield_10y", "inflation_yoy", "4.910000", "3.010000"} {
		if !strings.Contains(out, want) {
			t.Errorf("forecast output missing %q\n%s", want, out)
		}
	}
}

func TestPrintMetrics(t *testing.T) {
	var buf bytes.Buffer
	(&Printer{W: &buf}).PrintMetrics("yield_10y", metrics.Report{MAE: 0.25, RMSE: 0.5})
	out := buf.String()
	if !strings.Contains(out, "Metrics yield_10y: MAE=0.250000 RMSE=0.500000") {
		t.Errorf("unexpected metrics line: %s", out)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"United States": "united_states",
		" Germany ":     "germany",
		"a/b":           "a_b",
		"yield_10y":     "yield_10y",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}

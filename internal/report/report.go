// Package report is the presentation layer: printed run summaries and
// PNG line charts for impulse responses and forecasts.
package report

import (
	"fmt"
	"io"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/metrics"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/pipeline"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/stationarity"
)

// Summary is the condensed outcome of one country run.
type Summary struct {
	Country        string
	UsedLags       int
	Transformed    bool
	Stable         bool
	MaxRootModulus float64
	NObs           int
}

// Printer writes human-readable run reports.
type Printer struct {
	W io.Writer
}

// Report prints the fitted-model summary for one country and returns the
// condensed record.
func (p *Printer) Report(pack *pipeline.ResultsPack, country string) Summary {
	fmt.Fprintf(p.W, "Country: %s\n", country)
	fmt.Fprintf(p.W, "Used lags: %d\n", pack.UsedLags)
	fmt.Fprintf(p.W, "Differenced to stationary: %t\n", pack.Transformed)

	fmt.Fprintln(p.W, "ADF before:")
	for _, r := range pack.Meta.Before {
		printADF(p.W, r)
	}
	if pack.Transformed {
		fmt.Fprintln(p.W, "ADF after:")
		for _, r := range pack.Meta.After {
			printADF(p.W, r)
		}
	}

	d := pack.Diagnostics
	fmt.Fprintln(p.W, "Diagnostics:")
	fmt.Fprintf(p.W, "  Ljung-Box lags: %d\n", d.LjungBoxLags)
	for _, v := range d.PerVariable {
		fmt.Fprintf(p.W, "  %-14s lb_stat=%.4f lb_p=%.4f jb_stat=%.4f jb_p=%.4f dw=%.4f\n",
			v.Variable, v.LjungBoxStat, v.LjungBoxP, v.JarqueBeraStat, v.JarqueBeraP, v.DurbinWatson)
	}
	fmt.Fprintf(p.W, "  stable (all roots inside unit circle): %t\n", d.Stable)
	fmt.Fprintf(p.W, "  max root modulus: %.6f\n", d.MaxRootModulus)
	fmt.Fprintf(p.W, "  residual sample size: %d\n", d.NObs)

	return Summary{
		Country:        country,
		UsedLags:       pack.UsedLags,
		Transformed:    pack.Transformed,
		Stable:         d.Stable,
		MaxRootModulus: d.MaxRootModulus,
		NObs:           d.NObs,
	}
}

// PrintForecast prints the level-forecast table.
func (p *Printer) PrintForecast(fc *pipeline.Forecast) {
	fmt.Fprintln(p.W, "Forecasted levels (next steps):")
	fmt.Fprintf(p.W, "%-6s", "step")
	for _, name := range fc.Names {
		fmt.Fprintf(p.W, "%14s", name)
	}
	fmt.Fprintln(p.W)
	for i, step := range fc.Steps {
		fmt.Fprintf(p.W, "%-6d", step)
		for j := range fc.Names {
			fmt.Fprintf(p.W, "%14.6f", fc.Levels.At(i, j))
		}
		fmt.Fprintln(p.W)
	}
}

// PrintMetrics prints forecast-accuracy metrics for one variable.
func (p *Printer) PrintMetrics(variable string, rep metrics.Report) {
	fmt.Fprintf(p.W, "Metrics %s: MAE=%.6f RMSE=%.6f\n", variable, rep.MAE, rep.RMSE)
}

func printADF(w io.Writer, r stationarity.Result) {
	fmt.Fprintf(w, "  %-14s adf_stat=%.4f p_value=%.4f lags_used=%d nobs=%d\n",
		r.Variable, r.Stat, r.PValue, r.LagsUsed, r.NObs)
}

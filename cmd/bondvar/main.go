package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/config"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/dataset"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/metrics"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/pipeline"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/recorder"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bondvar",
		Short: "Per-country VAR analysis of inflation and 10Y bond yields",
	}
	root.AddCommand(newAnalyzeCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var (
		cfgPath string
		country string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Fit a VAR per configured country and report diagnostics, IRFs and forecasts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cfgPath, country, verbose)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "configs/config.yaml", "path to YAML config")
	cmd.Flags().StringVar(&country, "country", "", "restrict the run to one configured country name")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func runAnalyze(cfgPath, onlyCountry string, verbose bool) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	runCfg, err := cfg.Pipeline()
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	yields, err := dataset.LoadFrame(cfg.Data.YieldsCSV)
	if err != nil {
		return fmt.Errorf("load yields: %w", err)
	}
	inflation, err := dataset.LoadFrame(cfg.Data.InflationCSV)
	if err != nil {
		return fmt.Errorf("load inflation: %w", err)
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Output.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Output.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	charts, err := report.NewCharts(cfg.Output.PlotsDir, os.Stdout)
	if err != nil {
		return err
	}
	printer := &report.Printer{W: os.Stdout}

	for _, c := range cfg.Countries {
		if onlyCountry != "" && c.Name != onlyCountry {
			continue
		}
		clog := log.With().Str("country", c.Name).Logger()
		if err := analyzeCountry(c, yields, inflation, cfg, runCfg, printer, charts, rec, clog); err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
	}
	return nil
}

func analyzeCountry(
	c config.Country,
	yields, inflation *dataset.Frame,
	cfg *config.Config,
	runCfg pipeline.Config,
	printer *report.Printer,
	charts *report.Charts,
	rec recorder.Recorder,
	log zerolog.Logger,
) error {
	tbl, err := dataset.MergeYieldsInflation(yields, inflation, c.Code, c.Name, cfg.MergeOptions())
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	log.Info().Int("rows", tbl.Rows()).Ints("years", []int{tbl.Years[0], tbl.Years[len(tbl.Years)-1]}).
		Msg("merged series")

	pack, err := pipeline.Fit(tbl, runCfg, log)
	if err != nil {
		return err
	}
	printer.Report(pack, c.Name)

	fc, err := pipeline.ForecastLevels(pack, pack.LastLevels, runCfg.ForecastSteps)
	if err != nil {
		return err
	}
	printer.PrintForecast(fc)

	// In-sample accuracy: predicted = observed minus residual over the
	// estimation sample.
	resid := pack.Model.Residuals()
	nResid, _ := resid.Dims()
	offset := pack.Data.Rows() - nResid
	for j, name := range pack.Variables {
		actual := pack.Data.Column(j)[offset:]
		pred := make([]float64, len(actual))
		for i := range pred {
			pred[i] = actual[i] - resid.At(i, j)
		}
		rep, err := metrics.Evaluate(actual, pred)
		if err != nil {
			return fmt.Errorf("metrics %s: %w", name, err)
		}
		printer.PrintMetrics(name, rep)
		if err := charts.RealVsPred(pack.Data.Years[offset:], actual, pred, c.Name, name); err != nil {
			return err
		}
	}

	if err := charts.IRFCharts(pack, c.Name, runCfg.IRFHorizon); err != nil {
		return err
	}
	if err := charts.ForecastCharts(fc, c.Name); err != nil {
		return err
	}

	run := &recorder.RunRecord{
		Country:        c.Name,
		UsedLags:       pack.UsedLags,
		Differenced:    pack.Transformed,
		Stable:         pack.Diagnostics.Stable,
		MaxRootModulus: pack.Diagnostics.MaxRootModulus,
		SampleSize:     pack.Diagnostics.NObs,
	}
	for i, step := range fc.Steps {
		for j, name := range fc.Names {
			run.Forecasts = append(run.Forecasts, recorder.ForecastRow{
				Step:     step,
				Variable: name,
				Level:    fc.Levels.At(i, j),
			})
		}
	}
	if err := rec.RecordRun(run); err != nil {
		log.Warn().Err(err).Msg("record run failed")
	}
	return nil
}

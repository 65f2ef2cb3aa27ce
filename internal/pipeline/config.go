package pipeline

import (
	"fmt"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/varmodel"
)

// Config is the per-run analysis configuration. It is a plain value:
// callers pass it explicitly and a copy can never leak state between runs.
type Config struct {
	// MaxLags bounds lag-order selection. Annual data: keep small.
	MaxLags int
	// IC drives lag selection.
	IC varmodel.Criterion
	// Deterministic is the trend specification for the fitted VAR.
	Deterministic varmodel.Deterministic
	// DiffToStationary enables joint first-differencing when any variable
	// fails the ADF check at the 5% level.
	DiffToStationary bool
	// IRFHorizon is the number of impulse-response periods to chart.
	IRFHorizon int
	// ForecastSteps is the number of periods to forecast ahead.
	ForecastSteps int
}

// DefaultConfig mirrors the defaults of the exploratory analysis:
// maxlags 2, AIC, constant+trend, auto-differencing, IRF horizon 8,
// 4 forecast steps.
func DefaultConfig() Config {
	return Config{
		MaxLags:          2,
		IC:               varmodel.AIC,
		Deterministic:    varmodel.DetConstTrend,
		DiffToStationary: true,
		IRFHorizon:       8,
		ForecastSteps:    4,
	}
}

// Validate rejects configurations no run could honor.
func (c Config) Validate() error {
	if c.MaxLags < 1 {
		return fmt.Errorf("max lags must be >= 1, got %d", c.MaxLags)
	}
	if _, err := varmodel.ParseCriterion(string(c.IC)); err != nil {
		return err
	}
	if c.IRFHorizon < 1 {
		return fmt.Errorf("irf horizon must be >= 1, got %d", c.IRFHorizon)
	}
	if c.ForecastSteps < 1 {
		return fmt.Errorf("forecast steps must be >= 1, got %d", c.ForecastSteps)
	}
	return nil
}

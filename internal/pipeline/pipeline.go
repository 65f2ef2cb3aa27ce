// Package pipeline runs the per-country VAR analysis: stationarity
// transform, lag selection, estimation, diagnostics and level forecasts.
// Each run is an independent, deterministic batch over one merged table.
package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/dataset"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/diagnostics"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/varmodel"
)

// ResultsPack bundles one country's fitted model with everything the
// reporting and forecasting stages need. Immutable after creation.
type ResultsPack struct {
	Model       varmodel.FittedModel
	UsedLags    int
	Transformed bool
	Meta        TransformMeta
	Diagnostics diagnostics.Record
	Variables   []string

	// Data is the (possibly differenced) table the model was fitted on;
	// its trailing rows seed forecasts.
	Data *dataset.Table
	// LastLevels are the last observed level values per variable, the
	// anchor for reconstructing level forecasts from differences.
	LastLevels []float64
}

// Fit runs the full pipeline on one merged country table.
func Fit(tbl *dataset.Table, cfg Config, log zerolog.Logger) (*ResultsPack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if tbl == nil || tbl.Rows() == 0 {
		return nil, fmt.Errorf("empty input table")
	}

	lastLevels := tbl.LastRow()

	transformed, meta, err := DifferenceIfNeeded(tbl, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Bool("differenced", meta.Differenced).Int("rows", transformed.Rows()).
		Msg("stationarity transform done")

	usedLags := varmodel.SelectLags(transformed.Y, transformed.Names, cfg.MaxLags, cfg.IC, cfg.Deterministic)
	log.Debug().Int("lags", usedLags).Str("ic", string(cfg.IC)).Msg("lag order selected")

	model, err := varmodel.Estimate(transformed.Y, transformed.Names, varmodel.ModelSpec{
		Lags:          usedLags,
		Deterministic: cfg.Deterministic,
	})
	if err != nil {
		return nil, fmt.Errorf("estimate VAR(%d): %w", usedLags, err)
	}

	diag, err := diagnostics.Run(model, transformed.Names, usedLags)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: %w", err)
	}
	log.Info().Int("lags", usedLags).Bool("stable", diag.Stable).
		Float64("max_root_modulus", diag.MaxRootModulus).Msg("VAR fitted")

	return &ResultsPack{
		Model:       model,
		UsedLags:    usedLags,
		Transformed: meta.Differenced,
		Meta:        meta,
		Diagnostics: diag,
		Variables:   transformed.Names,
		Data:        transformed,
		LastLevels:  lastLevels,
	}, nil
}

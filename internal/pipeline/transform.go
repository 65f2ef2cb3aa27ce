package pipeline

import (
	"fmt"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/dataset"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/stationarity"
)

// stationarityAlpha is the ADF significance level for the differencing
// decision.
const stationarityAlpha = 0.05

// TransformMeta records whether differencing was applied and the
// unit-root tests before and after.
type TransformMeta struct {
	Differenced bool
	Before      []stationarity.Result
	After       []stationarity.Result
}

// DifferenceIfNeeded checks each variable for a unit root. When
// auto-differencing is enabled and any variable fails at the 5% level,
// the whole table is differenced once (the transform is joint: one
// non-stationary variable differences both) and the tests re-run on the
// differenced series. Otherwise the input table is returned unchanged.
func DifferenceIfNeeded(tbl *dataset.Table, cfg Config) (*dataset.Table, TransformMeta, error) {
	meta := TransformMeta{}

	anyNonStationary := false
	for j, name := range tbl.Names {
		res, err := stationarity.ADF(tbl.Column(j), name)
		if err != nil {
			return nil, TransformMeta{}, fmt.Errorf("stationarity check: %w", err)
		}
		meta.Before = append(meta.Before, res)
		if res.PValue >= stationarityAlpha {
			anyNonStationary = true
		}
	}

	if !cfg.DiffToStationary || !anyNonStationary {
		return tbl, meta, nil
	}

	diffed := tbl.Diff()
	meta.Differenced = true
	for j, name := range diffed.Names {
		res, err := stationarity.ADF(diffed.Column(j), name)
		if err != nil {
			return nil, TransformMeta{}, fmt.Errorf("stationarity re-check after differencing: %w", err)
		}
		meta.After = append(meta.After, res)
	}
	return diffed, meta, nil
}

package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Forecast is a level forecast table indexed by step 1..n.
type Forecast struct {
	Steps  []int
	Names  []string
	Levels *mat.Dense
}

// ForecastLevels produces level forecasts for steps periods ahead. The
// raw forecast comes from the fitted model seeded with the trailing rows
// of the estimation sample. When the model was fitted on differences,
// levels are rebuilt by cumulation: row i equals lastLevels plus the sum
// of the first i forecasted differences, with the seed row excluded.
func ForecastLevels(pack *ResultsPack, lastLevels []float64, steps int) (*Forecast, error) {
	if pack == nil || pack.Model == nil {
		return nil, fmt.Errorf("no fitted model")
	}
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be > 0")
	}
	K := len(pack.Variables)
	if len(lastLevels) != K {
		return nil, fmt.Errorf("got %d last levels for %d variables", len(lastLevels), K)
	}

	raw, err := pack.Model.Forecast(pack.Data.Y, steps)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	levels := mat.NewDense(steps, K, nil)
	if pack.Transformed {
		prev := append([]float64{}, lastLevels...)
		for i := 0; i < steps; i++ {
			for j := 0; j < K; j++ {
				prev[j] += raw.At(i, j)
				levels.Set(i, j, prev[j])
			}
		}
	} else {
		levels.Copy(raw)
	}

	idx := make([]int, steps)
	for i := range idx {
		idx[i] = i + 1
	}
	names := make([]string, K)
	copy(names, pack.Variables)

	return &Forecast{Steps: idx, Names: names, Levels: levels}, nil
}

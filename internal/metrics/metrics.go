// Package metrics evaluates forecast accuracy over paired true/predicted
// sequences.
package metrics

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch is returned when the paired sequences disagree in length.
var ErrLengthMismatch = errors.New("true and predicted sequences have different lengths")

// Report holds basic error metrics.
type Report struct {
	MAE  float64
	RMSE float64
}

// Evaluate computes mean absolute error and root mean squared error.
func Evaluate(yTrue, yPred []float64) (Report, error) {
	if len(yTrue) != len(yPred) {
		return Report{}, fmt.Errorf("got %d true and %d predicted values: %w", len(yTrue), len(yPred), ErrLengthMismatch)
	}
	if len(yTrue) == 0 {
		return Report{}, fmt.Errorf("empty sequences")
	}
	var absSum, sqSum float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		absSum += math.Abs(d)
		sqSum += d * d
	}
	n := float64(len(yTrue))
	return Report{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
	}, nil
}

// Package recorder persists run history for later comparison across
// configurations and data vintages.
package recorder

// ForecastRow is one forecasted level value.
type ForecastRow struct {
	Step     int
	Variable string
	Level    float64
}

// RunRecord holds everything one country run leaves behind.
type RunRecord struct {
	RunID          string // assigned when empty
	Country        string
	UsedLags       int
	Differenced    bool
	Stable         bool
	MaxRootModulus float64
	SampleSize     int
	Forecasts      []ForecastRow
}

// Recorder persists run records for analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}

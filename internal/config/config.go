// Package config loads the application configuration from a YAML file
// with environment overrides and defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Hesham33Hh/Global-bond-analytics/internal/dataset"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/pipeline"
	"github.com/Hesham33Hh/Global-bond-analytics/internal/varmodel"
)

// Country pairs the yield-table column code with the inflation-table
// country name (e.g. "US10" / "United States").
type Country struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Config holds all application configuration.
type Config struct {
	Data struct {
		YieldsCSV       string `yaml:"yields_csv"`
		InflationCSV    string `yaml:"inflation_csv"`
		YearColumn      string `yaml:"year_column"`
		CountryColumn   string `yaml:"country_column"`
		InflationColumn string `yaml:"inflation_column"`
		YieldName       string `yaml:"yield_name"`
	} `yaml:"data"`
	VAR struct {
		MaxLags          int    `yaml:"maxlags"`
		IC               string `yaml:"ic"`
		Deterministic    string `yaml:"deterministic"`
		DiffToStationary *bool  `yaml:"diff_to_stationary"`
		IRFHorizon       int    `yaml:"irf_horizon"`
		ForecastSteps    int    `yaml:"fcst_steps"`
	} `yaml:"var"`
	Output struct {
		PlotsDir   string `yaml:"plots_dir"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"output"`
	Countries []Country `yaml:"countries"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BONDVAR_YIELDS_CSV"); v != "" {
		cfg.Data.YieldsCSV = v
	}
	if v := os.Getenv("BONDVAR_INFLATION_CSV"); v != "" {
		cfg.Data.InflationCSV = v
	}
	if v := os.Getenv("BONDVAR_PLOTS_DIR"); v != "" {
		cfg.Output.PlotsDir = v
	}
	if v := os.Getenv("BONDVAR_SQLITE_PATH"); v != "" {
		cfg.Output.SQLitePath = v
	}

	// Defaults
	if cfg.VAR.MaxLags == 0 {
		cfg.VAR.MaxLags = 2
	}
	if cfg.VAR.IC == "" {
		cfg.VAR.IC = "aic"
	}
	if cfg.VAR.Deterministic == "" {
		cfg.VAR.Deterministic = "ct"
	}
	if cfg.VAR.IRFHorizon == 0 {
		cfg.VAR.IRFHorizon = 8
	}
	if cfg.VAR.ForecastSteps == 0 {
		cfg.VAR.ForecastSteps = 4
	}
	if cfg.Output.PlotsDir == "" {
		cfg.Output.PlotsDir = "plots"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Data.YieldsCSV == "" {
		return fmt.Errorf("data.yields_csv is required")
	}
	if c.Data.InflationCSV == "" {
		return fmt.Errorf("data.inflation_csv is required")
	}
	if len(c.Countries) == 0 {
		return fmt.Errorf("at least one country is required")
	}
	for i, cc := range c.Countries {
		if cc.Code == "" || cc.Name == "" {
			return fmt.Errorf("countries[%d]: code and name are required", i)
		}
	}
	return nil
}

// Pipeline maps the file settings onto the immutable run configuration.
func (c *Config) Pipeline() (pipeline.Config, error) {
	ic, err := varmodel.ParseCriterion(c.VAR.IC)
	if err != nil {
		return pipeline.Config{}, err
	}
	det, err := varmodel.ParseDeterministic(c.VAR.Deterministic)
	if err != nil {
		return pipeline.Config{}, err
	}
	diff := true
	if c.VAR.DiffToStationary != nil {
		diff = *c.VAR.DiffToStationary
	}
	return pipeline.Config{
		MaxLags:          c.VAR.MaxLags,
		IC:               ic,
		Deterministic:    det,
		DiffToStationary: diff,
		IRFHorizon:       c.VAR.IRFHorizon,
		ForecastSteps:    c.VAR.ForecastSteps,
	}, nil
}

// MergeOptions maps the column settings for the data preparer.
func (c *Config) MergeOptions() dataset.MergeOptions {
	return dataset.MergeOptions{
		YearColumn:      c.Data.YearColumn,
		CountryColumn:   c.Data.CountryColumn,
		InflationColumn: c.Data.InflationColumn,
		YieldName:       c.Data.YieldName,
	}
}

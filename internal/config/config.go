package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stockcast/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Output struct {
		Path     string `yaml:"path"`
		CopyPath string `yaml:"copy_path"`
		XLSXPath string `yaml:"xlsx_path"`
	} `yaml:"output"`
	Forecast struct {
		Columns         []string `yaml:"columns"`
		DaysPerMonth    *int     `yaml:"days_per_month"`
		SmoothingWindow int      `yaml:"smoothing_window"`
		Parallel        bool     `yaml:"parallel"`
	} `yaml:"forecast"`
	Model struct {
		YearlySeasonality     string  `yaml:"yearly_seasonality"`
		WeeklySeasonality     string  `yaml:"weekly_seasonality"`
		DailySeasonality      string  `yaml:"daily_seasonality"`
		SeasonalityMode       string  `yaml:"seasonality_mode"`
		SeasonalityPriorScale float64 `yaml:"seasonality_prior_scale"`
		ChangepointPriorScale float64 `yaml:"changepoint_prior_scale"`
		NChangepoints         *int    `yaml:"n_changepoints"`
		ChangepointRange      float64 `yaml:"changepoint_range"`
		YearlyFourierOrder    int     `yaml:"yearly_fourier_order"`
		WeeklyFourierOrder    int     `yaml:"weekly_fourier_order"`
		FitIterations         int     `yaml:"fit_iterations"`
	} `yaml:"model"`
	DataSource struct {
		Symbol string `yaml:"symbol"`
		Range  string `yaml:"range"`
	} `yaml:"data_source"`
	Schedule struct {
		Cron       string `yaml:"cron"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults are used instead.
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
	if v := os.Getenv("STOCKCAST_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("STOCKCAST_COPY"); v != "" {
		cfg.Output.CopyPath = v
	}
	if v := os.Getenv("STOCKCAST_XLSX"); v != "" {
		cfg.Output.XLSXPath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a configuration with every default applied and no file or
// environment input.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Output.Path == "" {
		c.Output.Path = "/tmp/predictions.csv"
	}
	if c.Output.CopyPath == "" {
		c.Output.CopyPath = "/tmp/stock-price-copy.csv"
	}
	if len(c.Forecast.Columns) == 0 {
		c.Forecast.Columns = append([]string(nil), model.DefaultTargets...)
	}
	if c.Forecast.DaysPerMonth == nil {
		n := 30
		c.Forecast.DaysPerMonth = &n
	}
	if c.Forecast.SmoothingWindow == 0 {
		c.Forecast.SmoothingWindow = 5
	}
	if c.Model.YearlySeasonality == "" {
		c.Model.YearlySeasonality = "on"
	}
	if c.Model.WeeklySeasonality == "" {
		c.Model.WeeklySeasonality = "auto"
	}
	if c.Model.DailySeasonality == "" {
		c.Model.DailySeasonality = "off"
	}
	if c.Model.SeasonalityMode == "" {
		c.Model.SeasonalityMode = "additive"
	}
	if c.Model.SeasonalityPriorScale == 0 {
		c.Model.SeasonalityPriorScale = 10.0
	}
	if c.Model.ChangepointPriorScale == 0 {
		c.Model.ChangepointPriorScale = 0.1
	}
	if c.Model.NChangepoints == nil {
		n := 25
		c.Model.NChangepoints = &n
	}
	if c.Model.ChangepointRange == 0 {
		c.Model.ChangepointRange = 0.8
	}
	if c.Model.YearlyFourierOrder == 0 {
		c.Model.YearlyFourierOrder = 10
	}
	if c.Model.WeeklyFourierOrder == 0 {
		c.Model.WeeklyFourierOrder = 3
	}
	if c.Model.FitIterations == 0 {
		c.Model.FitIterations = 20
	}
	if c.DataSource.Range == "" {
		c.DataSource.Range = "5y"
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 30 22 * * 1-5"
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.Output.CopyPath == "" {
		return fmt.Errorf("output.copy_path is required")
	}
	if c.Output.Path == c.Output.CopyPath {
		return fmt.Errorf("output.path and output.copy_path must differ")
	}
	if *c.Forecast.DaysPerMonth < 0 {
		return fmt.Errorf("forecast.days_per_month must not be negative")
	}
	if c.Forecast.SmoothingWindow < 1 {
		return fmt.Errorf("forecast.smoothing_window must be positive")
	}
	seen := make(map[string]bool, len(c.Forecast.Columns))
	for _, col := range c.Forecast.Columns {
		if col == "" || col == model.ColumnDate {
			return fmt.Errorf("forecast.columns: invalid column %q", col)
		}
		if seen[col] {
			return fmt.Errorf("forecast.columns: duplicate column %q", col)
		}
		seen[col] = true
	}
	for name, v := range map[string]string{
		"model.yearly_seasonality": c.Model.YearlySeasonality,
		"model.weekly_seasonality": c.Model.WeeklySeasonality,
		"model.daily_seasonality":  c.Model.DailySeasonality,
	} {
		if v != "on" && v != "off" && v != "auto" {
			return fmt.Errorf("%s must be one of on, off, auto (got %q)", name, v)
		}
	}
	if c.Model.SeasonalityMode != "additive" {
		return fmt.Errorf("model.seasonality_mode %q is not supported", c.Model.SeasonalityMode)
	}
	if c.Model.SeasonalityPriorScale <= 0 {
		return fmt.Errorf("model.seasonality_prior_scale must be positive")
	}
	if c.Model.ChangepointPriorScale <= 0 {
		return fmt.Errorf("model.changepoint_prior_scale must be positive")
	}
	if *c.Model.NChangepoints < 0 {
		return fmt.Errorf("model.n_changepoints must not be negative")
	}
	if c.Model.ChangepointRange <= 0 || c.Model.ChangepointRange > 1 {
		return fmt.Errorf("model.changepoint_range must be in (0, 1]")
	}
	if c.Model.YearlyFourierOrder < 1 || c.Model.WeeklyFourierOrder < 1 {
		return fmt.Errorf("model fourier orders must be positive")
	}
	if c.Model.FitIterations < 1 {
		return fmt.Errorf("model.fit_iterations must be positive")
	}
	return nil
}

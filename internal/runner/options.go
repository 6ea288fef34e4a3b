package runner

import (
	"stockcast/internal/config"
	"stockcast/internal/prophet"
)

// Options controls a forecast run.
type Options struct {
	Columns         []string
	DaysPerMonth    int
	SmoothingWindow int
	Parallel        bool
	Model           prophet.Config

	CopyPath   string
	OutputPath string
	XLSXPath   string // optional

	Verbose bool
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig maps loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	mc := prophet.DefaultConfig()
	mc.YearlySeasonality = prophet.Toggle(cfg.Model.YearlySeasonality)
	mc.WeeklySeasonality = prophet.Toggle(cfg.Model.WeeklySeasonality)
	mc.DailySeasonality = prophet.Toggle(cfg.Model.DailySeasonality)
	mc.SeasonalityMode = cfg.Model.SeasonalityMode
	mc.SeasonalityPriorScale = cfg.Model.SeasonalityPriorScale
	mc.ChangepointPriorScale = cfg.Model.ChangepointPriorScale
	if cfg.Model.NChangepoints != nil {
		mc.NChangepoints = *cfg.Model.NChangepoints
	}
	mc.ChangepointRange = cfg.Model.ChangepointRange
	mc.YearlyFourierOrder = cfg.Model.YearlyFourierOrder
	mc.WeeklyFourierOrder = cfg.Model.WeeklyFourierOrder
	mc.FitIterations = cfg.Model.FitIterations

	return Options{
		Columns:         append([]string(nil), cfg.Forecast.Columns...),
		DaysPerMonth:    *cfg.Forecast.DaysPerMonth,
		SmoothingWindow: cfg.Forecast.SmoothingWindow,
		Parallel:        cfg.Forecast.Parallel,
		Model:           mc,
		CopyPath:        cfg.Output.CopyPath,
		OutputPath:      cfg.Output.Path,
		XLSXPath:        cfg.Output.XLSXPath,
	}
}

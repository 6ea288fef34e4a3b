package prophet

import "fmt"

// Toggle switches a seasonality on, off, or lets the model decide from the
// history span and sampling frequency.
type Toggle string

const (
	SeasonalityAuto Toggle = "auto"
	SeasonalityOn   Toggle = "on"
	SeasonalityOff  Toggle = "off"
)

// ModeAdditive is the only supported seasonality mode.
const ModeAdditive = "additive"

// Config holds model options. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	YearlySeasonality Toggle
	WeeklySeasonality Toggle
	DailySeasonality  Toggle
	SeasonalityMode   string

	YearlyFourierOrder int
	WeeklyFourierOrder int
	DailyFourierOrder  int

	SeasonalityPriorScale float64
	ChangepointPriorScale float64
	NChangepoints         int
	ChangepointRange      float64 // fraction of history eligible for changepoints

	FitIterations int
}

// DefaultConfig returns the options used by the forecast runner: yearly
// seasonality on, weekly automatic, daily off.
func DefaultConfig() Config {
	return Config{
		YearlySeasonality:     SeasonalityOn,
		WeeklySeasonality:     SeasonalityAuto,
		DailySeasonality:      SeasonalityOff,
		SeasonalityMode:       ModeAdditive,
		YearlyFourierOrder:    10,
		WeeklyFourierOrder:    3,
		DailyFourierOrder:     4,
		SeasonalityPriorScale: 10.0,
		ChangepointPriorScale: 0.1,
		NChangepoints:         25,
		ChangepointRange:      0.8,
		FitIterations:         20,
	}
}

func (c Config) validate() error {
	if c.SeasonalityMode != ModeAdditive {
		return fmt.Errorf("unsupported seasonality mode %q", c.SeasonalityMode)
	}
	if c.SeasonalityPriorScale <= 0 || c.ChangepointPriorScale <= 0 {
		return fmt.Errorf("prior scales must be positive")
	}
	if c.NChangepoints < 0 {
		return fmt.Errorf("n changepoints must not be negative")
	}
	if c.ChangepointRange <= 0 || c.ChangepointRange > 1 {
		return fmt.Errorf("changepoint range must be in (0, 1]")
	}
	if c.FitIterations < 1 {
		return fmt.Errorf("fit iterations must be positive")
	}
	return nil
}

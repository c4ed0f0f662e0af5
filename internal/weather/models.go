package weather

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrCityNotFound is returned by geocoders when a name resolves to nothing.
	ErrCityNotFound = errors.New("city not found")
	// ErrNoData is returned when no usable forecast exists for a city.
	ErrNoData = errors.New("no weather data for city")
	// ErrInvalidSeries is returned when a provider payload breaks series invariants.
	ErrInvalidSeries = errors.New("invalid forecast series")
)

// Coordinates is a resolved geographic position.
type Coordinates struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name,omitempty"`
}

// Location represents a logical place for which we fetch forecasts.
type Location struct {
	City string `json:"city"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return strings.ToLower(strings.TrimSpace(l.City))
}

// HourlyObservation is one forecast hour.
type HourlyObservation struct {
	Time         time.Time `json:"time"`
	TemperatureC float64   `json:"temperatureC"`
	HumidityPct  float64   `json:"humidityPercent"`
	UVIndex      float64   `json:"uvIndex"`
	Sunrise      time.Time `json:"sunrise"`
	Sunset       time.Time `json:"sunset"`
}

// ForecastSeries is an hourly forecast for one city, ordered by Time ascending.
type ForecastSeries struct {
	City         string              `json:"city"`
	TimeZone     string              `json:"timezone"`
	Observations []HourlyObservation `json:"observations"`

	// Providers contributing to this series.
	Providers []string `json:"providers,omitempty"`
}

// Loc returns the IANA location of the series. Unknown zones fall back to UTC.
func (s ForecastSeries) Loc() *time.Location {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Len returns the number of hourly observations.
func (s ForecastSeries) Len() int {
	return len(s.Observations)
}

// Head returns a copy of the series restricted to its first n observations.
func (s ForecastSeries) Head(n int) ForecastSeries {
	if n > len(s.Observations) {
		n = len(s.Observations)
	}
	out := s
	out.Observations = s.Observations[:n]
	return out
}

// Validate checks the series invariants: a loadable zone, strictly increasing
// timestamps and one sunrise/sunset pair per calendar day.
func (s ForecastSeries) Validate() error {
	if len(s.Observations) == 0 {
		return fmt.Errorf("%w: no observations", ErrInvalidSeries)
	}
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidSeries, s.TimeZone)
	}

	type sun struct{ rise, set time.Time }
	days := make(map[string]sun)

	for i, obs := range s.Observations {
		if i > 0 && !obs.Time.After(s.Observations[i-1].Time) {
			return fmt.Errorf("%w: timestamp %s not after %s", ErrInvalidSeries,
				obs.Time.Format(time.RFC3339), s.Observations[i-1].Time.Format(time.RFC3339))
		}
		day := obs.Time.In(loc).Format("2006-01-02")
		if prev, ok := days[day]; ok {
			if !prev.rise.Equal(obs.Sunrise) || !prev.set.Equal(obs.Sunset) {
				return fmt.Errorf("%w: sunrise/sunset differ within %s", ErrInvalidSeries, day)
			}
			continue
		}
		days[day] = sun{rise: obs.Sunrise, set: obs.Sunset}
	}
	return nil
}

// Comparison is the outcome of fetching two cities for a side-by-side view.
// Either series may be nil when its pipeline produced no data.
type Comparison struct {
	ID      string          `json:"id"`
	City1   string          `json:"city1"`
	City2   string          `json:"city2"`
	Series1 *ForecastSeries `json:"series1,omitempty"`
	Series2 *ForecastSeries `json:"series2,omitempty"`
	Errors  []string        `json:"errors,omitempty"`
}

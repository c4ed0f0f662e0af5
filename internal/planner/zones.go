package planner

import (
	"time"

	"github.com/i474232898/moveguider/internal/weather"
)

const (
	warningTempC   = 30.0
	warningUV      = 7.0
	comfortMinTemp = 18.0
	comfortMaxTemp = 25.0
	comfortMaxUV   = 4.0

	// representativeHours is how many leading hours stand in for "one day".
	representativeHours = 24
)

// Classify labels a single observation. Warning is checked first, so an hour
// is never both.
func Classify(obs weather.HourlyObservation) (Classification, bool) {
	switch {
	case obs.TemperatureC > warningTempC || obs.UVIndex > warningUV:
		return ClassWarning, true
	case obs.TemperatureC >= comfortMinTemp && obs.TemperatureC <= comfortMaxTemp && obs.UVIndex < comfortMaxUV:
		return ClassComfort, true
	default:
		return "", false
	}
}

// ClassifyComfortZones classifies the first 24 hours of the series. Each
// classified hour becomes its own one-hour zone on the reference date in the
// series zone; neighbouring zones are not merged.
func ClassifyComfortZones(series weather.ForecastSeries, ref RefDate) []ComfortZone {
	loc := series.Loc()

	var zones []ComfortZone
	for _, obs := range series.Head(representativeHours).Observations {
		class, ok := Classify(obs)
		if !ok {
			continue
		}
		start := ref.At(TimeOfDayOf(obs.Time.In(loc)), loc)
		zones = append(zones, ComfortZone{
			Start:          start,
			End:            start.Add(time.Hour),
			Classification: class,
		})
	}
	return zones
}

package planner

import (
	"math"

	"github.com/i474232898/moveguider/internal/weather"
)

const (
	mlPerKgPerDay    = 35.0
	wakingHours      = 16.0
	heatThresholdC   = 25.0
	heatStepC        = 5.0
	heatExtraPerStep = 150.0
	humidExtraML     = 50.0
)

// HourlyIntake is the recommended intake for one hour in millilitres.
func HourlyIntake(weightKg, tempC, humidityPct float64) float64 {
	intake := weightKg * mlPerKgPerDay / wakingHours
	intake += math.Max(0, (tempC-heatThresholdC)/heatStepC) * heatExtraPerStep
	if humidityPct > humidityCutoff {
		intake += humidExtraML
	}
	return intake
}

// Hydration returns hourly and cumulative intake over the first 24 hours of
// the series.
func Hydration(series weather.ForecastSeries, weightKg float64) []HydrationPoint {
	head := series.Head(representativeHours).Observations
	loc := series.Loc()

	out := make([]HydrationPoint, 0, len(head))
	var total float64
	for _, obs := range head {
		intake := HourlyIntake(weightKg, obs.TemperatureC, obs.HumidityPct)
		total += intake
		out = append(out, HydrationPoint{
			Time:         obs.Time.In(loc),
			TemperatureC: obs.TemperatureC,
			HumidityPct:  obs.HumidityPct,
			IntakeML:     intake,
			CumulativeML: total,
		})
	}
	return out
}

package planner

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/i474232898/moveguider/internal/weather"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

type hourFunc func(i int, ts time.Time) (temp, humidity, uv float64)

func constant(temp, humidity, uv float64) hourFunc {
	return func(int, time.Time) (float64, float64, float64) { return temp, humidity, uv }
}

// buildSeries creates an hourly series starting at local midnight of day with
// sunrise and sunset at the given local hours every day.
func buildSeries(t *testing.T, tz string, day RefDate, hours int, fn hourFunc, riseHour, setHour int) weather.ForecastSeries {
	t.Helper()
	loc := mustLoad(t, tz)
	start := time.Date(day.Year, day.Month, day.Day, 0, 0, 0, 0, loc)

	obs := make([]weather.HourlyObservation, 0, hours)
	for i := 0; i < hours; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		y, m, d := ts.Date()
		temp, hum, uv := fn(i, ts)
		obs = append(obs, weather.HourlyObservation{
			Time:         ts,
			TemperatureC: temp,
			HumidityPct:  hum,
			UVIndex:      uv,
			Sunrise:      time.Date(y, m, d, riseHour, 0, 0, 0, loc),
			Sunset:       time.Date(y, m, d, setHour, 0, 0, 0, loc),
		})
	}

	series := weather.ForecastSeries{City: "Test City", TimeZone: tz, Observations: obs}
	if err := series.Validate(); err != nil {
		t.Fatalf("test series invalid: %v", err)
	}
	return series
}

var july15 = RefDate{Year: 2024, Month: time.July, Day: 15}

package weather

import "time"

// AggregateSeries combines series from several providers into one.
// The first series defines the timeline, zone and sun times; temperature,
// humidity and UV are averaged over every series that has a reading for the
// same instant.
func AggregateSeries(city string, series []ForecastSeries) ForecastSeries {
	if len(series) == 0 {
		return ForecastSeries{City: city}
	}

	primary := series[0]
	if len(series) == 1 {
		primary.City = city
		return primary
	}

	type sums struct {
		temp, humidity, uv float64
		n                  int
	}

	byInstant := make(map[int64]*sums, len(primary.Observations))
	for _, obs := range primary.Observations {
		byInstant[truncateHour(obs.Time).Unix()] = &sums{}
	}

	providers := make([]string, 0, len(series))
	for _, s := range series {
		providers = append(providers, s.Providers...)
		for _, obs := range s.Observations {
			acc, ok := byInstant[truncateHour(obs.Time).Unix()]
			if !ok {
				continue
			}
			acc.temp += obs.TemperatureC
			acc.humidity += obs.HumidityPct
			acc.uv += obs.UVIndex
			acc.n++
		}
	}

	out := ForecastSeries{
		City:         city,
		TimeZone:     primary.TimeZone,
		Observations: make([]HourlyObservation, 0, len(primary.Observations)),
		Providers:    providers,
	}
	for _, obs := range primary.Observations {
		acc := byInstant[truncateHour(obs.Time).Unix()]
		n := float64(acc.n)
		out.Observations = append(out.Observations, HourlyObservation{
			Time:         obs.Time,
			TemperatureC: acc.temp / n,
			HumidityPct:  acc.humidity / n,
			UVIndex:      acc.uv / n,
			Sunrise:      obs.Sunrise,
			Sunset:       obs.Sunset,
		})
	}
	return out
}

// truncateHour drops minutes and seconds so provider timelines line up.
func truncateHour(t time.Time) time.Time {
	return t.Truncate(time.Hour)
}

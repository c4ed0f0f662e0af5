package weather

import (
	"context"
)

// Geocoder resolves a free-form city name to coordinates.
type Geocoder interface {
	Name() string
	Resolve(ctx context.Context, city string) (Coordinates, error)
}

// Provider abstracts an hourly forecast source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	FetchHourly(ctx context.Context, coords Coordinates) (ForecastSeries, error)
}

// Store is the contract the forecast cache must satisfy.
type Store interface {
	SaveSeries(loc Location, series ForecastSeries)
	GetSeries(loc Location) (ForecastSeries, error)
	Invalidate(loc Location)
}

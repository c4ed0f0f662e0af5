package providers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/moveguider/internal/weather"
)

// OpenWeatherProvider implements weather.Geocoder and weather.Provider for OpenWeatherMap,
// using the direct geocoding API and the One Call 3.0 API.
type OpenWeatherProvider struct {
	name       string
	apiKey     string
	geoURL     string
	oneCallURL string
	httpCfg    HTTPClientConfig
	circuit    *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(cfg HTTPClientConfig, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:       "openweathermap",
		apiKey:     apiKey,
		geoURL:     "https://api.openweathermap.org/geo/1.0/direct",
		oneCallURL: "https://api.openweathermap.org/data/3.0/onecall",
		httpCfg:    cfg,
		circuit:    newCircuit("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Resolve looks up the first match for a city name.
func (p *OpenWeatherProvider) Resolve(ctx context.Context, city string) (weather.Coordinates, error) {
	if p.apiKey == "" {
		return weather.Coordinates{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("limit", "1")
	values.Set("appid", p.apiKey)

	var payload []struct {
		Name    string  `json:"name"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		Country string  `json:"country"`
		State   string  `json:"state"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.geoURL+"?"+values.Encode(), &payload); err != nil {
		return weather.Coordinates{}, err
	}
	if len(payload) == 0 {
		return weather.Coordinates{}, fmt.Errorf("%w: %s", weather.ErrCityNotFound, city)
	}

	hit := payload[0]
	name := hit.Name
	if hit.Country != "" {
		name = fmt.Sprintf("%s, %s", hit.Name, hit.Country)
	}
	return weather.Coordinates{Lat: hit.Lat, Lon: hit.Lon, Name: name}, nil
}

// FetchHourly returns the 48 hourly forecast entries with per-day sun times.
func (p *OpenWeatherProvider) FetchHourly(ctx context.Context, coords weather.Coordinates) (weather.ForecastSeries, error) {
	if p.apiKey == "" {
		return weather.ForecastSeries{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", coords.Lat))
	values.Set("lon", fmt.Sprintf("%f", coords.Lon))
	values.Set("exclude", "current,minutely,alerts")
	values.Set("units", "metric")
	values.Set("appid", p.apiKey)

	var payload struct {
		Timezone string `json:"timezone"`
		Hourly   []struct {
			Dt       int64   `json:"dt"`
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
			UVI      float64 `json:"uvi"`
		} `json:"hourly"`
		Daily []struct {
			Dt      int64 `json:"dt"`
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"daily"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.oneCallURL+"?"+values.Encode(), &payload); err != nil {
		return weather.ForecastSeries{}, err
	}

	loc, err := time.LoadLocation(payload.Timezone)
	if err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("openweather timezone %q: %w", payload.Timezone, err)
	}

	days := make(map[string]sunTimes, len(payload.Daily))
	for _, d := range payload.Daily {
		key := time.Unix(d.Dt, 0).In(loc).Format("2006-01-02")
		days[key] = sunTimes{
			Sunrise: time.Unix(d.Sunrise, 0),
			Sunset:  time.Unix(d.Sunset, 0),
		}
	}

	obs := make([]weather.HourlyObservation, 0, len(payload.Hourly))
	for _, h := range payload.Hourly {
		obs = append(obs, weather.HourlyObservation{
			Time:         time.Unix(h.Dt, 0),
			TemperatureC: h.Temp,
			HumidityPct:  h.Humidity,
			UVIndex:      h.UVI,
		})
	}

	return weather.ForecastSeries{
		City:         coords.Name,
		TimeZone:     payload.Timezone,
		Observations: attachSunTimes(p.name, obs, loc, days),
		Providers:    []string{p.name},
	}, nil
}

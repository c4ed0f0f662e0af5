package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/moveguider/internal/common"
	"github.com/i474232898/moveguider/internal/weather"
)

// OpenMeteoProvider implements weather.Geocoder and weather.Provider for Open-Meteo.
// It needs no API key.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	geoURL  string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(cfg HTTPClientConfig, days int) *OpenMeteoProvider {
	if days <= 0 {
		days = 3
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		geoURL:  "https://geocoding-api.open-meteo.com/v1/search",
		days:    days,
		httpCfg: cfg,
		circuit: newCircuit("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// Resolve looks up the first match for a city name. Only the text before the
// first comma is searched; Open-Meteo does not accept qualified names.
func (p *OpenMeteoProvider) Resolve(ctx context.Context, city string) (weather.Coordinates, error) {
	values := url.Values{}
	values.Set("name", common.ShortName(city))
	values.Set("count", "1")
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Country   string  `json:"country"`
		} `json:"results"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.geoURL+"?"+values.Encode(), &payload); err != nil {
		return weather.Coordinates{}, err
	}
	if len(payload.Results) == 0 {
		return weather.Coordinates{}, fmt.Errorf("%w: %s", weather.ErrCityNotFound, city)
	}

	hit := payload.Results[0]
	name := hit.Name
	if hit.Country != "" {
		name = fmt.Sprintf("%s, %s", hit.Name, hit.Country)
	}
	return weather.Coordinates{Lat: hit.Latitude, Lon: hit.Longitude, Name: name}, nil
}

func (p *OpenMeteoProvider) FetchHourly(ctx context.Context, coords weather.Coordinates) (weather.ForecastSeries, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", coords.Lat))
	values.Set("longitude", fmt.Sprintf("%f", coords.Lon))
	values.Set("hourly", "temperature_2m,relative_humidity_2m,uv_index")
	values.Set("daily", "sunrise,sunset")
	values.Set("timezone", "auto")
	values.Set("timeformat", "unixtime")
	values.Set("forecast_days", strconv.Itoa(p.days))

	var payload struct {
		Timezone string `json:"timezone"`
		Hourly   struct {
			Time        []int64   `json:"time"`
			Temperature []float64 `json:"temperature_2m"`
			Humidity    []float64 `json:"relative_humidity_2m"`
			UVIndex     []float64 `json:"uv_index"`
		} `json:"hourly"`
		Daily struct {
			Time    []int64 `json:"time"`
			Sunrise []int64 `json:"sunrise"`
			Sunset  []int64 `json:"sunset"`
		} `json:"daily"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return weather.ForecastSeries{}, err
	}

	loc, err := time.LoadLocation(payload.Timezone)
	if err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("openmeteo timezone %q: %w", payload.Timezone, err)
	}

	h := payload.Hourly
	if len(h.Temperature) != len(h.Time) || len(h.Humidity) != len(h.Time) || len(h.UVIndex) != len(h.Time) {
		return weather.ForecastSeries{}, fmt.Errorf("%w: openmeteo hourly arrays differ in length", weather.ErrInvalidSeries)
	}
	d := payload.Daily
	if len(d.Sunrise) != len(d.Time) || len(d.Sunset) != len(d.Time) {
		return weather.ForecastSeries{}, fmt.Errorf("%w: openmeteo daily arrays differ in length", weather.ErrInvalidSeries)
	}

	days := make(map[string]sunTimes, len(d.Time))
	for i, ts := range d.Time {
		days[time.Unix(ts, 0).In(loc).Format("2006-01-02")] = sunTimes{
			Sunrise: time.Unix(d.Sunrise[i], 0),
			Sunset:  time.Unix(d.Sunset[i], 0),
		}
	}

	obs := make([]weather.HourlyObservation, 0, len(h.Time))
	for i, ts := range h.Time {
		obs = append(obs, weather.HourlyObservation{
			Time:         time.Unix(ts, 0),
			TemperatureC: h.Temperature[i],
			HumidityPct:  h.Humidity[i],
			UVIndex:      h.UVIndex[i],
		})
	}

	return weather.ForecastSeries{
		City:         coords.Name,
		TimeZone:     payload.Timezone,
		Observations: attachSunTimes(p.name, obs, loc, days),
		Providers:    []string{p.name},
	}, nil
}

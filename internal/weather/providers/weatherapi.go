package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/moveguider/internal/weather"
)

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(cfg HTTPClientConfig, apiKey string, days int) *WeatherAPIProvider {
	if days <= 0 {
		days = 3
	}
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		days:    days,
		httpCfg: cfg,
		circuit: newCircuit("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) FetchHourly(ctx context.Context, coords weather.Coordinates) (weather.ForecastSeries, error) {
	if p.apiKey == "" {
		return weather.ForecastSeries{}, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts "city,country" or "lat,lon".
	values.Set("q", fmt.Sprintf("%f,%f", coords.Lat, coords.Lon))
	values.Set("days", strconv.Itoa(p.days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload struct {
		Location struct {
			TzID string `json:"tz_id"`
		} `json:"location"`
		Forecast struct {
			ForecastDay []struct {
				Date  string `json:"date"`
				Astro struct {
					Sunrise string `json:"sunrise"`
					Sunset  string `json:"sunset"`
				} `json:"astro"`
				Hour []struct {
					TimeEpoch int64   `json:"time_epoch"`
					TempC     float64 `json:"temp_c"`
					Humidity  float64 `json:"humidity"`
					UV        float64 `json:"uv"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return weather.ForecastSeries{}, err
	}

	loc, err := time.LoadLocation(payload.Location.TzID)
	if err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("weatherapi timezone %q: %w", payload.Location.TzID, err)
	}

	days := make(map[string]sunTimes, len(payload.Forecast.ForecastDay))
	var obs []weather.HourlyObservation
	for _, day := range payload.Forecast.ForecastDay {
		rise, errRise := parseAstroTime(day.Date, day.Astro.Sunrise, loc)
		set, errSet := parseAstroTime(day.Date, day.Astro.Sunset, loc)
		if errRise == nil && errSet == nil {
			days[day.Date] = sunTimes{Sunrise: rise, Sunset: set}
		}

		for _, h := range day.Hour {
			obs = append(obs, weather.HourlyObservation{
				Time:         time.Unix(h.TimeEpoch, 0),
				TemperatureC: h.TempC,
				HumidityPct:  h.Humidity,
				UVIndex:      h.UV,
			})
		}
	}

	return weather.ForecastSeries{
		City:         coords.Name,
		TimeZone:     payload.Location.TzID,
		Observations: attachSunTimes(p.name, obs, loc, days),
		Providers:    []string{p.name},
	}, nil
}

// parseAstroTime parses WeatherAPI astro values such as "06:45 AM" on the given date.
func parseAstroTime(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 03:04 PM", date+" "+strings.TrimSpace(clock), loc)
}

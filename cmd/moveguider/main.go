package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/i474232898/moveguider/internal/config"
	"github.com/i474232898/moveguider/internal/profile"
	"github.com/i474232898/moveguider/internal/store"
	"github.com/i474232898/moveguider/internal/weather"
	"github.com/i474232898/moveguider/internal/weather/providers"
)

var cfg *config.AppConfig

func main() {
	rootCmd := &cobra.Command{
		Use:           "moveguider",
		Short:         "Compare two cities for a move",
		Long:          "Fetches hourly forecasts for two cities and compares routine, workout windows, hydration and energy.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd(), compareCmd(), profileCmd(), checklistCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService wires the configured geocoders and forecast providers behind a
// shared cache. Sources that need a missing API key are skipped with a log line.
func newService() (*weather.Service, *store.ForecastCache, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	hc := providers.NewHTTPClientConfig(httpClient, cfg.MaxRetries)

	var (
		openWeather *providers.OpenWeatherProvider
		openMeteo   *providers.OpenMeteoProvider
	)
	ow := func() *providers.OpenWeatherProvider {
		if openWeather == nil {
			openWeather = providers.NewOpenWeatherProvider(hc, cfg.OpenWeatherAPIKey)
		}
		return openWeather
	}
	om := func() *providers.OpenMeteoProvider {
		if openMeteo == nil {
			openMeteo = providers.NewOpenMeteoProvider(hc, cfg.ForecastDays)
		}
		return openMeteo
	}

	var provs []weather.Provider
	for _, name := range cfg.Providers {
		switch name {
		case "openweather":
			if skipWithoutKey(name, "OPENWEATHER_API_KEY", cfg.OpenWeatherAPIKey) {
				continue
			}
			provs = append(provs, ow())
		case "weatherapi":
			if skipWithoutKey(name, "WEATHERAPI_API_KEY", cfg.WeatherAPIKey) {
				continue
			}
			provs = append(provs, providers.NewWeatherAPIProvider(hc, cfg.WeatherAPIKey, cfg.ForecastDays))
		case "openmeteo":
			provs = append(provs, om())
		default:
			return nil, nil, fmt.Errorf("unknown forecast provider %q", name)
		}
	}

	var geocoders []weather.Geocoder
	for _, name := range cfg.Geocoders {
		switch name {
		case "openweather":
			if skipWithoutKey(name, "OPENWEATHER_API_KEY", cfg.OpenWeatherAPIKey) {
				continue
			}
			geocoders = append(geocoders, ow())
		case "google":
			if skipWithoutKey(name, "GOOGLE_GEOCODING_API_KEY", cfg.GoogleAPIKey) {
				continue
			}
			geocoders = append(geocoders, providers.NewGoogleGeocoder(cfg.GoogleAPIKey))
		case "openmeteo":
			geocoders = append(geocoders, om())
		default:
			return nil, nil, fmt.Errorf("unknown geocoder %q", name)
		}
	}

	cache := store.NewForecastCache(cfg.CacheSize, cfg.CacheTTL)
	return weather.NewService(cache, geocoders, provs), cache, nil
}

func skipWithoutKey(source, env, key string) bool {
	if key != "" {
		return false
	}
	log.Printf("INFO: %s disabled: %s is not set", source, env)
	return true
}

// openProfiles seeds the default profile. A broken store is logged and left
// in place; planning falls back to defaults.
func openProfiles() *profile.FileStore {
	profiles := profile.NewFileStore(cfg.ProfilesPath)
	if err := profiles.EnsureDefault(); err != nil {
		log.Printf("ERROR: profile store %s: %v", profiles.Path(), err)
	}
	return profiles
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/moveguider/internal/planner"
	"github.com/i474232898/moveguider/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GoogleAPIKey      string

	// Forecast sources in priority order; the first successful one defines the timeline.
	Providers []string
	// Geocoders tried in order until one resolves the city.
	Geocoders []string

	HTTPTimeout  time.Duration
	MaxRetries   int
	ForecastDays int

	// Forecast cache retention.
	CacheTTL  time.Duration
	CacheSize int

	// RefreshInterval controls how often watched cities are refetched.
	RefreshInterval time.Duration
	WatchCities     []weather.Location

	HomeZone       *time.Location
	MidnightPolicy planner.MidnightPolicy
	ProfilesPath   string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_GEOCODING_API_KEY")

	cfg.Providers = splitList(getenvDefault("FORECAST_PROVIDERS", "openweather"))
	cfg.Geocoders = splitList(getenvDefault("GEOCODERS", "openweather,openmeteo"))
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("FORECAST_PROVIDERS must name at least one provider")
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	cfg.MaxRetries = getenvInt("MAX_RETRIES", 0)
	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 5)
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 14 {
		return nil, fmt.Errorf("FORECAST_DAYS must be between 1 and 14, got %d", cfg.ForecastDays)
	}

	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "1h"); err != nil {
		return nil, err
	}
	cfg.CacheSize = getenvInt("CACHE_SIZE", 256)

	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	cfg.WatchCities = loadWatchCities()

	zone := getenvDefault("HOME_TIMEZONE", "America/Phoenix")
	if cfg.HomeZone, err = time.LoadLocation(zone); err != nil {
		return nil, fmt.Errorf("invalid HOME_TIMEZONE: %w", err)
	}
	if cfg.MidnightPolicy, err = planner.ParseMidnightPolicy(getenvDefault("MIDNIGHT_POLICY", "clamp")); err != nil {
		return nil, fmt.Errorf("invalid MIDNIGHT_POLICY: %w", err)
	}
	cfg.ProfilesPath = getenvDefault("PROFILES_PATH", "data/user_profiles.json")

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// loadWatchCities reads WATCH_CITIES as a semicolon separated list so that
// names may keep their "City, Country" form.
func loadWatchCities() []weather.Location {
	var locs []weather.Location
	for _, city := range strings.Split(os.Getenv("WATCH_CITIES"), ";") {
		city = strings.TrimSpace(city)
		if city == "" {
			continue
		}
		locs = append(locs, weather.Location{City: city})
	}
	return locs
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

package store

import (
	"errors"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/i474232898/moveguider/internal/weather"
)

var (
	// ErrNotFound is returned when no series is cached for a given location.
	ErrNotFound = errors.New("no cached forecast for location")
)

// ForecastCache is a concurrency-safe, size and age bounded cache of forecast
// series keyed by city name.
type ForecastCache struct {
	cache *otter.Cache[string, weather.ForecastSeries]
	ttl   time.Duration
}

// NewForecastCache creates a cache holding at most maxEntries series, each
// expiring ttl after it was written.
// If maxEntries is <= 0 it defaults to 256; if ttl is <= 0 it defaults to one hour.
func NewForecastCache(maxEntries int, ttl time.Duration) *ForecastCache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	c := otter.Must(&otter.Options[string, weather.ForecastSeries]{
		MaximumSize:      maxEntries,
		ExpiryCalculator: otter.ExpiryWriting[string, weather.ForecastSeries](ttl),
	})

	return &ForecastCache{
		cache: c,
		ttl:   ttl,
	}
}

// SaveSeries stores the series for a location, replacing any previous entry.
func (s *ForecastCache) SaveSeries(loc weather.Location, series weather.ForecastSeries) {
	s.cache.Set(loc.Key(), series)
}

// GetSeries returns the cached series for a location.
func (s *ForecastCache) GetSeries(loc weather.Location) (weather.ForecastSeries, error) {
	series, ok := s.cache.GetIfPresent(loc.Key())
	if !ok {
		return weather.ForecastSeries{}, ErrNotFound
	}
	return series, nil
}

// Invalidate drops the cached series for a location.
func (s *ForecastCache) Invalidate(loc weather.Location) {
	s.cache.Invalidate(loc.Key())
}

// Len returns the approximate number of cached series.
func (s *ForecastCache) Len() int {
	return s.cache.EstimatedSize()
}

// TTL returns the configured entry lifetime.
func (s *ForecastCache) TTL() time.Duration {
	return s.ttl
}

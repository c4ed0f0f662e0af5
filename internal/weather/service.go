package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Service orchestrates geocoding, fetching from multiple providers and caching series.
type Service struct {
	store     Store
	geocoders []Geocoder
	providers []Provider
}

// NewService creates a new Service.
func NewService(store Store, geocoders []Geocoder, providers []Provider) *Service {
	return &Service{
		store:     store,
		geocoders: geocoders,
		providers: providers,
	}
}

// GetSeries returns the cached series for a city, fetching it when absent.
func (s *Service) GetSeries(ctx context.Context, city string) (ForecastSeries, error) {
	loc := Location{City: city}
	if loc.Key() == "" {
		return ForecastSeries{}, fmt.Errorf("%w: empty city name", ErrNoData)
	}

	if s.store != nil {
		if series, err := s.store.GetSeries(loc); err == nil {
			return series, nil
		}
	}
	return s.FetchAndStore(ctx, loc)
}

// FetchAndStore resolves the location, fetches all providers concurrently,
// aggregates the valid series and caches the result.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) (ForecastSeries, error) {
	log.Printf("DEBUG: FetchAndStore called for %s with %d providers", loc.Key(), len(s.providers))
	if len(s.providers) == 0 {
		log.Printf("ERROR: No providers available to fetch weather data for %s", loc.Key())
		return ForecastSeries{}, fmt.Errorf("%w: no weather providers configured", ErrNoData)
	}

	coords, err := s.resolve(ctx, loc.City)
	if err != nil {
		return ForecastSeries{}, fmt.Errorf("%w: %s: %v", ErrNoData, loc.City, err)
	}

	var (
		wg      sync.WaitGroup
		results = make([]*ForecastSeries, len(s.providers))
	)

	for i, p := range s.providers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			series, err := p.FetchHourly(ctx, coords)
			if err != nil {
				// Log and continue; other providers may still succeed.
				log.Printf("provider %s forecast failed for %s: %v", p.Name(), loc.Key(), err)
				return
			}
			if err := series.Validate(); err != nil {
				log.Printf("provider %s returned unusable series for %s: %v", p.Name(), loc.Key(), err)
				return
			}
			if len(series.Providers) == 0 {
				series.Providers = []string{p.Name()}
			}
			results[i] = &series
		}()
	}

	wg.Wait()

	valid := make([]ForecastSeries, 0, len(results))
	for _, r := range results {
		if r != nil {
			valid = append(valid, *r)
		}
	}

	if len(valid) == 0 {
		log.Printf("no successful forecast readings for %s", loc.Key())
		return ForecastSeries{}, fmt.Errorf("%w: %s", ErrNoData, loc.City)
	}

	series := AggregateSeries(loc.City, valid)
	if s.store != nil {
		s.store.SaveSeries(loc, series)
	}
	return series, nil
}

// Compare runs the two city pipelines in parallel. A failed city is reported
// in Errors and leaves its series nil.
func (s *Service) Compare(ctx context.Context, city1, city2 string) Comparison {
	cmp := Comparison{
		ID:    uuid.NewString(),
		City1: city1,
		City2: city2,
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)

	fetch := func(city string, dst **ForecastSeries) {
		defer wg.Done()
		if strings.TrimSpace(city) == "" {
			return
		}
		series, err := s.GetSeries(ctx, city)
		if err != nil {
			log.Printf("INFO: comparison %s: %v", cmp.ID, err)
			mu.Lock()
			errs = append(errs, err.Error())
			mu.Unlock()
			return
		}
		*dst = &series
	}

	wg.Add(2)
	go fetch(city1, &cmp.Series1)
	go fetch(city2, &cmp.Series2)
	wg.Wait()

	cmp.Errors = errs
	return cmp
}

// resolve tries each geocoder in order and returns the first hit.
func (s *Service) resolve(ctx context.Context, city string) (Coordinates, error) {
	if len(s.geocoders) == 0 {
		return Coordinates{}, errors.New("no geocoders configured")
	}

	var lastErr error
	for _, g := range s.geocoders {
		coords, err := g.Resolve(ctx, city)
		if err == nil {
			if coords.Name == "" {
				coords.Name = city
			}
			return coords, nil
		}
		log.Printf("geocoder %s failed for %q: %v", g.Name(), city, err)
		lastErr = err
	}
	return Coordinates{}, lastErr
}

package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/moveguider/internal/common"
	"github.com/i474232898/moveguider/internal/weather"
)

// geocoderMu guards the package-level API key of kelvins/geocoder.
var geocoderMu sync.Mutex

// GoogleGeocoder implements weather.Geocoder using the Google Geocoding API.
type GoogleGeocoder struct {
	name   string
	apiKey string
	lookup func(geocoder.Address) (geocoder.Location, error)
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		name:   "google",
		apiKey: apiKey,
		lookup: geocoder.Geocoding,
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

// Resolve geocodes the city. The underlying client has no context support,
// so ctx is only checked before the call.
func (g *GoogleGeocoder) Resolve(ctx context.Context, city string) (weather.Coordinates, error) {
	if g.apiKey == "" {
		return weather.Coordinates{}, fmt.Errorf("google geocoding api key is not configured")
	}
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}

	geocoderMu.Lock()
	geocoder.ApiKey = g.apiKey
	loc, err := g.lookup(geocoder.Address{City: city})
	geocoderMu.Unlock()

	if err != nil {
		if common.HasAny(err.Error(), "ZERO_RESULTS", "no results") {
			return weather.Coordinates{}, fmt.Errorf("%w: %s", weather.ErrCityNotFound, city)
		}
		return weather.Coordinates{}, fmt.Errorf("google geocoding: %w", err)
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return weather.Coordinates{}, fmt.Errorf("%w: %s", weather.ErrCityNotFound, city)
	}

	return weather.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude, Name: city}, nil
}

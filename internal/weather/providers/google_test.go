package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/moveguider/internal/weather"
)

func TestGoogleGeocoderResolve(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		loc     geocoder.Location
		err     error
		want    weather.Coordinates
		wantErr error
	}{
		{"hit", "k", geocoder.Location{Latitude: 48.85, Longitude: 2.35}, nil, weather.Coordinates{Lat: 48.85, Lon: 2.35, Name: "Paris"}, nil},
		{"zero results", "k", geocoder.Location{}, errors.New("ZERO_RESULTS"), weather.Coordinates{}, weather.ErrCityNotFound},
		{"null island", "k", geocoder.Location{}, nil, weather.Coordinates{}, weather.ErrCityNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGoogleGeocoder(tt.key)
			g.lookup = func(a geocoder.Address) (geocoder.Location, error) {
				if a.City != "Paris" {
					t.Errorf("address city = %q", a.City)
				}
				return tt.loc, tt.err
			}
			got, err := g.Resolve(context.Background(), "Paris")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Resolve() = %+v, %v", got, err)
			}
		})
	}
}

func TestGoogleGeocoderNeedsKey(t *testing.T) {
	g := NewGoogleGeocoder("")
	g.lookup = func(geocoder.Address) (geocoder.Location, error) {
		t.Fatal("lookup called without a key")
		return geocoder.Location{}, nil
	}
	if _, err := g.Resolve(context.Background(), "Paris"); err == nil {
		t.Error("expected error without api key")
	}
}

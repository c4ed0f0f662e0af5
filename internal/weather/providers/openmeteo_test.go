package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/i474232898/moveguider/internal/weather"
)

// 2024-07-15T00:00:00Z
const julyFifteenth = 1721001600

func openMeteoServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "Lisbon" {
			fmt.Fprint(w, `{}`)
			return
		}
		fmt.Fprint(w, `{"results":[{"name":"Lisbon","latitude":38.72,"longitude":-9.14,"country":"Portugal"}]}`)
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		var times, temps, hums, uvs []string
		for i := 0; i < 26; i++ {
			times = append(times, fmt.Sprint(julyFifteenth+i*3600))
			temps = append(temps, fmt.Sprint(18+i%10))
			hums = append(hums, "55")
			uvs = append(uvs, "1.5")
		}
		fmt.Fprintf(w, `{"timezone":"UTC","hourly":{"time":[%s],"temperature_2m":[%s],"relative_humidity_2m":[%s],"uv_index":[%s]},`+
			`"daily":{"time":[%d],"sunrise":[%d],"sunset":[%d]}}`,
			strings.Join(times, ","), strings.Join(temps, ","), strings.Join(hums, ","), strings.Join(uvs, ","),
			julyFifteenth, julyFifteenth+6*3600, julyFifteenth+20*3600)
	})
	return httptest.NewServer(mux)
}

func newTestOpenMeteo(srv *httptest.Server) *OpenMeteoProvider {
	p := NewOpenMeteoProvider(testConfig(srv, 0), 2)
	p.baseURL = srv.URL + "/forecast"
	p.geoURL = srv.URL + "/search"
	return p
}

func TestOpenMeteoResolve(t *testing.T) {
	srv := openMeteoServer(t)
	defer srv.Close()
	p := newTestOpenMeteo(srv)

	got, err := p.Resolve(context.Background(), "Lisbon, PT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Lisbon, Portugal" || got.Lat != 38.72 {
		t.Errorf("coords = %+v", got)
	}

	if _, err := p.Resolve(context.Background(), "Atlantis"); !errors.Is(err, weather.ErrCityNotFound) {
		t.Errorf("expected ErrCityNotFound, got %v", err)
	}
}

func TestOpenMeteoFetchHourly(t *testing.T) {
	srv := openMeteoServer(t)
	defer srv.Close()
	p := newTestOpenMeteo(srv)

	series, err := p.FetchHourly(context.Background(), weather.Coordinates{Lat: 38.72, Lon: -9.14, Name: "Lisbon"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Two hours of the next day have no sun times and are dropped.
	if series.Len() != 24 {
		t.Fatalf("got %d hours, want 24", series.Len())
	}
	if err := series.Validate(); err != nil {
		t.Errorf("series invalid: %v", err)
	}
	first := series.Observations[0]
	if first.TemperatureC != 18 || first.HumidityPct != 55 || first.UVIndex != 1.5 {
		t.Errorf("first hour = %+v", first)
	}
	if first.Sunrise.Hour() != 6 || first.Sunset.Hour() != 20 {
		t.Errorf("sun = %s / %s", first.Sunrise, first.Sunset)
	}
	if series.Providers[0] != "openmeteo" || series.City != "Lisbon" {
		t.Errorf("series meta = %s %v", series.City, series.Providers)
	}
}

func TestOpenMeteoRejectsRaggedArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"timezone":"UTC","hourly":{"time":[1,2],"temperature_2m":[1],"relative_humidity_2m":[1,2],"uv_index":[1,2]}}`)
	}))
	defer srv.Close()
	p := newTestOpenMeteo(srv)
	p.baseURL = srv.URL

	if _, err := p.FetchHourly(context.Background(), weather.Coordinates{}); !errors.Is(err, weather.ErrInvalidSeries) {
		t.Errorf("expected ErrInvalidSeries, got %v", err)
	}
}

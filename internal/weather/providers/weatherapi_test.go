package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/moveguider/internal/weather"
)

func TestWeatherAPIFetchHourly(t *testing.T) {
	loc, _ := time.LoadLocation("America/Phoenix")
	day := time.Date(2024, time.July, 15, 0, 0, 0, 0, loc)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "k" || r.URL.Query().Get("days") != "1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var hours []string
		for i := 0; i < 24; i++ {
			hours = append(hours, fmt.Sprintf(`{"time_epoch":%d,"temp_c":%d,"humidity":15,"uv":%d}`,
				day.Add(time.Duration(i)*time.Hour).Unix(), 30+i%10, i%11))
		}
		fmt.Fprintf(w, `{"location":{"tz_id":"America/Phoenix"},"forecast":{"forecastday":[`+
			`{"date":"2024-07-15","astro":{"sunrise":"05:27 AM","sunset":"07:41 PM"},"hour":[%s]}]}}`,
			strings.Join(hours, ","))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(testConfig(srv, 0), "k", 1)
	p.baseURL = srv.URL

	series, err := p.FetchHourly(context.Background(), weather.Coordinates{Lat: 33.45, Lon: -112.07, Name: "Phoenix"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Len() != 24 || series.TimeZone != "America/Phoenix" {
		t.Fatalf("got %d hours in %s", series.Len(), series.TimeZone)
	}
	if err := series.Validate(); err != nil {
		t.Errorf("series invalid: %v", err)
	}
	o := series.Observations[13]
	if o.TemperatureC != 33 || o.UVIndex != 2 || o.HumidityPct != 15 {
		t.Errorf("hour 13 = %+v", o)
	}
	if o.Sunrise.Format("15:04") != "05:27" || o.Sunset.Format("15:04") != "19:41" {
		t.Errorf("sun = %s / %s", o.Sunrise.Format("15:04"), o.Sunset.Format("15:04"))
	}
}

func TestParseAstroTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"06:45 AM", "06:45", false},
		{" 08:03 PM ", "20:03", false},
		{"12:00 AM", "00:00", false},
		{"No sunrise", "", true},
	}
	for _, tt := range tests {
		got, err := parseAstroTime("2024-07-15", tt.in, time.UTC)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAstroTime(%q) error = %v", tt.in, err)
			continue
		}
		if err == nil && got.Format("15:04") != tt.want {
			t.Errorf("parseAstroTime(%q) = %s, want %s", tt.in, got.Format("15:04"), tt.want)
		}
	}
}

package weather

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"
)

// hourly builds n consecutive hourly observations in zone tz starting at
// midnight on 2024-07-15, with sunrise at 06:00 and sunset at 20:00.
func hourly(t *testing.T, tz string, n int, temp float64) ForecastSeries {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatalf("load %s: %v", tz, err)
	}
	start := time.Date(2024, time.July, 15, 0, 0, 0, 0, loc)
	s := ForecastSeries{City: "Test", TimeZone: tz}
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		y, m, d := ts.Date()
		s.Observations = append(s.Observations, HourlyObservation{
			Time:         ts,
			TemperatureC: temp,
			HumidityPct:  40,
			UVIndex:      2,
			Sunrise:      time.Date(y, m, d, 6, 0, 0, 0, loc),
			Sunset:       time.Date(y, m, d, 20, 0, 0, 0, loc),
		})
	}
	return s
}

func TestValidate(t *testing.T) {
	ok := hourly(t, "Europe/London", 48, 18)
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid series rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(s *ForecastSeries)
	}{
		{"empty", func(s *ForecastSeries) { s.Observations = nil }},
		{"unknown zone", func(s *ForecastSeries) { s.TimeZone = "Mars/Olympus" }},
		{"duplicate timestamp", func(s *ForecastSeries) { s.Observations[3].Time = s.Observations[2].Time }},
		{"out of order", func(s *ForecastSeries) {
			s.Observations[4], s.Observations[5] = s.Observations[5], s.Observations[4]
		}},
		{"sunrise differs within day", func(s *ForecastSeries) {
			s.Observations[10].Sunrise = s.Observations[10].Sunrise.Add(time.Minute)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := hourly(t, "Europe/London", 48, 18)
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSeries) {
				t.Errorf("expected ErrInvalidSeries, got %v", err)
			}
		})
	}
}

func TestHeadAndLoc(t *testing.T) {
	s := hourly(t, "Asia/Tokyo", 30, 25)
	if got := s.Head(24).Len(); got != 24 {
		t.Errorf("Head(24).Len() = %d", got)
	}
	if got := s.Head(100).Len(); got != 30 {
		t.Errorf("Head(100).Len() = %d", got)
	}
	if s.Len() != 30 {
		t.Error("Head must not shrink the original series")
	}
	if got := s.Loc().String(); got != "Asia/Tokyo" {
		t.Errorf("Loc() = %s", got)
	}
	s.TimeZone = "Nowhere/Special"
	if s.Loc() != time.UTC {
		t.Error("unknown zone should fall back to UTC")
	}
}

func TestLocationKey(t *testing.T) {
	if got := (Location{City: "  London, GB "}).Key(); got != "london, gb" {
		t.Errorf("Key() = %q", got)
	}
}

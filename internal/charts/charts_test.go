package charts

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/moveguider/internal/planner"
	"github.com/i474232898/moveguider/internal/profile"
	"github.com/i474232898/moveguider/internal/report"
	"github.com/i474232898/moveguider/internal/weather"
)

func testReport(t *testing.T) report.Report {
	t.Helper()
	start := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	s := &weather.ForecastSeries{City: "Lisbon", TimeZone: "UTC"}
	for i := 0; i < 48; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		y, m, d := ts.Date()
		s.Observations = append(s.Observations, weather.HourlyObservation{
			Time:         ts,
			TemperatureC: 15 + float64(i%24)/2,
			HumidityPct:  60,
			UVIndex:      2,
			Sunrise:      time.Date(y, m, d, 6, 0, 0, 0, time.UTC),
			Sunset:       time.Date(y, m, d, 21, 0, 0, 0, time.UTC),
		})
	}

	cmp := weather.Comparison{ID: "x", City1: "Lisbon", Series1: s}
	return report.Build(cmp, profile.DefaultName, profile.Seed(), report.Options{
		Home: time.UTC,
		Ref:  planner.RefDate{Year: 2024, Month: time.July, Day: 15},
	})
}

func TestRenderIncludesEveryChart(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"Daily Routine",
		"Best Workout Times: Lisbon",
		"Cumulative Hydration",
		"Energy Curve",
		"Comfort Wheel",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestClock(t *testing.T) {
	tests := map[float64]string{0: "00:00", 6.5: "06:30", 23.99: "23:59", 24: "00:00"}
	for in, want := range tests {
		if got := clock(in); got != want {
			t.Errorf("clock(%v) = %s, want %s", in, got, want)
		}
	}
}

package report

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/i474232898/moveguider/internal/planner"
	"github.com/i474232898/moveguider/internal/profile"
	"github.com/i474232898/moveguider/internal/weather"
)

func series(t *testing.T, city, tz string, hours int) *weather.ForecastSeries {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2024, time.July, 15, 0, 0, 0, 0, loc)
	s := &weather.ForecastSeries{City: city, TimeZone: tz, Providers: []string{"fake"}}
	for i := 0; i < hours; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		y, m, d := ts.Date()
		s.Observations = append(s.Observations, weather.HourlyObservation{
			Time:         ts,
			TemperatureC: 18 + float64(i%12),
			HumidityPct:  55,
			UVIndex:      float64(i % 6),
			Sunrise:      time.Date(y, m, d, 6, 0, 0, 0, loc),
			Sunset:       time.Date(y, m, d, 20, 0, 0, 0, loc),
		})
	}
	return s
}

func testOptions(t *testing.T) Options {
	t.Helper()
	home, err := time.LoadLocation("America/Phoenix")
	if err != nil {
		t.Fatal(err)
	}
	return Options{
		Home: home,
		Ref:  planner.RefDate{Year: 2024, Month: time.July, Day: 15},
		Now:  time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildTwoCities(t *testing.T) {
	cmp := weather.Comparison{
		ID:      "cmp-1",
		City1:   "Phoenix, US",
		City2:   "London, GB",
		Series1: series(t, "Phoenix, US", "America/Phoenix", 72),
		Series2: series(t, "London, GB", "Europe/London", 72),
	}

	r := Build(cmp, profile.DefaultName, profile.Seed(), testOptions(t))

	if r.ID != "cmp-1" || r.ReferenceDate != "2024-07-15" || r.HomeZone != "America/Phoenix" {
		t.Errorf("header = %s %s %s", r.ID, r.ReferenceDate, r.HomeZone)
	}
	if len(r.Cities) != 2 || r.Cities[0].Short != "Phoenix" || r.Cities[1].Short != "London" {
		t.Fatalf("cities = %+v", r.Cities)
	}
	// Four seeded tasks for each city.
	if len(r.Routine) != 8 {
		t.Errorf("got %d projected tasks, want 8", len(r.Routine))
	}

	for i, c := range r.Cities {
		busy := planner.BusyFromTasks(r.Routine, i)
		if len(busy) != 4 {
			t.Errorf("%s: got %d busy intervals, want 4", c.Short, len(busy))
		}
		for _, w := range append(c.BestPerDay, c.Top...) {
			for _, b := range busy {
				if w.Overlaps(b) {
					t.Errorf("%s: window %s overlaps %s-%s", c.Short, w.Start.Format("15:04"), b.Start, b.End)
				}
			}
		}
		if len(c.Top) != planner.DefaultTopN {
			t.Errorf("%s: got %d top windows", c.Short, len(c.Top))
		}
		if len(c.Hydration) != 24 {
			t.Errorf("%s: got %d hydration rows", c.Short, len(c.Hydration))
		}
	}

	if len(r.Energy) != 96 {
		t.Errorf("got %d energy samples", len(r.Energy))
	}
	if got := len(r.Frames[planner.MetricTemperature]); got != 144 {
		t.Errorf("temperature frame has %d points, want 144", got)
	}
	if len(r.Sun) != 2 || len(r.Wheel) != 2 {
		t.Errorf("sun=%d wheel=%d, want 2 each", len(r.Sun), len(r.Wheel))
	}
}

func TestBuildWithMissingCity(t *testing.T) {
	cmp := weather.Comparison{
		ID:      "cmp-2",
		City1:   "Phoenix",
		City2:   "Atlantis",
		Series1: series(t, "Phoenix", "America/Phoenix", 24),
		Errors:  []string{"no weather data for city: Atlantis"},
	}
	prof := profile.Seed()
	prof.Routine = append(prof.Routine, planner.RoutineTask{Label: "Broken", Start: "25:00", End: "26:00"})

	r := Build(cmp, "Default", prof, testOptions(t))

	if len(r.Cities) != 1 {
		t.Fatalf("got %d cities, want 1", len(r.Cities))
	}
	if len(r.Errors) != 1 {
		t.Errorf("errors = %v", r.Errors)
	}
	if len(r.Skipped) != 1 {
		t.Errorf("skipped = %v, want the broken task", r.Skipped)
	}
	if len(r.Routine) != 4 {
		t.Errorf("got %d projected tasks, want 4", len(r.Routine))
	}
}

func TestBuildCitiesSharingShortName(t *testing.T) {
	cmp := weather.Comparison{
		ID:      "cmp-3",
		City1:   "Portland, OR",
		City2:   "Portland, ME",
		Series1: series(t, "Portland, OR", "America/Los_Angeles", 24),
		Series2: series(t, "Portland, ME", "America/New_York", 24),
	}
	prof := profile.Seed()
	prof.Routine = []planner.RoutineTask{{Label: "Work", Start: "09:00", End: "17:00"}}

	r := Build(cmp, "Work only", prof, testOptions(t))

	if len(r.Cities) != 2 || r.Cities[0].Short != r.Cities[1].Short {
		t.Fatalf("cities = %+v", r.Cities)
	}

	// Phoenix 09:00-17:00 is 09:00-17:00 in Oregon and 12:00-20:00 in Maine.
	want := []string{"09:00-17:00", "12:00-20:00"}
	for i := range r.Cities {
		busy := planner.BusyFromTasks(r.Routine, i)
		if len(busy) != 1 {
			t.Fatalf("city %d: got %d busy intervals, want 1", i, len(busy))
		}
		if got := busy[0].Start.String() + "-" + busy[0].End.String(); got != want[i] {
			t.Errorf("city %d: busy %s, want %s", i, got, want[i])
		}
	}

	oregon := r.Cities[0]
	var evening int
	for _, w := range planner.Candidates(oregon.Series, planner.BusyFromTasks(r.Routine, 0), DefaultWorkout) {
		if h := w.Start.Hour(); w.Start.Day() == 15 && h >= 17 && h < 20 {
			evening++
		}
	}
	if evening != 6 {
		t.Errorf("Oregon has %d evening candidates between 17:00 and 20:00, want 6", evening)
	}
}

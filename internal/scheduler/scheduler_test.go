package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/moveguider/internal/weather"
)

type recordingFetcher struct {
	mu    sync.Mutex
	seen  []string
	fails map[string]bool
}

func (f *recordingFetcher) FetchAndStore(_ context.Context, loc weather.Location) (weather.ForecastSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, loc.Key())
	if f.fails[loc.Key()] {
		return weather.ForecastSeries{}, errors.New("boom")
	}
	return weather.ForecastSeries{City: loc.City}, nil
}

func TestRefreshAllVisitsEveryCity(t *testing.T) {
	f := &recordingFetcher{fails: map[string]bool{"atlantis": true}}
	locs := []weather.Location{{City: "London"}, {City: "Atlantis"}, {City: "Phoenix"}}

	New(locs, time.Minute, f).RefreshAll()

	sort.Strings(f.seen)
	want := []string{"atlantis", "london", "phoenix"}
	if len(f.seen) != len(want) {
		t.Fatalf("seen = %v, want %v", f.seen, want)
	}
	for i := range want {
		if f.seen[i] != want[i] {
			t.Errorf("seen = %v, want %v", f.seen, want)
		}
	}
}

func TestStartWithoutCities(t *testing.T) {
	s := New(nil, time.Minute, &recordingFetcher{})
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}

package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/moveguider/internal/weather"
)

// Fetcher refreshes the cached forecast for one location.
type Fetcher interface {
	FetchAndStore(ctx context.Context, loc weather.Location) (weather.ForecastSeries, error)
}

// Scheduler periodically refreshes forecasts for watched cities so dashboard
// requests hit a warm cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	fetcher   Fetcher
	locations []weather.Location
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, fetcher Fetcher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		fetcher:   fetcher,
		locations: locations,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("INFO: scheduler: no watched cities configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RefreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RefreshAll refetches every watched city concurrently and waits for all of them.
func (s *Scheduler) RefreshAll() {
	log.Println("INFO: scheduler: refreshing watched cities")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if _, err := s.fetcher.FetchAndStore(ctx, loc); err != nil {
				log.Printf("ERROR: scheduler: refresh failed for %s: %v", loc.Key(), err)
			}
		}()
	}
	wg.Wait()
	log.Println("INFO: scheduler: refresh complete")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

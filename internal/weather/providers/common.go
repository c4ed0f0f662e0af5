package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/moveguider/internal/weather"
)

// BackoffConfig controls exponential backoff behaviour.
// MaxRetries of zero means a single round trip per call.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
}

// NewHTTPClientConfig returns the settings shared by every provider.
func NewHTTPClientConfig(client *http.Client, maxRetries int) HTTPClientConfig {
	return HTTPClientConfig{
		Client: client,
		Backoff: BackoffConfig{
			MaxRetries:      maxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
	}
}

var (
	errRateLimited   = errors.New("rate limited")
	errServerError   = errors.New("server error")
	errUnexpected    = errors.New("unexpected status code")
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
	errNotFound      = errors.New("resource not found")
)

func newCircuit(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// A 404 from a provider is an answer, not a failure of the provider.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNotFound)
		},
	})
}

// doRequestWithResilience executes the HTTP request behind a circuit breaker,
// retrying with exponential backoff when MaxRetries is positive.
func doRequestWithResilience(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}

		// Ensure the request obeys context cancellation.
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}
			resp.Body.Close()

			// Handle rate limiting and server errors explicitly.
			switch {
			case resp.StatusCode == http.StatusNotFound:
				return nil, errNotFound
			case resp.StatusCode == http.StatusTooManyRequests:
				return nil, errRateLimited
			case resp.StatusCode >= 500:
				return nil, errServerError
			default:
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// If circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		if errors.Is(err, errNotFound) {
			return nil, err
		}

		lastErr = err
		if attempt >= cfg.Backoff.MaxRetries {
			return nil, lastErr
		}

		delay := cfg.Backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > cfg.Backoff.MaxInterval && cfg.Backoff.MaxInterval > 0 {
			delay = cfg.Backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

// getJSON performs a resilient GET and decodes the body into dst.
func getJSON(ctx context.Context, cfg HTTPClientConfig, cb *gobreaker.CircuitBreaker, url string, dst any) error {
	resp, err := doRequestWithResilience(ctx, cfg, cb, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, http.NoBody)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// sunTimes is one calendar day's sunrise and sunset.
type sunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

// attachSunTimes fills Sunrise/Sunset on each observation from the day table
// keyed by local date. Hours whose day has no entry are dropped so the
// resulting series never carries a partial day.
func attachSunTimes(provider string, obs []weather.HourlyObservation, loc *time.Location, days map[string]sunTimes) []weather.HourlyObservation {
	out := make([]weather.HourlyObservation, 0, len(obs))
	dropped := 0
	for _, o := range obs {
		sun, ok := days[o.Time.In(loc).Format("2006-01-02")]
		if !ok {
			dropped++
			continue
		}
		o.Time = o.Time.In(loc)
		o.Sunrise = sun.Sunrise.In(loc)
		o.Sunset = sun.Sunset.In(loc)
		out = append(out, o)
	}
	if dropped > 0 {
		log.Printf("DEBUG: %s: dropped %d hours without sunrise/sunset data", provider, dropped)
	}
	return out
}

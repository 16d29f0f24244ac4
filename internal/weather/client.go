package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Source abstracts the current-conditions provider.
type Source interface {
	Current(ctx context.Context, lon, lat float64) (*Snapshot, error)
}

// BackoffConfig controls exponential backoff behaviour for provider calls.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// NewClient creates an OpenWeatherMap client around the shared HTTP client.
func NewClient(httpClient *http.Client, apiKey string, log *zap.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client:  httpClient,
		backoff: BackoffConfig{
			MaxRetries:      2,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
		log:     log,
	}
}

// mask blanks the API key out of s so request URLs and transport errors can
// be logged or returned safely.
func (c *Client) mask(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.apiKey, strings.Repeat("*", len(c.apiKey)))
}

// Current fetches the conditions at the given coordinates.
func (c *Client) Current(ctx context.Context, lon, lat float64) (*Snapshot, error) {
	if c.apiKey == "" {
		return nil, errors.New("openweathermap api key is not configured")
	}

	values := url.Values{}
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("APPID", c.apiKey)
	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())

	c.log.Info("GET: " + c.mask(u))

	resp, err := c.doRequest(ctx, u)
	if err != nil {
		return nil, errors.New(c.mask(err.Error()))
	}
	defer resp.Body.Close()

	var payload struct {
		Weather []struct {
			ID          int64  `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding openweathermap response: %w", err)
	}

	snap := &Snapshot{}
	for _, w := range payload.Weather {
		main, err := ParseCategory(w.Main)
		if err != nil {
			return nil, fmt.Errorf("openweathermap reported %w", err)
		}
		snap.Conditions = append(snap.Conditions, Condition{
			ID:          w.ID,
			Main:        main,
			Description: w.Description,
		})
	}
	return snap, nil
}

// doRequest executes the GET with retries, exponential backoff, and a
// circuit breaker.
func (c *Client) doRequest(ctx context.Context, u string) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, errors.New("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// An open circuit will not recover within this run.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= c.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := c.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.MaxInterval > 0 && delay > c.backoff.MaxInterval {
			delay = c.backoff.MaxInterval
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

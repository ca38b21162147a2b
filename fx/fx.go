// Package fx fetches the USD/KRW exchange rate from public JSON APIs. It is
// the degraded fallback of the synchronization cycle: when the price sheet
// is unreachable, the orchestrator still tries to keep the exchange rate
// current through these providers.
package fx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Provider is one rate endpoint: a URL and the jsonpath to the rate value
// inside its response.
type Provider struct {
	Name string
	URL  string
	Path string
}

// DefaultProviders are tried in order; the first that answers with a usable
// value wins.
func DefaultProviders() []Provider {
	return []Provider{
		{Name: "frankfurter", URL: "https://api.frankfurter.app/latest?from=USD&to=KRW", Path: "$.rates.KRW"},
		{Name: "exchangerate-api", URL: "https://api.exchangerate-api.com/v4/latest/USD", Path: "$.rates.KRW"},
	}
}

// requestTimeout bounds each provider call; these APIs answer fast or not
// at all.
const requestTimeout = 5 * time.Second

// Client queries the providers.
type Client struct {
	Providers []Provider
	// HTTPClient defaults to a plain client; the per-request timeout is
	// applied through the context.
	HTTPClient *http.Client
}

// New returns a client over the default providers with an hourly response
// cache; a fresh quote every few minutes buys nothing on a rate that the
// cycle only needs as a fallback.
func New() *Client {
	return &Client{
		Providers:  DefaultProviders(),
		HTTPClient: newHourlyCachingClient(),
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return new(http.Client)
}

// fetchOne queries a single provider and extracts the rate by key path.
func (c *Client) fetchOne(ctx context.Context, p Provider) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var jobj any
	if err := jwget(ctx, c.httpClient(), p.URL, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("%s: %w", p.Name, err)
	}

	jval, err := jsonpath.Get(p.Path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("%s: path %q: %w", p.Name, p.Path, err)
	}
	// jsonpath may answer with a 1-element list instead of the scalar
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("%s: path %q: not a number: %v", p.Name, p.Path, jval)
	}
	if val <= 0 || math.IsInf(val, 0) || math.IsNaN(val) {
		return math.NaN(), fmt.Errorf("%s: implausible rate %v", p.Name, val)
	}
	return val, nil
}

// Fetch tries each provider in order and returns the first usable rate,
// rounded to the nearest whole unit.
func (c *Client) Fetch(ctx context.Context) (float64, error) {
	var errs error
	for _, p := range c.Providers {
		rate, err := c.fetchOne(ctx, p)
		if err != nil {
			log.Printf("rate provider failed: %v", err)
			errs = errors.Join(errs, err)
			continue
		}
		return math.Round(rate), nil
	}
	if errs == nil {
		errs = fmt.Errorf("no rate providers configured")
	}
	return math.NaN(), fmt.Errorf("all rate providers failed: %w", errs)
}

// FetchWithRetry runs the provider chain up to 1+maxRetries times with fixed
// exponential backoff (1s, 2s, ...) between attempts.
func (c *Client) FetchWithRetry(ctx context.Context, maxRetries int) (float64, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return math.NaN(), ctx.Err()
			}
		}
		rate, err := c.Fetch(ctx)
		if err == nil {
			return rate, nil
		}
		lastErr = err
	}
	return math.NaN(), lastErr
}

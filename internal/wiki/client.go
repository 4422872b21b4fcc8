package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gp-tracker/internal/logger"
)

// DefaultBaseURL is the public price feed for the live game.
const DefaultBaseURL = "https://prices.runescape.wiki/api/v1/osrs"

// FetchError is returned when a feed endpoint could not be fetched after all
// retry attempts. Err holds the last underlying cause.
type FetchError struct {
	Endpoint string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.Endpoint, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client is an HTTP client for the price feed. The feed's usage policy
// requires every request to carry an identifying User-Agent, and the feed is
// rate limited, so failed requests back off before retrying.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	retry     RetryPolicy
	sleep     func(time.Duration) // injectable for tests
}

// NewClient creates a feed client. userAgent should be "app-name - contact"
// per the feed's usage policy.
func NewClient(baseURL, userAgent string, retry RetryPolicy) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if retry.MaxAttempts < 1 {
		retry = DefaultRetryPolicy()
	}
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   baseURL,
		userAgent: userAgent,
		retry:     retry,
		sleep:     time.Sleep,
	}
}

// getJSON fetches baseURL+path and decodes the body into dst, retrying
// transient failures per the client's retry policy. A non-2xx status or an
// undecodable body counts as transient.
func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		lastErr = c.getJSONOnce(ctx, path, dst)
		if lastErr == nil {
			return nil
		}
		if attempt < c.retry.MaxAttempts {
			wait := c.retry.Backoff(attempt)
			logger.Warn("Wiki", fmt.Sprintf("GET %s attempt %d/%d failed: %v (retrying in %s)",
				path, attempt, c.retry.MaxAttempts, lastErr, wait))
			c.sleep(wait)
		}
	}
	return &FetchError{Endpoint: path, Attempts: c.retry.MaxAttempts, Err: lastErr}
}

func (c *Client) getJSONOnce(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

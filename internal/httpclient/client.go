// Package httpclient provides the shared HTTP client used by all site
// adapters: browser-like User-Agent, sane timeouts, redirect following,
// and retry with exponential backoff on transient failures.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// UserAgent mirrors a desktop Chrome so the monitored sites serve the
// same markup a human visitor sees.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/124.0.0.0 Safari/537.36"

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Client wraps http.Client with retrying GET helpers.
type Client struct {
	log            *slog.Logger
	httpClient     *http.Client
	acceptLanguage string
	retryInterval  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithAcceptLanguage makes every request carry an Accept-Language header,
// so sites with language negotiation return the requested locale.
func WithAcceptLanguage(lang string) Option {
	return func(c *Client) { c.acceptLanguage = lang }
}

// WithHTTPClient swaps the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryInterval overrides the initial backoff interval (used by tests).
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) { c.retryInterval = d }
}

// New creates a Client with the default timeout.
func New(log *slog.Logger, opts ...Option) *Client {
	client := &Client{
		log:           log,
		httpClient:    &http.Client{Timeout: requestTimeout},
		retryInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Get fetches the URL and returns the response body. Transport errors and
// 5xx responses are retried up to three times with exponential backoff;
// other non-2xx statuses fail immediately.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte

	operation := func() error {
		data, err := c.getOnce(ctx, rawURL)
		if err != nil {
			return err
		}
		body = data

		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackoff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return body, nil
}

// GetJSON fetches the URL and decodes the response body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", rawURL, err)
	}

	return nil
}

func (c *Client) getOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request %s: %w", rawURL, err))
	}

	req.Header.Set("User-Agent", UserAgent)
	if c.acceptLanguage != "" {
		req.Header.Set("Accept-Language", c.acceptLanguage)
	}

	c.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}
	if res.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", rawURL, err)
	}

	return body, nil
}

func (c *Client) newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxInterval = 10 * time.Second

	return b
}

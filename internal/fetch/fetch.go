// Package fetch retrieves remote HTML pages over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults for Client.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "go-turndown/1.0 (+https://github.com/alnah/go-turndown)"
	DefaultMaxBytes  = 10 << 20
)

// Sentinel errors for fetching.
var (
	ErrHTTPStatus   = errors.New("unexpected HTTP status")
	ErrBodyTooLarge = errors.New("response body too large")
)

// Client fetches pages with a timeout, a user agent and a body size limit.
type Client struct {
	http      *http.Client
	userAgent string
	maxBytes  int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the whole-request timeout.
// Panics if d <= 0 (programmer error).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("fetch: WithTimeout duration must be positive")
	}
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header. Empty keeps the default.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBytes caps the response body size.
// Panics if n <= 0 (programmer error).
func WithMaxBytes(n int64) Option {
	if n <= 0 {
		panic("fetch: WithMaxBytes size must be positive")
	}
	return func(c *Client) {
		c.maxBytes = n
	}
}

// withHTTPClient replaces the underlying client (for tests).
func withHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a Client with sensible defaults.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the body of url. Non-2xx responses fail with
// ErrHTTPStatus; bodies above the size limit fail with ErrBodyTooLarge.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d for %s", ErrHTTPStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrBodyTooLarge, c.maxBytes, url)
	}

	return body, nil
}

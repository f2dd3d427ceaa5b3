package photometry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/banshee-data/agnite/internal/httputil"
	"github.com/banshee-data/agnite/internal/monitoring"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 2 // requests per second

	maxResponseBytes = 4 << 20
)

// ErrNoBaseURL is returned when the client has no service configured.
var ErrNoBaseURL = errors.New("photometry service not configured")

// Client fetches photometry from an HTTP service exposing
// GET <base>/photometry?object=<name>.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient httputil.HTTPClient
	limiter    *rate.Limiter
	metrics    *monitoring.Collector
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets the service base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout bounds each request, including the rate limiter wait.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRateLimit sets the process-wide request rate. Zero or less disables
// limiting.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithHTTPClient replaces the transport, mostly for tests.
func WithHTTPClient(hc httputil.HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics counts requests by result.
func WithMetrics(m *monitoring.Collector) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a photometry client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout:    DefaultTimeout,
		httpClient: httputil.NewStandardClient(nil),
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type photometryResponse struct {
	Object string  `json:"object"`
	Points []Point `json:"points"`
}

// Photometry implements Service.
func (c *Client) Photometry(ctx context.Context, req Request) (pts []Point, err error) {
	defer func() { c.metrics.ObservePhotometryRequest(err) }()

	if c.baseURL == "" {
		return nil, ErrNoBaseURL
	}
	if strings.TrimSpace(req.ObjectName) == "" {
		return nil, errors.New("photometry request without object name")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + "/photometry?" + url.Values{"object": {req.ObjectName}}.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		monitoring.Logf("photometry request for %q failed after %v: %v", req.ObjectName, time.Since(start), err)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photometry service error: status %d for object %s", resp.StatusCode, req.ObjectName)
	}

	var body photometryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return body.Points, nil
}

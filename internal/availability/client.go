// Package availability implements model.AvailabilityClient against the
// subdomain checker HTTP backend.
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fosscu/subdomain-checker/internal/model"
)

const checkPath = "/check-subdomain/"

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 64 * 1024

var (
	errMissingField = errors.New("response has no is_available field")
	errWrongType    = errors.New("is_available is not a boolean")
)

// Client talks to GET {endpoint}/check-subdomain/{name}.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a whole-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the given backend base URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		endpoint = model.DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("availability: parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("availability: endpoint %q must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("availability: endpoint %q has no host", endpoint)
	}

	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the normalized backend base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// CheckURL returns the request URL used for name.
func (c *Client) CheckURL(name string) string {
	return c.endpoint + checkPath + url.PathEscape(name)
}

// CheckAvailability implements model.AvailabilityClient.
func (c *Client) CheckAvailability(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	available, status, err := c.check(ctx, name)
	if err != nil {
		c.logger.Debug("availability check failed",
			"name", name,
			"status", status,
			"elapsed", time.Since(start),
			"error", err,
		)
		return false, &model.TransportError{Name: name, StatusCode: status, Err: err}
	}
	c.logger.Debug("availability check",
		"name", name,
		"available", available,
		"elapsed", time.Since(start),
	)
	return available, nil
}

func (c *Client) check(ctx context.Context, name string) (bool, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.CheckURL(name), nil)
	if err != nil {
		return false, 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return false, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body)))
	}

	available, err := decodeAnswer(body)
	if err != nil {
		return false, resp.StatusCode, err
	}
	return available, resp.StatusCode, nil
}

// decodeAnswer extracts is_available, rejecting a missing or non-boolean field.
func decodeAnswer(body []byte) (bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	field, ok := raw["is_available"]
	if !ok {
		return false, errMissingField
	}
	if string(field) == "null" {
		return false, errWrongType
	}
	var available bool
	if err := json.Unmarshal(field, &available); err != nil {
		return false, errWrongType
	}
	return available, nil
}

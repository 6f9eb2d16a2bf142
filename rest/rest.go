// Package rest delivers enhanced-API REST calls: one HTTP request per call,
// parameters encoded under the repeated-key convention, no retry.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Error is a failed REST call: a non-2xx response from the endpoint.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rest: HTTP %d: %s", e.Status, e.Body)
}

// Client issues REST calls against an enhanced-API base URL.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a REST client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a single GET request to path with the encoded parameters and
// returns the raw JSON body. Failures surface as *Error or a wrapped
// transport error; no retry is performed at this layer.
func (c *Client) Get(ctx context.Context, path string, params map[string]interface{}) (json.RawMessage, error) {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if query := EncodeParams(params).Encode(); query != "" {
		u += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("rest: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("rest call", zap.String("path", path))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rest: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rest: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Body: truncate(body)}
	}

	return body, nil
}

// truncate bounds an error body so it stays readable in messages.
func truncate(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}

// Package content fetches profile sections from the remote portfolio API.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Zachkp/folio/internal/logging"
	"go.uber.org/zap"
)

// SecretHeader carries the pre-shared API secret.
const SecretHeader = "secret-key"

// Fetcher returns the decoded JSON body of an endpoint, or nil when the
// request could not be completed.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) any
}

// Client issues single-attempt GET requests against a fixed origin.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSecret sets the value of the secret-key header. An empty secret omits the header.
func WithSecret(secret string) Option {
	return func(c *Client) { c.secret = secret }
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs GET {baseURL}{endpoint}. Transport errors, non-2xx statuses
// and undecodable bodies are logged and reported as nil.
func (c *Client) Fetch(ctx context.Context, endpoint string) any {
	logger := logging.FromContext(ctx, c.logger).With(zap.String("endpoint", endpoint))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		logger.Warn("fetch error", zap.Error(err))
		return nil
	}
	return body
}

func (c *Client) get(ctx context.Context, endpoint string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.secret != "" {
		req.Header.Set(SecretHeader, c.secret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return body, nil
}

// Package yfinance is a client for Yahoo Finance's public market data
// endpoints. It normalizes the chart, quoteSummary, options, and search
// responses into tabular form suitable for serving over MCP.
package yfinance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tickertape-ai/tickertape/internal"
)

const (
	defaultBaseURL   = "https://query2.finance.yahoo.com"
	defaultLookupURL = "https://markets.businessinsider.com"

	// Yahoo rejects requests without a browser User-Agent.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client fetches market data from Yahoo Finance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	lookupURL  string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL overrides the Yahoo Finance API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLookupURL overrides the base URL of the ISIN lookup service.
func WithLookupURL(lookupURL string) ClientOption {
	return func(c *Client) {
		c.lookupURL = lookupURL
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Yahoo Finance client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
		lookupURL:  defaultLookupURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Copy the client before wrapping its transport so the caller's
	// instance is left untouched.
	httpClient := *c.httpClient
	httpClient.Transport = &internal.HeaderTransport{
		Base: c.httpClient.Transport,
		Headers: http.Header{
			"User-Agent": []string{userAgent},
		},
	}
	c.httpClient = &httpClient

	return c
}

// fetch performs a GET request and returns the raw response body.
func (c *Client) fetch(ctx context.Context, base, path string, query url.Values) ([]byte, error) {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching", "url", u)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if apiErr := envelopeError(body); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	return body, nil
}

// getJSON performs a GET request and decodes the JSON response into v.
func (c *Client) getJSON(ctx context.Context, base, path string, query url.Values, v any) error {
	body, err := c.fetch(ctx, base, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// envelopeError extracts an APIError from an error response body. Yahoo
// wraps each endpoint's payload in a named envelope ("chart", "quoteSummary",
// "optionChain", "finance") that carries the error object on failure.
func envelopeError(body []byte) *APIError {
	var envelopes map[string]struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelopes); err != nil {
		return nil
	}
	for _, envelope := range envelopes {
		if envelope.Error != nil && (envelope.Error.Code != "" || envelope.Error.Description != "") {
			return envelope.Error
		}
	}
	return nil
}

// location resolves an exchange timezone name, falling back to UTC.
func location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

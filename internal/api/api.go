package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"crypto-signal-analyzer/internal/logger"
)

// Client is a thin HTTP client shared by the market, fetch and analysis
// clients. It carries a base URL, default headers and a fixed timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	useLogging bool
}

// ClientOption configures the API client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL sets the base URL prepended to every request path
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHeader sets a default header for all requests
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogging enables request/response debug logging
func WithLogging(enabled bool) ClientOption {
	return func(c *Client) {
		c.useLogging = enabled
	}
}

// NewClient creates a new API client with the given options
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Response is the raw outcome of one request.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get issues a GET request against path (appended to the base URL).
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

// PostJSON issues a POST request with body JSON-encoded.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	return c.PostJSONWithHeaders(ctx, path, body, nil)
}

// PostJSONWithHeaders issues a POST with additional per-request headers,
// e.g. a per-call bearer credential.
func (c *Client) PostJSONWithHeaders(ctx context.Context, path string, body any, headers map[string]string) (*Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, jsonBody, headers)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, extraHeaders map[string]string) (*Response, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}
	for key, value := range extraHeaders {
		httpReq.Header.Set(key, value)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.useLogging {
		logger.Debug(ctx, "HTTP request", "method", method, "url", url)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if c.useLogging {
			logger.ErrorWithErr(ctx, "HTTP request failed", err, "method", method, "url", url)
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.useLogging {
		logger.Debug(ctx, "HTTP response", "method", method, "url", url,
			"status", httpResp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
	}, nil
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

package fetch

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"crypto-signal-analyzer/internal/api"
	"crypto-signal-analyzer/internal/logger"
	"crypto-signal-analyzer/internal/store"
	"crypto-signal-analyzer/internal/trace"
)

// FetchError reports a failed URL content retrieval.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client retrieves raw page content for user-supplied URLs through a
// read-through proxy, with an optional direct-fetch fallback.
type Client struct {
	api     *api.Client
	direct  *DirectFetcher
	extract bool
}

// NewClient creates a content fetch client from config.
func NewClient(cfg *store.Config) *Client {
	timeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
	c := &Client{
		api: api.NewClient(
			api.WithBaseURL(cfg.Fetch.ProxyEndpoint),
			api.WithTimeout(timeout),
			api.WithLogging(logger.IsDebugEnabled()),
		),
		extract: cfg.Fetch.ExtractArticle,
	}
	if cfg.Fetch.DirectFallback {
		c.direct = NewDirectFetcher(timeout)
	}
	return c
}

// FetchURLContent retrieves the raw content behind target via the proxy and
// returns the proxy's contents field verbatim. No sanitization or extraction
// happens here.
func (c *Client) FetchURLContent(ctx context.Context, target string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "fetch.FetchURLContent")
	defer span.End()

	resp, err := c.api.Get(ctx, "?url="+url.QueryEscape(target))
	if err != nil {
		if c.direct != nil {
			logger.Warn(ctx, "Proxy fetch failed, falling back to direct fetch", "url", target, "error", err)
			return c.direct.Fetch(ctx, target)
		}
		return "", &FetchError{URL: target, Err: err}
	}
	if !resp.OK() {
		return "", &FetchError{URL: target, Status: resp.StatusCode}
	}

	var r struct {
		Contents string `json:"contents"`
	}
	if err := resp.DecodeJSON(&r); err != nil {
		return "", &FetchError{URL: target, Err: err}
	}
	return r.Contents, nil
}

// FetchArticle retrieves target and, when article extraction is enabled,
// reduces the raw markup to paragraph text before handing it to the model.
// Falls back to the verbatim content when nothing extractable is found.
func (c *Client) FetchArticle(ctx context.Context, target string) (string, error) {
	contents, err := c.FetchURLContent(ctx, target)
	if err != nil {
		return "", err
	}
	if !c.extract {
		return contents, nil
	}
	if text := ExtractArticleText(contents); text != "" {
		return text, nil
	}
	return contents, nil
}

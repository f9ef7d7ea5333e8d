package fetch

import (
	"context"
	"time"

	"github.com/gocolly/colly/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DirectFetcher retrieves a page without the proxy. Used as a fallback when
// the proxy is unreachable; a native client has no cross-origin restriction.
type DirectFetcher struct {
	timeout time.Duration
}

// NewDirectFetcher creates a direct page fetcher
func NewDirectFetcher(timeout time.Duration) *DirectFetcher {
	return &DirectFetcher{timeout: timeout}
}

// Fetch retrieves the raw response body for target.
func (d *DirectFetcher) Fetch(ctx context.Context, target string) (string, error) {
	c := colly.NewCollector()
	c.SetRequestTimeout(d.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	var body string
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = &FetchError{URL: target, Status: status, Err: err}
	})

	if err := c.Visit(target); err != nil {
		return "", &FetchError{URL: target, Err: err}
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	return body, nil
}

// Package index fetches and parses the upstream channel listing.
//
// The Client performs the single bounded HTTP GET, Parse turns the raw
// payload into ordered entries while tolerating malformed rows, and
// Load composes fetch, parse, and sanitization into one catalog
// snapshot. Load is the refresh function the cache invokes.
package index

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	errs "github.com/snowdex/snowdex/pkg/errors"
	"github.com/snowdex/snowdex/pkg/observability"
)

// maxBodySize caps the listing download at 8 MiB.
const maxBodySize = 8 << 20

// userAgent identifies snowdex to the upstream server.
const userAgent = "snowdex/1.0 (+https://github.com/snowdex/snowdex)"

// Client fetches the raw channel listing: one GET per fetch with a
// bounded timeout and no retries, so failures surface quickly instead
// of hanging.
type Client struct {
	http *http.Client
	url  string
}

// NewClient creates a Client for the given listing URL.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		url:  url,
	}
}

// URL returns the listing URL this client fetches.
func (c *Client) URL() string {
	return c.url
}

// Fetch performs one GET against the listing URL and returns the raw
// body. Failures map onto the fetch taxonomy: FETCH_TIMEOUT when the
// deadline expires, FETCH_NETWORK for transport errors, FETCH_STATUS
// for any non-200 response.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	observability.Fetch().OnFetchStart(ctx, c.url)
	start := time.Now()

	body, status, err := c.fetch(ctx)
	observability.Fetch().OnFetchComplete(ctx, c.url, status, len(body), time.Since(start), err)
	return body, err
}

// fetch returns the body and the HTTP status, zero when the request
// never produced a response.
func (c *Client) fetch(ctx context.Context) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, 0, errs.Wrap(errs.ErrCodeFetchNetwork, err, "building request for %s", c.url)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, 0, errs.Wrap(errs.ErrCodeFetchTimeout, err, "fetching %s timed out", c.url)
		}
		return nil, 0, errs.Wrap(errs.ErrCodeFetchNetwork, err, "fetching %s", c.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, errs.Wrap(errs.ErrCodeFetchStatus,
			&errs.StatusError{Status: resp.StatusCode}, "fetching %s", c.url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if isTimeout(err) {
			return nil, resp.StatusCode, errs.Wrap(errs.ErrCodeFetchTimeout, err, "reading %s timed out", c.url)
		}
		return nil, resp.StatusCode, errs.Wrap(errs.ErrCodeFetchNetwork, err, "reading %s", c.url)
	}
	return body, resp.StatusCode, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

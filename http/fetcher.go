// Package http provides a plain-HTTP modelcat.Fetcher for pages that
// render without JavaScript.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/modelcat"
)

// DefaultTimeout is used when no HTTP client is supplied.
const DefaultTimeout = 20 * time.Second

const userAgent = "modelfetch/1.0"

// Ensure Fetcher implements modelcat.Fetcher at compile time.
var _ modelcat.Fetcher = (*Fetcher)(nil)

// Fetcher fetches pages over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher. A nil client gets a default one with
// DefaultTimeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch performs a GET request and returns the response body as a string.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", modelcat.Errorf(modelcat.EINVALID, "invalid url %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", modelcat.Errorf(modelcat.EUNAVAILABLE, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", modelcat.Errorf(modelcat.EUNAVAILABLE, "GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", modelcat.Errorf(modelcat.EUNAVAILABLE, "GET %s: reading body: %v", url, err)
	}
	return string(body), nil
}

// Close implements modelcat.Fetcher. It is a no-op.
func (f *Fetcher) Close() error {
	return nil
}

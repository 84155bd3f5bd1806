package modelcat

import "context"

// Fetcher retrieves raw markup from a URL. Implementations hide the
// transport: plain HTTP for static pages, a browser for pages that render
// their listings with JavaScript.
type Fetcher interface {
	// Fetch returns the page markup for the URL.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases transport resources.
	Close() error
}

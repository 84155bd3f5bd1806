// Package rod fetches rendered HTML from listing pages using Chrome
// browser automation.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/modelcat"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements modelcat.Fetcher at compile time.
var _ modelcat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using a Chrome browser.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser      *rod.Browser
	launcher     *launcher.Launcher
	attached     bool
	timeout      time.Duration
	waitSelector string
}

// Option configures a Fetcher.
type Option func(*config)

type config struct {
	controlURL   string
	timeout      time.Duration
	waitSelector string
}

// WithControlURL attaches to an already-running browser over the given
// DevTools control URL instead of launching one. The attached browser is
// left running on Close.
func WithControlURL(u string) Option {
	return func(c *config) { c.controlURL = u }
}

// WithFetchTimeout bounds each Fetch call. Zero keeps DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithWaitSelector makes Fetch wait for the given CSS selector after the
// page loads. Listing content on script-heavy pages often appears well
// after the load event. A selector that never shows up does not fail the
// fetch; the page is captured as-is.
func WithWaitSelector(css string) Option {
	return func(c *config) { c.waitSelector = css }
}

// NewFetcher creates a Fetcher. Without WithControlURL it launches a
// headless Chrome browser. Close must be called when the Fetcher is no
// longer needed.
//
// Returns an error if Chrome/Chromium cannot be found, launched, or
// connected to.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := &config{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.controlURL != "" {
		browser := rod.New().ControlURL(cfg.controlURL)
		if err := browser.Connect(); err != nil {
			return nil, fmt.Errorf("connecting to browser at %s: %w", cfg.controlURL, err)
		}
		return &Fetcher{
			browser:      browser,
			attached:     true,
			timeout:      cfg.timeout,
			waitSelector: cfg.waitSelector,
		}, nil
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Fetcher{
		browser:      browser,
		launcher:     l,
		timeout:      cfg.timeout,
		waitSelector: cfg.waitSelector,
	}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.waitSelector != "" {
		// Best effort; capture whatever rendered if the selector never
		// shows up.
		wait := page.Timeout(f.timeout / 2)
		_, _ = wait.Element(f.waitSelector)
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	return html, nil
}

// Close releases browser resources. An attached browser is left running.
func (f *Fetcher) Close() error {
	if f.attached {
		return nil
	}
	err := f.browser.Close()
	if f.launcher != nil {
		f.launcher.Kill()
	}
	return err
}

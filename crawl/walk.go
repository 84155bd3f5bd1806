// Package crawl walks the numbered listing pages of a source. Pages are
// fetched concurrently under a rate limit but handed back strictly in page
// order, so downstream extraction and deduplication stay deterministic.
package crawl

import (
	"context"
	"net/url"
	"strconv"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/modelcat"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Defaults for page walking.
const (
	DefaultRPS         = 1.0
	DefaultConcurrency = 2

	// Sizing for the seen-URL filter. A false positive only skips a
	// refetch of a page URL; it never affects record identity.
	seenCapacity = 100_000
	seenFPRate   = 0.001
)

// PageURLs builds the numbered page URLs for a source in walk order. A
// single-page source is returned as-is; paginated sources get the page
// number appended as a query parameter starting from 1.
func PageURLs(source *modelcat.Source) ([]string, error) {
	if source.PageCount() == 1 {
		return []string{source.URL}, nil
	}

	u, err := url.Parse(source.URL)
	if err != nil {
		return nil, modelcat.Errorf(modelcat.EINVALID, "source %q: invalid URL: %v", source.Name, err)
	}

	param := source.PageParam
	if param == "" {
		param = "page"
	}

	urls := make([]string, 0, source.PageCount())
	for page := 1; page <= source.PageCount(); page++ {
		q := u.Query()
		q.Set(param, strconv.Itoa(page))
		v := *u
		v.RawQuery = q.Encode()
		urls = append(urls, v.String())
	}
	return urls, nil
}

// Walker fetches listing pages through a modelcat.Fetcher.
type Walker struct {
	fetcher     modelcat.Fetcher
	limiter     *rate.Limiter
	seen        *bloom.BloomFilter
	concurrency int
}

// Option configures a Walker.
type Option func(*Walker)

// WithRateLimit sets the fetch rate in requests per second, burst of one.
func WithRateLimit(rps float64) Option {
	return func(w *Walker) { w.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithConcurrency sets how many pages may be in flight at once.
func WithConcurrency(n int) Option {
	return func(w *Walker) { w.concurrency = n }
}

// NewWalker creates a Walker around the fetcher.
func NewWalker(fetcher modelcat.Fetcher, opts ...Option) *Walker {
	w := &Walker{
		fetcher:     fetcher,
		limiter:     rate.NewLimiter(rate.Limit(DefaultRPS), 1),
		seen:        bloom.NewWithEstimates(seenCapacity, seenFPRate),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk fetches the URLs and returns their markup in the same order. A URL
// already visited during this Walker's lifetime, or one that fails to
// fetch, yields an empty string: an empty page produces zero fragments
// downstream, which is the non-fatal shape of every source-level failure.
// Only context cancellation aborts the walk.
func (w *Walker) Walk(ctx context.Context, urls []string) ([]string, error) {
	pages := make([]string, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for i, pageURL := range urls {
		if w.seen.TestString(pageURL) {
			continue
		}
		w.seen.AddString(pageURL)

		i, pageURL := i, pageURL
		g.Go(func() error {
			if err := w.limiter.Wait(gctx); err != nil {
				return err
			}
			markup, err := w.fetcher.Fetch(gctx, pageURL)
			if err != nil {
				// Absorbed: the caller sees an empty page.
				return nil
			}
			pages[i] = markup
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

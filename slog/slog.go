// Package slog provides logging decorators for modelcat services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/modelcat"
)

var _ modelcat.CatalogExtractor = (*CatalogExtractor)(nil)

// CatalogExtractor wraps a modelcat.CatalogExtractor with logging.
type CatalogExtractor struct {
	next   modelcat.CatalogExtractor
	source string
	logger *slog.Logger
}

// NewCatalogExtractor creates a logging decorator around next. The source
// name is attached to every log line.
func NewCatalogExtractor(next modelcat.CatalogExtractor, source string, logger *slog.Logger) *CatalogExtractor {
	return &CatalogExtractor{next: next, source: source, logger: logger}
}

func (e *CatalogExtractor) ExtractAll(markup string) ([]*modelcat.Record, error) {
	begin := time.Now()
	records, err := e.next.ExtractAll(markup)
	if err != nil {
		e.logger.Error("extraction failed",
			"source", e.source,
			"error", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	e.logger.Info("extracted records",
		"source", e.source,
		"count", len(records),
		"duration", time.Since(begin),
	)
	return records, nil
}

var _ modelcat.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a modelcat.Fetcher with logging.
type Fetcher struct {
	next   modelcat.Fetcher
	logger *slog.Logger
}

// NewFetcher creates a logging decorator around next.
func NewFetcher(next modelcat.Fetcher, logger *slog.Logger) *Fetcher {
	return &Fetcher{next: next, logger: logger}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	page, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("fetch failed",
			"url", url,
			"error", err,
			"duration", time.Since(begin),
		)
		return "", err
	}
	f.logger.Debug("fetched page",
		"url", url,
		"bytes", len(page),
		"duration", time.Since(begin),
	)
	return page, nil
}

func (f *Fetcher) Close() error {
	return f.next.Close()
}

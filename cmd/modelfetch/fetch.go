package main

import (
	"context"
	stdslog "log/slog"

	"github.com/fwojciec/modelcat"
	"github.com/fwojciec/modelcat/crawl"
	"github.com/fwojciec/modelcat/etree"
	"github.com/fwojciec/modelcat/goquery"
)

// fetchSource walks a source's pages, extracts and deduplicates records,
// writes the catalog file and, when a record service is configured,
// records the run.
func fetchSource(ctx context.Context, deps *Dependencies, src *modelcat.Source, fetcher modelcat.Fetcher, extractor modelcat.CatalogExtractor) error {
	urls, err := crawl.PageURLs(src)
	if err != nil {
		return err
	}

	walker := crawl.NewWalker(fetcher, crawl.WithRateLimit(deps.RPS))
	pages, err := walker.Walk(ctx, urls)
	if err != nil {
		return err
	}

	var models []*modelcat.Record
	for i, page := range pages {
		if page == "" {
			continue
		}
		records, err := extractor.ExtractAll(page)
		if err != nil {
			// A page that fails to parse costs its records, not the run.
			deps.Logger.Warn("page extraction failed",
				"source", src.Name,
				"url", urls[i],
				"error", modelcat.ErrorMessage(err),
			)
			continue
		}
		for _, r := range records {
			if deps.Deduper.Admit(r) {
				models = append(models, r)
			}
		}
	}

	catalog := &modelcat.Catalog{
		ModelsPage: src.ModelsPage,
		APIKeyPage: src.APIKeyPage,
		Models:     models,
	}
	if err := deps.Writer.WriteCatalog(ctx, src.Name, catalog); err != nil {
		return err
	}

	if deps.Records != nil {
		runID, err := deps.Records.CreateRun(ctx, src.Name)
		if err != nil {
			return err
		}
		for _, r := range models {
			if err := deps.Records.CreateRecord(ctx, runID, r); err != nil {
				return err
			}
		}
	}

	deps.Logger.Info("catalog written", "source", src.Name, "models", len(models))
	return nil
}

// buildExtractor assembles the extraction strategy for a source kind.
func buildExtractor(src *modelcat.Source, logger *stdslog.Logger) (modelcat.CatalogExtractor, error) {
	switch src.Kind {
	case modelcat.KindCards:
		var tagger *modelcat.Tagger
		if len(src.Vocabulary) > 0 {
			var err error
			tagger, err = modelcat.NewTagger(src.Vocabulary)
			if err != nil {
				return nil, err
			}
		}
		pattern, err := goquery.NewPatternSplitter(goquery.DefaultCardPattern)
		if err != nil {
			return nil, err
		}
		var opts []goquery.CardOption
		if src.BaseURL != "" {
			opts = append(opts, goquery.WithBaseURL(src.BaseURL))
		}
		if src.PathPrefix != "" {
			opts = append(opts, goquery.WithPathPrefix(src.PathPrefix))
		}
		return &modelcat.Pipeline{
			Splitter:  &goquery.AutoSplitter{Token: src.Separator, Pattern: pattern},
			Extractor: goquery.NewCardExtractor(tagger, opts...),
			Logger:    logger,
		}, nil
	case modelcat.KindTable:
		return goquery.NewTableExtractor(src.HeaderMarker), nil
	case modelcat.KindFeed:
		return etree.NewFeedExtractor(), nil
	default:
		return nil, modelcat.Errorf(modelcat.EINVALID, "source %q: unknown kind %q", src.Name, src.Kind)
	}
}

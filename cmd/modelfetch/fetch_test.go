package main

import (
	"context"
	"io"
	stdslog "log/slog"
	"testing"

	"github.com/fwojciec/modelcat"
	"github.com/fwojciec/modelcat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(writer modelcat.CatalogWriter) *Dependencies {
	return &Dependencies{
		Logger:  stdslog.New(stdslog.NewTextHandler(io.Discard, nil)),
		Writer:  writer,
		Deduper: modelcat.NewDeduper(),
		RPS:     1000,
	}
}

func TestFetchSource(t *testing.T) {
	t.Parallel()

	t.Run("writes a deduplicated catalog from all pages", func(t *testing.T) {
		t.Parallel()

		src := &modelcat.Source{
			Name:       "modelscope",
			Kind:       modelcat.KindCards,
			URL:        "https://example.com/models",
			Pages:      2,
			ModelsPage: "https://example.com/models",
			APIKeyPage: "https://example.com/keys",
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "page:" + url, nil
			},
		}
		extractor := &mock.CatalogExtractor{
			ExtractAllFn: func(markup string) ([]*modelcat.Record, error) {
				// Both pages list the same flagship model.
				return []*modelcat.Record{
					{ID: "Qwen/Qwen3-VL", Name: "qwen"},
					{ID: "acme/" + markup[len(markup)-1:], Name: "acme"},
				}, nil
			},
		}

		var written *modelcat.Catalog
		writer := &mock.CatalogWriter{
			WriteCatalogFn: func(_ context.Context, name string, catalog *modelcat.Catalog) error {
				assert.Equal(t, "modelscope", name)
				written = catalog
				return nil
			},
		}

		deps := testDeps(writer)
		require.NoError(t, fetchSource(context.Background(), deps, src, fetcher, extractor))

		require.NotNil(t, written)
		assert.Equal(t, "https://example.com/models", written.ModelsPage)
		assert.Equal(t, "https://example.com/keys", written.APIKeyPage)

		// Qwen/Qwen3-VL once, plus one distinct acme record per page.
		require.Len(t, written.Models, 3)
		assert.Equal(t, "Qwen/Qwen3-VL", written.Models[0].ID)
	})

	t.Run("a failing page costs its records, not the run", func(t *testing.T) {
		t.Parallel()

		src := &modelcat.Source{Name: "s", Kind: modelcat.KindCards, URL: "https://example.com/models", Pages: 2}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url[len(url)-1] == '1' {
					return "", modelcat.Errorf(modelcat.EUNAVAILABLE, "down")
				}
				return "<html>", nil
			},
		}
		extractor := &mock.CatalogExtractor{
			ExtractAllFn: func(markup string) ([]*modelcat.Record, error) {
				return []*modelcat.Record{{ID: "a/b", Name: "b"}}, nil
			},
		}

		var written *modelcat.Catalog
		writer := &mock.CatalogWriter{
			WriteCatalogFn: func(_ context.Context, _ string, catalog *modelcat.Catalog) error {
				written = catalog
				return nil
			},
		}

		deps := testDeps(writer)
		require.NoError(t, fetchSource(context.Background(), deps, src, fetcher, extractor))
		require.NotNil(t, written)
		assert.Len(t, written.Models, 1)
	})

	t.Run("extraction failure on one page is absorbed", func(t *testing.T) {
		t.Parallel()

		src := &modelcat.Source{Name: "s", Kind: modelcat.KindCards, URL: "https://example.com/models", Pages: 2}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) { return "page:" + url, nil },
		}
		calls := 0
		extractor := &mock.CatalogExtractor{
			ExtractAllFn: func(markup string) ([]*modelcat.Record, error) {
				calls++
				if calls == 1 {
					return nil, modelcat.Errorf(modelcat.EINVALID, "bad page")
				}
				return []*modelcat.Record{{ID: "a/b", Name: "b"}}, nil
			},
		}

		var written *modelcat.Catalog
		writer := &mock.CatalogWriter{
			WriteCatalogFn: func(_ context.Context, _ string, catalog *modelcat.Catalog) error {
				written = catalog
				return nil
			},
		}

		deps := testDeps(writer)
		require.NoError(t, fetchSource(context.Background(), deps, src, fetcher, extractor))
		require.NotNil(t, written)
		assert.Len(t, written.Models, 1)
	})

	t.Run("records the run when a record service is configured", func(t *testing.T) {
		t.Parallel()

		src := &modelcat.Source{Name: "s", Kind: modelcat.KindCards, URL: "https://example.com/models"}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) { return "<html>", nil },
		}
		extractor := &mock.CatalogExtractor{
			ExtractAllFn: func(markup string) ([]*modelcat.Record, error) {
				return []*modelcat.Record{{ID: "a/b", Name: "b"}, {ID: "c/d", Name: "d"}}, nil
			},
		}
		writer := &mock.CatalogWriter{
			WriteCatalogFn: func(_ context.Context, _ string, _ *modelcat.Catalog) error { return nil },
		}

		var stored []*modelcat.Record
		deps := testDeps(writer)
		deps.Records = &mock.RecordService{
			CreateRunFn: func(_ context.Context, source string) (string, error) {
				assert.Equal(t, "s", source)
				return "run-1", nil
			},
			CreateRecordFn: func(_ context.Context, runID string, record *modelcat.Record) error {
				assert.Equal(t, "run-1", runID)
				stored = append(stored, record)
				return nil
			},
		}

		require.NoError(t, fetchSource(context.Background(), deps, src, fetcher, extractor))
		assert.Len(t, stored, 2)
	})

	t.Run("the deduper spans sources", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) { return "<html>", nil },
		}
		extractor := &mock.CatalogExtractor{
			ExtractAllFn: func(markup string) ([]*modelcat.Record, error) {
				return []*modelcat.Record{{ID: "Qwen/Qwen3-VL", Name: "qwen"}}, nil
			},
		}

		var catalogs []*modelcat.Catalog
		writer := &mock.CatalogWriter{
			WriteCatalogFn: func(_ context.Context, _ string, catalog *modelcat.Catalog) error {
				catalogs = append(catalogs, catalog)
				return nil
			},
		}

		deps := testDeps(writer)
		first := &modelcat.Source{Name: "a", Kind: modelcat.KindCards, URL: "https://a.example.com"}
		second := &modelcat.Source{Name: "b", Kind: modelcat.KindCards, URL: "https://b.example.com"}

		require.NoError(t, fetchSource(context.Background(), deps, first, fetcher, extractor))
		require.NoError(t, fetchSource(context.Background(), deps, second, fetcher, extractor))

		require.Len(t, catalogs, 2)
		assert.Len(t, catalogs[0].Models, 1)
		assert.Empty(t, catalogs[1].Models)
	})
}

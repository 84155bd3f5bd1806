package mock

import (
	"context"

	"github.com/fwojciec/modelcat"
)

var _ modelcat.CatalogWriter = (*CatalogWriter)(nil)

// CatalogWriter is a mock implementation of modelcat.CatalogWriter.
type CatalogWriter struct {
	WriteCatalogFn func(ctx context.Context, name string, catalog *modelcat.Catalog) error
}

func (w *CatalogWriter) WriteCatalog(ctx context.Context, name string, catalog *modelcat.Catalog) error {
	return w.WriteCatalogFn(ctx, name, catalog)
}

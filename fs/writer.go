// Package fs persists catalogs as JSON files.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/modelcat"
)

// Ensure Writer implements modelcat.CatalogWriter at compile time.
var _ modelcat.CatalogWriter = (*Writer)(nil)

// Writer writes one JSON file per source catalog into a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteCatalog writes the catalog envelope to <baseDir>/<name>.json.
// Output is indented UTF-8 with HTML escaping disabled, so CJK names and
// URLs stay readable.
func (w *Writer) WriteCatalog(_ context.Context, name string, catalog *modelcat.Catalog) error {
	if name == "" {
		return modelcat.Errorf(modelcat.EINVALID, "catalog name required")
	}

	// An empty catalog still serializes with a models array.
	out := *catalog
	if out.Models == nil {
		out.Models = []*modelcat.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.baseDir, name+".json"), buf.Bytes(), 0644)
}

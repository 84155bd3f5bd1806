package modelcat

import "context"

// Catalog is the output envelope for one source: the records in first-seen
// order plus the source's navigation links.
type Catalog struct {
	ModelsPage string    `json:"models_page,omitempty"`
	APIKeyPage string    `json:"api_key_page,omitempty"`
	Models     []*Record `json:"models"`
}

// CatalogWriter persists a finished catalog to an external sink.
type CatalogWriter interface {
	WriteCatalog(ctx context.Context, name string, catalog *Catalog) error
}

// RecordService stores records per extraction run so catalogs can be
// compared across runs.
type RecordService interface {
	// CreateRun opens a new run for a source and returns its ID.
	CreateRun(ctx context.Context, source string) (string, error)

	// CreateRecord stores a record under a run.
	CreateRecord(ctx context.Context, runID string, record *Record) error

	// FindRecordsByRun returns a run's records in insertion order.
	// Returns ENOTFOUND if the run does not exist.
	FindRecordsByRun(ctx context.Context, runID string) ([]*Record, error)
}

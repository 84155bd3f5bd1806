package modelcat

import "log/slog"

// Ensure Pipeline implements CatalogExtractor at compile time.
var _ CatalogExtractor = (*Pipeline)(nil)

// Pipeline assembles records from a raw markup blob: split into fragments,
// extract fields per fragment, discard fragments with no identity, fill
// the missing half of id/name. Fragment failures are logged and skipped so
// one malformed card never aborts a page.
type Pipeline struct {
	Splitter  Splitter
	Extractor Extractor

	// Logger receives fragment-level extraction failures. Optional.
	Logger *slog.Logger
}

// ExtractAll implements CatalogExtractor. The returned records are in
// document order and not yet deduplicated.
func (p *Pipeline) ExtractAll(markup string) ([]*Record, error) {
	fragments := p.Splitter.Split(markup)
	records := make([]*Record, 0, len(fragments))

	for i, fragment := range fragments {
		record, err := p.Extractor.Extract(fragment)
		if err != nil {
			if p.Logger != nil {
				p.Logger.Warn("skipping fragment", "index", i, "error", err)
			}
			continue
		}
		if err := record.Validate(); err != nil {
			// No identity at all; nothing worth keeping.
			continue
		}
		record.FillIdentity()
		records = append(records, record)
	}

	return records, nil
}

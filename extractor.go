package modelcat

// Splitter produces candidate record fragments from a raw markup blob.
// Fragments are returned in document order; an input with no fragments
// yields an empty slice, never an error.
type Splitter interface {
	Split(markup string) []string
}

// Extractor extracts a partial record from one markup fragment. Individual
// field failures are absorbed: a missing field is simply left zero. The
// returned record may lack both identifier and name, in which case the
// assembler discards it.
type Extractor interface {
	Extract(fragment string) (*Record, error)
}

// CatalogExtractor turns a full raw markup blob (a listing page, a docs
// page, or a feed) into assembled records in document order. Records have
// passed identity fill but not deduplication, which is scoped to a whole
// run rather than one blob.
type CatalogExtractor interface {
	ExtractAll(markup string) ([]*Record, error)
}

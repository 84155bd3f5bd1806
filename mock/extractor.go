package mock

import "github.com/fwojciec/modelcat"

var _ modelcat.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of modelcat.Extractor.
type Extractor struct {
	ExtractFn func(fragment string) (*modelcat.Record, error)
}

func (e *Extractor) Extract(fragment string) (*modelcat.Record, error) {
	return e.ExtractFn(fragment)
}

var _ modelcat.CatalogExtractor = (*CatalogExtractor)(nil)

// CatalogExtractor is a mock implementation of modelcat.CatalogExtractor.
type CatalogExtractor struct {
	ExtractAllFn func(markup string) ([]*modelcat.Record, error)
}

func (e *CatalogExtractor) ExtractAll(markup string) ([]*modelcat.Record, error) {
	return e.ExtractAllFn(markup)
}

var _ modelcat.Splitter = (*Splitter)(nil)

// Splitter is a mock implementation of modelcat.Splitter.
type Splitter struct {
	SplitFn func(markup string) []string
}

func (s *Splitter) Split(markup string) []string {
	return s.SplitFn(markup)
}

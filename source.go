package modelcat

// SourceKind selects the extraction strategy for a source.
type SourceKind string

// Source kinds.
const (
	// KindCards extracts listing-card fragments from a rendered page.
	KindCards SourceKind = "cards"

	// KindTable extracts rows from marker-identified documentation tables.
	KindTable SourceKind = "table"

	// KindFeed extracts items from an RSS/XML feed.
	KindFeed SourceKind = "feed"
)

// Source describes one model listing to extract. Sources are declared in
// configuration and are immutable at run time.
type Source struct {
	Name string     `json:"name" yaml:"name"`
	Kind SourceKind `json:"kind" yaml:"kind"`

	// URL is the listing URL. For paginated sources the page number is
	// appended as a query parameter.
	URL string `json:"url" yaml:"url"`

	// Pages is the number of listing pages to walk; zero means one.
	Pages int `json:"pages,omitempty" yaml:"pages,omitempty"`

	// PageParam is the pagination query parameter, "page" by default.
	PageParam string `json:"pageParam,omitempty" yaml:"pageParam,omitempty"`

	// Browser selects the rendering fetcher over plain HTTP.
	Browser bool `json:"browser,omitempty" yaml:"browser,omitempty"`

	// WaitSelector is a CSS selector the browser fetcher waits for before
	// capturing the page.
	WaitSelector string `json:"waitSelector,omitempty" yaml:"waitSelector,omitempty"`

	// BaseURL absolutizes relative card links, e.g. "https://modelscope.cn".
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`

	// PathPrefix is the known link prefix whose tail is the record
	// identifier, e.g. "/models/".
	PathPrefix string `json:"pathPrefix,omitempty" yaml:"pathPrefix,omitempty"`

	// Separator is an explicit fragment delimiter token. When empty, card
	// sources fall back to pattern splitting.
	Separator string `json:"separator,omitempty" yaml:"separator,omitempty"`

	// HeaderMarker identifies the documentation table to extract by a
	// header cell it must contain.
	HeaderMarker string `json:"headerMarker,omitempty" yaml:"headerMarker,omitempty"`

	// Vocabulary is the priority-ordered category vocabulary for the
	// keyword tagger, most specific phrase first.
	Vocabulary Vocabulary `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`

	// ModelsPage and APIKeyPage are carried into the catalog envelope.
	ModelsPage string `json:"modelsPage,omitempty" yaml:"modelsPage,omitempty"`
	APIKeyPage string `json:"apiKeyPage,omitempty" yaml:"apiKeyPage,omitempty"`
}

// Validate returns an error if the source is not usable.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "source %q: URL required", s.Name)
	}
	switch s.Kind {
	case KindCards, KindTable, KindFeed:
	default:
		return Errorf(EINVALID, "source %q: unknown kind %q", s.Name, s.Kind)
	}
	if err := s.Vocabulary.Validate(); err != nil {
		return err
	}
	return nil
}

// PageCount returns the number of pages to walk, at least one.
func (s *Source) PageCount() int {
	if s.Pages < 1 {
		return 1
	}
	return s.Pages
}

// Config is the set of sources processed by one run, in order.
type Config struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Validate validates every source and rejects duplicate names.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return Errorf(EINVALID, "at least one source required")
	}
	seen := make(map[string]struct{}, len(c.Sources))
	for i := range c.Sources {
		s := &c.Sources[i]
		if err := s.Validate(); err != nil {
			return err
		}
		if _, ok := seen[s.Name]; ok {
			return Errorf(EINVALID, "duplicate source name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/modelcat"
)

// Defaults for ModelScope-style listing cards.
const (
	DefaultTrackingParam  = "c4"
	DefaultTitleFontClass = "ms-title-font"

	// namePrefixWindow bounds how deep into the flattened text the script
	// fallback looks for a display name, in characters.
	namePrefixWindow = 200
)

// DefaultMarkers are the icon tokens that anchor metric extraction on
// ModelScope cards.
var DefaultMarkers = Markers{
	Time:      "icon-maasshijian-time-line1",
	Downloads: "icon-maasa-zhuangtai216x16",
	Stars:     "icon-maasa-shoucangzhuangtai216x16",
}

// Markers holds the icon tokens that precede each metric value inside a
// card. A metric with an empty marker is not extracted.
type Markers struct {
	Time      string
	Downloads string
	Stars     string
}

// cjkRunRe matches one run of CJK ideographs, the script range used for
// the display-name fallback.
var cjkRunRe = regexp.MustCompile(`[\x{4e00}-\x{9fff}]+`)

// Ensure CardExtractor implements modelcat.Extractor at compile time.
var _ modelcat.Extractor = (*CardExtractor)(nil)

// CardExtractor extracts a record from one listing-card fragment. Each
// logical field has an ordered list of rules tried in priority order; the
// first non-empty result wins and later rules never overwrite it. A rule
// that finds nothing fails silently, independently of the other fields.
type CardExtractor struct {
	baseURL        string
	pathPrefix     string
	titleFontClass string
	tagger         *modelcat.Tagger
	stoplist       modelcat.Vocabulary

	trackRe     *regexp.Regexp
	timeRes     []*regexp.Regexp
	downloadRes []*regexp.Regexp
	starRes     []*regexp.Regexp
}

// CardOption configures a CardExtractor.
type CardOption func(*cardConfig)

type cardConfig struct {
	baseURL        string
	pathPrefix     string
	trackingParam  string
	titleFontClass string
	markers        Markers
}

// WithBaseURL sets the URL prepended to relative card links.
func WithBaseURL(u string) CardOption {
	return func(c *cardConfig) { c.baseURL = u }
}

// WithPathPrefix sets the known link prefix whose tail is the record
// identifier, e.g. "/models/".
func WithPathPrefix(p string) CardOption {
	return func(c *cardConfig) { c.pathPrefix = p }
}

// WithTrackingParam sets the tracking-attribute parameter that carries the
// URL-escaped "Organization/Model" value.
func WithTrackingParam(p string) CardOption {
	return func(c *cardConfig) { c.trackingParam = p }
}

// WithTitleFontClass sets the class fragment identifying the title-styled
// inline element.
func WithTitleFontClass(class string) CardOption {
	return func(c *cardConfig) { c.titleFontClass = class }
}

// WithMarkers sets the icon tokens anchoring metric extraction.
func WithMarkers(m Markers) CardOption {
	return func(c *cardConfig) { c.markers = m }
}

// NewCardExtractor creates a CardExtractor. The tagger classifies the
// card's flattened text into a task category and its vocabulary doubles as
// the stoplist for the display-name fallback; a nil tagger disables both.
func NewCardExtractor(tagger *modelcat.Tagger, opts ...CardOption) *CardExtractor {
	cfg := &cardConfig{
		trackingParam:  DefaultTrackingParam,
		titleFontClass: DefaultTitleFontClass,
		markers:        DefaultMarkers,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	e := &CardExtractor{
		baseURL:        cfg.baseURL,
		pathPrefix:     cfg.pathPrefix,
		titleFontClass: cfg.titleFontClass,
		tagger:         tagger,
		trackRe:        regexp.MustCompile(regexp.QuoteMeta(cfg.trackingParam) + `=([^&"']+)`),
		timeRes:        iconPatterns(cfg.markers.Time),
		downloadRes:    iconPatterns(cfg.markers.Downloads),
		starRes:        iconPatterns(cfg.markers.Stars),
	}
	if tagger != nil {
		e.stoplist = tagger.Vocabulary()
	}
	return e
}

// fragment carries the parsed views of one card shared by all field rules.
type fragment struct {
	raw  string
	doc  *goquery.Document
	flat string
}

// Extract implements modelcat.Extractor.
func (e *CardExtractor) Extract(raw string) (*modelcat.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, modelcat.Errorf(modelcat.EINVALID, "failed to parse fragment: %v", err)
	}

	f := &fragment{raw: raw, doc: doc, flat: Flatten(raw)}
	r := &modelcat.Record{}

	// Identity rules fill link/id/organization; a later rule only fills
	// what an earlier rule left empty.
	for _, rule := range []func(*fragment, *modelcat.Record){
		e.identityFromHref,
		e.identityFromTracking,
	} {
		rule(f, r)
	}

	for _, rule := range []func(*fragment, *modelcat.Record) string{
		e.nameFromTitleFont,
		e.nameFromTitleSpan,
		e.nameFromTitleBlock,
		e.nameFromScript,
		e.nameFromIdentifier,
	} {
		if name := rule(f, r); name != "" {
			r.Name = name
			break
		}
	}

	r.Description = selectionText(f.doc.Find(`div[class*="desc"]`).First())

	r.PubDate = captureAfterIcon(f.raw, e.timeRes)
	if v, ok := modelcat.ParseMagnitude(captureAfterIcon(f.raw, e.downloadRes)); ok {
		r.Downloads = v
	}
	if v, ok := modelcat.ParseMagnitude(captureAfterIcon(f.raw, e.starRes)); ok {
		r.Stars = v
	}

	if e.tagger != nil {
		r.TaskType = e.tagger.Tag(f.flat)
	}

	return r, nil
}

// identityFromHref reads the card's anchor href. A relative link under the
// known path prefix is rewritten to an absolute URL and its tail becomes
// the identifier, with the first path segment as the organization. Other
// links are kept as-is without yielding an identifier.
func (e *CardExtractor) identityFromHref(f *fragment, r *modelcat.Record) {
	href, ok := f.doc.Find("a[href]").First().Attr("href")
	if !ok {
		return
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return
	}

	if e.pathPrefix != "" && strings.HasPrefix(href, e.pathPrefix) {
		if r.Link == "" {
			r.Link = e.baseURL + href
		}
		id := strings.TrimPrefix(href, e.pathPrefix)
		if r.ID == "" {
			r.ID = id
		}
		if r.Organization == "" {
			if org, _, ok := strings.Cut(id, "/"); ok {
				r.Organization = org
			}
		}
		return
	}
	if r.Link == "" {
		r.Link = href
	}
}

// identityFromTracking recovers organization and identifier from the
// URL-escaped tracking parameter when the href rule found none.
func (e *CardExtractor) identityFromTracking(f *fragment, r *modelcat.Record) {
	m := e.trackRe.FindStringSubmatch(f.raw)
	if m == nil {
		return
	}
	value, err := url.QueryUnescape(m[1])
	if err != nil {
		return
	}
	org, _, ok := strings.Cut(value, "/")
	if !ok {
		return
	}
	if r.Organization == "" {
		r.Organization = org
	}
	if r.ID == "" {
		r.ID = value
	}
}

func (e *CardExtractor) nameFromTitleFont(f *fragment, _ *modelcat.Record) string {
	return selectionText(f.doc.Find(`span[class*="` + e.titleFontClass + `"]`).First())
}

func (e *CardExtractor) nameFromTitleSpan(f *fragment, _ *modelcat.Record) string {
	return selectionText(f.doc.Find(`span[class*="title"]`).First())
}

func (e *CardExtractor) nameFromTitleBlock(f *fragment, _ *modelcat.Record) string {
	return selectionText(f.doc.Find(`div[class*="title"]`).First())
}

// nameFromScript falls back to the first CJK phrase near the start of the
// flattened text that is not a category phrase and is at least two
// characters long.
func (e *CardExtractor) nameFromScript(f *fragment, _ *modelcat.Record) string {
	for _, loc := range cjkRunRe.FindAllStringIndex(f.flat, -1) {
		if utf8.RuneCountInString(f.flat[:loc[0]]) >= namePrefixWindow {
			break
		}
		candidate := f.flat[loc[0]:loc[1]]
		if utf8.RuneCountInString(candidate) < 2 {
			continue
		}
		if e.stoplist.Contains(candidate) {
			continue
		}
		return candidate
	}
	return ""
}

// nameFromIdentifier is the final fallback: the last path segment of the
// identifier.
func (e *CardExtractor) nameFromIdentifier(_ *fragment, r *modelcat.Record) string {
	if _, tail, ok := strings.Cut(r.ID, "/"); ok {
		if i := strings.LastIndex(tail, "/"); i >= 0 {
			return tail[i+1:]
		}
		return tail
	}
	return ""
}

// iconPatterns compiles the two adjacency variants tried for a metric
// marker: strict (the value immediately follows the icon container) and
// loose (intervening markup allowed between icon parts). Tried in order,
// first match wins.
func iconPatterns(marker string) []*regexp.Regexp {
	if marker == "" {
		return nil
	}
	q := regexp.QuoteMeta(marker)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?is)xlink:href="#` + q + `"[^>]*>.*?</use></svg></span>([^<]+)</div>`),
		regexp.MustCompile(`(?is)#` + q + `"[^>]*>.*?</use>.*?</svg>.*?</span>([^<]+)</div>`),
	}
}

// captureAfterIcon returns the trimmed text following the icon container,
// trying each pattern variant in order.
func captureAfterIcon(raw string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// selectionText returns the selection's text with tags stripped and
// whitespace collapsed.
func selectionText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

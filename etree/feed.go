// Package etree extracts model-catalog records from RSS/XML feeds. Feeds
// arrive either as raw XML or wrapped in the HTML page a browser renders
// around them; both shapes are handled.
package etree

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/modelcat"
)

// Title patterns tried in order: "Provider: Name (Id)" then "Name (Id)".
var (
	providerTitleRe = regexp.MustCompile(`^([^:]+):\s*(.+?)\s*\(([^)]+)\)$`)
	nameTitleRe     = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)$`)
)

var (
	cdataRe  = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	markupRe = regexp.MustCompile(`<[^>]+>`)
	preRe    = regexp.MustCompile(`(?is)<pre[^>]*>(.*?)</pre>`)
	rssRe    = regexp.MustCompile(`(?s)<\?xml.*?</rss>`)
	bodyRe   = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)

	// guidIDRe recovers an "org/model" identifier from a guid of the form
	// "org/model-date".
	guidIDRe = regexp.MustCompile(`[^/]+/[^/-]+`)
)

// Ensure FeedExtractor implements modelcat.CatalogExtractor at compile time.
var _ modelcat.CatalogExtractor = (*FeedExtractor)(nil)

// FeedExtractor extracts one record per feed item. The item title is
// parsed by two ordered pattern attempts; when neither matches, the whole
// title becomes the name and the identifier is recovered from the link or
// the guid instead.
type FeedExtractor struct{}

// NewFeedExtractor creates a FeedExtractor.
func NewFeedExtractor() *FeedExtractor {
	return &FeedExtractor{}
}

// ExtractAll implements modelcat.CatalogExtractor.
func (e *FeedExtractor) ExtractAll(markup string) ([]*modelcat.Record, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(unwrapXML(markup)); err != nil {
		return nil, modelcat.Errorf(modelcat.EINVALID, "failed to parse feed: %v", err)
	}

	items := doc.FindElements("//item")
	records := make([]*modelcat.Record, 0, len(items))
	for _, item := range items {
		r := recordFromItem(item)
		if r.Validate() != nil {
			continue
		}
		r.FillIdentity()
		records = append(records, r)
	}
	return records, nil
}

// unwrapXML recovers the feed XML from whatever the collaborator captured:
// a <pre>-wrapped, entity-escaped rendering, a full HTML page embedding
// the document, or the raw XML itself.
func unwrapXML(markup string) string {
	if m := preRe.FindStringSubmatch(markup); m != nil {
		return html.UnescapeString(m[1])
	}
	if m := rssRe.FindString(markup); m != "" {
		return m
	}
	if m := bodyRe.FindStringSubmatch(markup); m != nil {
		return html.UnescapeString(m[1])
	}
	return markup
}

func recordFromItem(item *etree.Element) *modelcat.Record {
	r := &modelcat.Record{}

	title := unwrapCDATA(elementText(item, "title"))
	if m := providerTitleRe.FindStringSubmatch(title); m != nil {
		r.Provider = strings.TrimSpace(m[1])
		r.Name = strings.TrimSpace(m[2])
		r.ID = strings.TrimSpace(m[3])
	} else if m := nameTitleRe.FindStringSubmatch(title); m != nil {
		r.Name = strings.TrimSpace(m[1])
		r.ID = strings.TrimSpace(m[2])
	} else {
		r.Name = title
	}

	if desc := unwrapCDATA(elementText(item, "description")); desc != "" {
		r.Description = strings.TrimSpace(markupRe.ReplaceAllString(desc, ""))
	}

	r.Link = elementText(item, "link")
	if r.ID == "" && r.Link != "" {
		r.ID = idFromLink(r.Link)
	}
	if r.ID == "" {
		if guid := elementText(item, "guid"); guid != "" {
			r.ID = guidIDRe.FindString(guid)
		}
	}

	r.PubDate = elementText(item, "pubDate")
	return r
}

// idFromLink derives an "org/model" identifier from the last two path
// segments of an item link.
func idFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	segments := strings.FieldsFunc(u.Path, func(c rune) bool { return c == '/' })
	if len(segments) < 2 {
		return ""
	}
	return segments[len(segments)-2] + "/" + segments[len(segments)-1]
}

func elementText(item *etree.Element, tag string) string {
	el := item.SelectElement(tag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// unwrapCDATA strips a CDATA wrapper that survived entity-escaped
// rendering; etree already unwraps well-formed CDATA sections.
func unwrapCDATA(text string) string {
	if m := cdataRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

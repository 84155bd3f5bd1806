package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/modelcat"
)

// DefaultHeaderMarker identifies the documentation table worth extracting:
// only tables with a link column carry catalog entries.
const DefaultHeaderMarker = "Hugging Face Link"

// Ensure TableExtractor implements modelcat.CatalogExtractor at compile time.
var _ modelcat.CatalogExtractor = (*TableExtractor)(nil)

// TableExtractor extracts records from documentation tables in a full
// page. Tables are selected by a marker column in their header; within a
// selected table each body row yields one record: identifier from the
// first cell (preferring a <code> element), precision from the second,
// link from the marker column's anchor. Rows without a link are skipped.
type TableExtractor struct {
	headerMarker string
}

// NewTableExtractor creates a TableExtractor. An empty marker selects
// tables by DefaultHeaderMarker.
func NewTableExtractor(headerMarker string) *TableExtractor {
	if headerMarker == "" {
		headerMarker = DefaultHeaderMarker
	}
	return &TableExtractor{headerMarker: headerMarker}
}

// ExtractAll implements modelcat.CatalogExtractor.
func (e *TableExtractor) ExtractAll(markup string) ([]*modelcat.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, modelcat.Errorf(modelcat.EINVALID, "failed to parse page: %v", err)
	}

	records := []*modelcat.Record{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		cols := e.columnIndexes(table)
		if cols.link < 0 {
			return
		}
		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			if r := e.extractRow(row, cols); r != nil {
				records = append(records, r)
			}
		})
	})

	return records, nil
}

// columns holds the resolved cell index per logical field; -1 means the
// table has no such column.
type columns struct {
	id        int
	precision int
	link      int
	context   int
}

// columnIndexes resolves header cells to field columns. The marker column
// must be present; identifier and precision default to the first two
// columns when the header does not name them.
func (e *TableExtractor) columnIndexes(table *goquery.Selection) columns {
	cols := columns{id: 0, precision: 1, link: -1, context: -1}

	marker := normalizeHeader(e.headerMarker)
	table.Find("thead th").Each(func(i int, th *goquery.Selection) {
		header := normalizeHeader(th.Text())
		switch {
		case strings.Contains(header, marker):
			cols.link = i
		case strings.Contains(header, "precision"):
			cols.precision = i
		case strings.Contains(header, "context"):
			cols.context = i
		}
	})

	return cols
}

func (e *TableExtractor) extractRow(row *goquery.Selection, cols columns) *modelcat.Record {
	cells := row.Find("td")
	if cells.Length() < 2 {
		return nil
	}

	// Prefer the <code> element; fall back to the stripped cell text.
	id := selectionText(cells.Eq(cols.id).Find("code").First())
	if id == "" {
		id = selectionText(cells.Eq(cols.id))
	}
	if id == "" {
		return nil
	}

	link, _ := cells.Eq(cols.link).Find("a[href]").First().Attr("href")
	link = strings.TrimSpace(link)
	if link == "" {
		// Not a catalog row; only rows in the marker column with a link
		// describe published models.
		return nil
	}

	r := &modelcat.Record{
		ID:   id,
		Name: id,
		Link: link,
	}
	if cols.precision < cells.Length() {
		r.Precision = selectionText(cells.Eq(cols.precision))
	}
	if cols.context >= 0 && cols.context < cells.Length() {
		r.Context = selectionText(cells.Eq(cols.context))
	}
	return r
}

// normalizeHeader lowercases a header cell and collapses its whitespace so
// markers match across formatting differences.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

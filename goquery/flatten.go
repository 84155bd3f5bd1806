// Package goquery extracts model-catalog records from HTML markup: listing
// cards identified by tracking attributes and documentation tables
// identified by marker columns. Field extraction follows ordered fallback
// rules so that inconsistently formatted markup degrades to weaker rules
// instead of failing.
package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// Flatten strips all markup tags from a fragment, replacing each tag with
// a single space, then collapses whitespace runs to one space. Relative
// text order is preserved and nothing else is transformed. Entities are
// decoded.
func Flatten(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		default:
			b.WriteByte(' ')
		}
	}
}

package goquery

import (
	"regexp"
	"strings"

	"github.com/fwojciec/modelcat"
)

// DefaultCardPattern matches one listing-card anchor: an <a> element
// carrying a tracking attribute with a card marker in its value.
const DefaultCardPattern = `(?is)<a[^>]*data-autolog[^>]*c3=modelCard[^>]*>.*?</a>`

// Ensure splitters implement modelcat.Splitter at compile time.
var (
	_ modelcat.Splitter = (*SeparatorSplitter)(nil)
	_ modelcat.Splitter = (*PatternSplitter)(nil)
	_ modelcat.Splitter = (*AutoSplitter)(nil)
)

// SeparatorSplitter splits markup on an explicit source-defined delimiter
// token. Fragments are trimmed of surrounding whitespace; empty fragments
// are dropped.
type SeparatorSplitter struct {
	Token string
}

// Split implements modelcat.Splitter.
func (s *SeparatorSplitter) Split(markup string) []string {
	parts := strings.Split(markup, s.Token)
	fragments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fragments = append(fragments, p)
		}
	}
	return fragments
}

// PatternSplitter extracts all non-overlapping substrings matching a fixed
// structural signature, greedily left to right in document order. No
// fragment is ever split across two matches.
type PatternSplitter struct {
	re *regexp.Regexp
}

// NewPatternSplitter compiles the structural signature. Returns EINVALID
// if the expression does not compile.
func NewPatternSplitter(expr string) (*PatternSplitter, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, modelcat.Errorf(modelcat.EINVALID, "invalid fragment pattern: %v", err)
	}
	return &PatternSplitter{re: re}, nil
}

// Split implements modelcat.Splitter.
func (s *PatternSplitter) Split(markup string) []string {
	return s.re.FindAllString(markup, -1)
}

// AutoSplitter chooses the strategy by the shape of the input: separator
// mode when the delimiter token is present in the markup, pattern mode
// otherwise. This lets one source accept both pre-split element dumps and
// full-page HTML.
type AutoSplitter struct {
	Token   string
	Pattern *PatternSplitter
}

// Split implements modelcat.Splitter.
func (s *AutoSplitter) Split(markup string) []string {
	if s.Token != "" && strings.Contains(markup, s.Token) {
		sep := SeparatorSplitter{Token: s.Token}
		return sep.Split(markup)
	}
	if s.Pattern == nil {
		return nil
	}
	return s.Pattern.Split(markup)
}

package modelcat

import (
	"strings"
	"unicode"
)

// boundaryPunct holds the punctuation marks accepted as phrase boundaries
// and as gap separators between adjacent phrases.
const boundaryPunct = "，。、；：！？"

// cjkStart and cjkEnd bound the CJK Unified Ideographs block used for
// script-boundary checks. Script-to-script adjacency is a valid phrase
// boundary; Latin-to-phrase adjacency is not.
const (
	cjkStart = '一'
	cjkEnd   = '鿿'
)

// Vocabulary is a priority-ordered list of category phrases used for
// single-label classification, ordered from most to least specific. A
// phrase that contains another vocabulary phrase as a substring must
// precede it, so that the longest match always wins.
type Vocabulary []string

// Validate returns an error if the vocabulary violates its ordering
// contract. Unlike data-quality issues, a malformed vocabulary is a
// programming error and is surfaced to the caller.
func (v Vocabulary) Validate() error {
	seen := make(map[string]struct{}, len(v))
	for i, phrase := range v {
		if strings.TrimSpace(phrase) == "" {
			return Errorf(EINVALID, "vocabulary phrase %d is empty", i)
		}
		if _, ok := seen[phrase]; ok {
			return Errorf(EINVALID, "vocabulary phrase %q appears more than once", phrase)
		}
		seen[phrase] = struct{}{}
		for _, earlier := range v[:i] {
			if strings.Contains(phrase, earlier) {
				return Errorf(EINVALID, "vocabulary phrase %q must precede its substring %q", phrase, earlier)
			}
		}
	}
	return nil
}

// Contains reports whether the exact phrase is part of the vocabulary.
func (v Vocabulary) Contains(phrase string) bool {
	for _, p := range v {
		if p == phrase {
			return true
		}
	}
	return false
}

// Span is an accepted phrase occurrence as a rune interval [Start, End).
type Span struct {
	Start  int
	End    int
	Phrase string
}

// Tagger assigns at most one category phrase to free text. Overlaps are
// resolved longest-phrase-first with word-boundary rules; see Tag.
type Tagger struct {
	vocab   Vocabulary
	phrases [][]rune
}

// NewTagger creates a Tagger for the vocabulary. Returns EINVALID if the
// vocabulary violates its ordering contract.
func NewTagger(vocab Vocabulary) (*Tagger, error) {
	if err := vocab.Validate(); err != nil {
		return nil, err
	}
	phrases := make([][]rune, len(vocab))
	for i, p := range vocab {
		phrases[i] = []rune(p)
	}
	return &Tagger{vocab: vocab, phrases: phrases}, nil
}

// Vocabulary returns the tagger's vocabulary.
func (t *Tagger) Vocabulary() Vocabulary {
	return t.vocab
}

// Tag returns the single category for the flattened text, or "" when no
// phrase qualifies. The first vocabulary phrase with an accepted
// occurrence wins and the search stops immediately: classification is
// deliberately single-label even when the text matches several
// non-overlapping phrases.
func (t *Tagger) Tag(text string) string {
	runes := []rune(text)
	var accepted []Span
	for i, phrase := range t.phrases {
		if _, ok := acceptOccurrence(runes, phrase, accepted); ok {
			return t.vocab[i]
		}
	}
	return ""
}

// Spans runs the full matcher over every vocabulary phrase and returns all
// accepted occurrences in priority order. Tag consults the same acceptance
// rules but stops at the first phrase; Spans is the diagnostic view of
// everything the text matches.
func (t *Tagger) Spans(text string) []Span {
	runes := []rune(text)
	var accepted []Span
	for _, phrase := range t.phrases {
		if s, ok := acceptOccurrence(runes, phrase, accepted); ok {
			accepted = append(accepted, s)
		}
	}
	return accepted
}

// acceptOccurrence scans the text for the first occurrence of the phrase
// that survives the containment, boundary, overlap, and adjacency rules
// against the spans already accepted for more specific phrases.
func acceptOccurrence(text, phrase []rune, accepted []Span) (Span, bool) {
	for start := indexRunes(text, phrase, 0); start >= 0; start = indexRunes(text, phrase, start+len(phrase)) {
		end := start + len(phrase)

		if containedInAccepted(start, end, accepted) {
			continue
		}
		if !boundaryAt(text, start-1) || !boundaryAt(text, end) {
			continue
		}
		if overlapsAccepted(start, end, accepted) {
			continue
		}
		if adjacentPieceOfLonger(text, start, end, string(phrase), accepted) {
			continue
		}
		return Span{Start: start, End: end, Phrase: string(phrase)}, true
	}
	return Span{}, false
}

// containedInAccepted reports whether [start,end) lies fully inside a span
// accepted for a longer phrase, which means this occurrence is just a
// piece of that phrase.
func containedInAccepted(start, end int, accepted []Span) bool {
	for _, s := range accepted {
		if start >= s.Start && end <= s.End {
			return true
		}
	}
	return false
}

func overlapsAccepted(start, end int, accepted []Span) bool {
	for _, s := range accepted {
		if end > s.Start && start < s.End {
			return true
		}
	}
	return false
}

// boundaryAt reports whether the rune at idx is a valid phrase boundary:
// the text edge, whitespace, a fixed punctuation mark, or a CJK character.
// A Latin letter flush against the phrase is a partial-word overlap.
func boundaryAt(text []rune, idx int) bool {
	if idx < 0 || idx >= len(text) {
		return true
	}
	c := text[idx]
	return unicode.IsSpace(c) || strings.ContainsRune(boundaryPunct, c) || (c >= cjkStart && c <= cjkEnd)
}

// adjacentPieceOfLonger implements the adjacency rule: an occurrence
// within one character of an accepted span whose phrase contains this
// phrase is really a fragment of the longer phrase and must be rejected,
// unless a whitespace or punctuation separator sits in the gap. The gap is
// checked in both directions; a separator found in the first direction
// clears the candidate against that span without consulting the second.
// The asymmetry is intentional and matches the documented behavior for
// three-way phrase juxtapositions.
func adjacentPieceOfLonger(text []rune, start, end int, phrase string, accepted []Span) bool {
	for _, s := range accepted {
		if !strings.Contains(s.Phrase, phrase) {
			continue
		}

		if lo, hi := orderedGap(s.End, start); hi-lo <= 1 {
			if separatorInGap(text, lo, hi) {
				continue
			}
			return true
		}
		if lo, hi := orderedGap(s.Start, end); hi-lo <= 1 {
			if separatorInGap(text, lo, hi) {
				continue
			}
			return true
		}
	}
	return false
}

func orderedGap(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// separatorInGap reports whether the single-character gap [lo,hi) holds a
// whitespace or punctuation separator. An empty gap has no separator.
func separatorInGap(text []rune, lo, hi int) bool {
	if hi <= lo || lo >= len(text) {
		return false
	}
	c := text[lo]
	return unicode.IsSpace(c) || strings.ContainsRune(boundaryPunct, c)
}

// indexRunes returns the rune offset of the first occurrence of phrase in
// text at or after from, or -1.
func indexRunes(text, phrase []rune, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(phrase) <= len(text); i++ {
		if runesEqual(text[i:i+len(phrase)], phrase) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

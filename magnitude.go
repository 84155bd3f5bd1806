package modelcat

import (
	"strconv"
	"strings"
)

// ParseMagnitude parses a human-readable abbreviated number such as
// "19.3k", "2M", or "1.5b" into an integer, truncating any fractional
// remainder. Suffixes K (x10^3), M (x10^6), and B (x10^9) are recognized
// case-insensitively at the end of the numeric prefix; without a suffix
// the text is parsed as a possibly-fractional numeral.
//
// The second return value is false when the text is not a magnitude
// string; callers treat that as an absent field, not an error.
func ParseMagnitude(text string) (int, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}

	mult := 1.0
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1e3
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1e6
		s = s[:len(s)-1]
	case 'b', 'B':
		mult = 1e9
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return int(v * mult), true
}

package modelcat

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Record represents one model-catalog entry assembled from a markup
// fragment. Fields are plain text with all markup stripped; zero values
// are omitted from serialized output.
type Record struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Link         string `json:"link,omitempty"`
	Description  string `json:"description,omitempty"`

	// Source-specific optional fields.
	Precision string `json:"precision,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Context   string `json:"context,omitempty"`

	// Magnitude-normalized metrics ("19.3k" -> 19300).
	Downloads int `json:"downloads,omitempty"`
	Stars     int `json:"stars,omitempty"`

	// TaskType is the single category assigned by the keyword tagger.
	TaskType string `json:"task_type,omitempty"`

	PubDate string `json:"pub_date,omitempty"`
}

// Validate returns an error if the record carries no identity at all.
// Such records cannot be kept in a catalog.
func (r *Record) Validate() error {
	if r.ID == "" && r.Name == "" {
		return Errorf(EINVALID, "record id or name required")
	}
	return nil
}

// FillIdentity copies the identifier into the name, or the name into the
// identifier, when exactly one of the two is missing.
func (r *Record) FillIdentity() {
	if r.ID == "" {
		r.ID = r.Name
	}
	if r.Name == "" {
		r.Name = r.ID
	}
}

// Key returns the normalization key used for dedup identity: the
// lowercased, trimmed identifier, falling back to the name when the
// identifier is absent. An empty key means the record has no reliable
// identity.
func (r *Record) Key() string {
	k := r.ID
	if k == "" {
		k = r.Name
	}
	return strings.ToLower(strings.TrimSpace(k))
}

// Fingerprint returns a stable hash over all record fields. Stores use it
// to detect records that changed between runs without comparing field by
// field.
func (r *Record) Fingerprint() uint64 {
	h := xxhash.New()
	for _, s := range []string{
		r.ID, r.Name, r.Organization, r.Link, r.Description,
		r.Precision, r.Provider, r.Context, r.TaskType, r.PubDate,
		strconv.Itoa(r.Downloads), strconv.Itoa(r.Stars),
	} {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0}) // field boundary
	}
	return h.Sum64()
}

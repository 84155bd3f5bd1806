package modelcat

// Deduper tracks normalization keys seen during one sequential extraction
// run so that later duplicates are dropped. The zero value is not usable;
// construct with NewDeduper. A Deduper is owned by a single pass over all
// pages and sources and is not safe for concurrent use.
type Deduper struct {
	seen map[string]struct{}
}

// NewDeduper returns an empty Deduper.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// Admit reports whether the record should be kept. The first record seen
// for a given key is admitted; later records with the same key are not,
// and none of their field values leak into the kept record.
//
// Records with an empty key have no reliable identity and are always
// admitted without being registered.
func (d *Deduper) Admit(r *Record) bool {
	key := r.Key()
	if key == "" {
		return true
	}
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Dedupe filters records in order, keeping the first occurrence of each
// normalization key.
func (d *Deduper) Dedupe(records []*Record) []*Record {
	kept := make([]*Record, 0, len(records))
	for _, r := range records {
		if d.Admit(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

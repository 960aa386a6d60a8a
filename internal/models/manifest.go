package models

// Manifest is an ordered collection of articles, newest first.
// It is built once per build or load cycle and treated as read-only.
type Manifest []Article

// Len returns the number of articles.
func (m Manifest) Len() int {
	return len(m)
}

// At returns the article at index i.
func (m Manifest) At(i int) (Article, bool) {
	if i < 0 || i >= len(m) {
		return Article{}, false
	}

	return m[i], true
}

// LastUpdated returns the creation date of the newest dated article.
// Drafts sort first and are passed over; a manifest of drafts only yields
// Draft and an empty one "".
func (m Manifest) LastUpdated() string {
	for _, a := range m {
		if !a.IsDraft() {
			return a.Created
		}
	}

	if len(m) == 0 {
		return ""
	}

	return Draft
}

// Clone returns a copy that shares no backing array with m.
func (m Manifest) Clone() Manifest {
	out := make(Manifest, len(m))
	copy(out, m)

	return out
}

package model

// BibliographyEntry is one record from a BibTeX bibliography.
// Only the key, title and author are used for verification; the remaining
// fields are retained untouched for completeness.
type BibliographyEntry struct {
	// Key is the citation key, unique within the bibliography.
	Key string `json:"key"`

	// Type is the BibTeX entry type (article, inproceedings, ...).
	Type string `json:"type"`

	// Title is the publication title. May be empty in malformed entries.
	Title string `json:"title,omitempty"`

	// Author is the raw author string as written in the entry.
	Author string `json:"author,omitempty"`

	// Fields holds all fields of the entry, lowercased field names.
	Fields map[string]string `json:"fields,omitempty"`
}

// SearchHit is one organic result returned by the lookup service.
type SearchHit struct {
	// Title is the result title.
	Title string `json:"title"`

	// Link is the result URL.
	Link string `json:"link,omitempty"`

	// Snippet is the result snippet with HTML tags stripped.
	Snippet string `json:"snippet,omitempty"`
}

// LookupResult is the outcome of a single web lookup for a bibliography
// entry. It is created per query, consumed immediately and discarded.
// All failure modes are captured here; the lookup client never panics or
// returns an error past its own boundary.
type LookupResult struct {
	// Success is false when the lookup could not be performed at all
	// (no credential, transport error, non-200 status).
	Success bool `json:"success"`

	// Found is only meaningful when Success is true: it reports whether
	// the search index returned at least one organic result.
	Found bool `json:"found"`

	// Error describes the failure when Success is false.
	Error string `json:"error,omitempty"`

	// Results holds up to the first three organic hits when Found is true.
	Results []SearchHit `json:"results,omitempty"`
}

package model

import "fmt"

// Finding is the structured result of one analyzer run: a pass/fail flag,
// a list of human-readable issues, and analyzer-specific metrics.
//
// Design decision: We use a single wide struct with omitempty metric fields
// rather than one struct per analyzer because:
//  1. It keeps the aggregated report a uniform map[string]*Finding
//  2. JSON serialization stays flat and stable for tool integration
//  3. Renderers don't need type switches to reach the metrics
type Finding struct {
	// HasIssues is true when the analyzer found at least one issue.
	// Invariant: HasIssues == (len(Issues) > 0).
	HasIssues bool `json:"has_issues"`

	// Issues contains human-readable issue descriptions in detection order.
	Issues []string `json:"issues"`

	// === Sparsity metrics ===

	// SparsityScore is the additive sparsity score (0.0 when clean, 1.0
	// when no meaningful paragraphs survive filtering).
	SparsityScore float64 `json:"sparsity_score,omitempty"`

	// ParagraphCount is the number of paragraphs that survived filtering.
	ParagraphCount int `json:"paragraph_count,omitempty"`

	// MedianLength is the median paragraph length in characters.
	MedianLength float64 `json:"median_length,omitempty"`

	// === Stereotype metrics ===

	// FoundExpressions lists matched boilerplate expressions in
	// first-seen order, deduplicated.
	FoundExpressions []string `json:"found_expressions,omitempty"`

	// AffectedParagraphs is the number of paragraphs containing at least
	// one boilerplate expression. Each paragraph counts once.
	AffectedParagraphs int `json:"affected_paragraphs,omitempty"`

	// TotalParagraphs is the total number of paragraphs examined.
	TotalParagraphs int `json:"total_paragraphs,omitempty"`

	// === Citation metrics ===

	// CitationsFound is the total number of [@key] markers found.
	CitationsFound int `json:"citations_found,omitempty"`

	// UniqueCitations is the number of distinct citation keys.
	UniqueCitations int `json:"unique_citations,omitempty"`

	// === Image metrics ===

	// ImagesFound is the number of image references found.
	ImagesFound int `json:"images_found,omitempty"`

	// === Bibliography metrics ===

	// VerifiedCount is the number of bibliography entries corroborated by
	// the lookup service.
	VerifiedCount int `json:"verified_count,omitempty"`

	// TotalCount is the total number of bibliography entries examined.
	TotalCount int `json:"total_count,omitempty"`
}

// NewFinding creates an empty Finding with a non-nil issue list.
// A non-nil list keeps JSON output stable ("issues": [] instead of null).
func NewFinding() *Finding {
	return &Finding{Issues: []string{}}
}

// AddIssue appends an issue and keeps the HasIssues invariant in sync.
func (f *Finding) AddIssue(issue string) {
	f.Issues = append(f.Issues, issue)
	f.HasIssues = true
}

// AddIssuef appends a formatted issue.
func (f *Finding) AddIssuef(format string, args ...any) {
	f.AddIssue(fmt.Sprintf(format, args...))
}

// IssueCount returns the number of recorded issues.
func (f *Finding) IssueCount() int {
	return len(f.Issues)
}

package analyzer

import (
	"context"
	"regexp"

	"github.com/nanalab/paperscan/internal/model"
)

// Analyzer defines the interface for individual verification checks.
// Each analyzer focuses on one class of manuscript defect.
//
// Design decision: We use an interface rather than concrete types because:
//  1. The engine dispatches analyzers by name without knowing their types
//  2. It enables testing the engine with stub analyzers
//  3. New checks slot in without touching the orchestration
//
// Analyze must not return errors: every failure mode an analyzer can hit
// is degraded into an issue string inside the Finding so that one failing
// check never aborts its siblings.
type Analyzer interface {
	// Name returns the analyzer's section name used as the key in the
	// aggregated report (one of the model.Section* constants).
	Name() string

	// Analyze runs the check over the document and returns its Finding.
	Analyze(ctx context.Context, doc *Document) *model.Finding
}

// Document carries everything analyzers may need for one verification run.
// The text is owned by the caller and never mutated.
//
// Design decision: We pass a single struct rather than per-analyzer
// parameters, mirroring the fact that not every analyzer needs every
// field (only the image analyzer uses Path, only citation/bibliography
// analyzers use the bibliography fields).
type Document struct {
	// Text is the raw UTF-8 manuscript content.
	Text string

	// Path is the manuscript's file path, used for image resolution
	// context and report labelling.
	Path string

	// HasBibliography is true when a bibliography was supplied for this
	// run, even if it turned out to be missing or unparsable.
	HasBibliography bool

	// BibliographyPath is the supplied bibliography file path.
	BibliographyPath string

	// BibliographyMissing is true when the supplied path does not exist.
	BibliographyMissing bool

	// BibEntries are the parsed bibliography entries, in file order.
	BibEntries []model.BibliographyEntry

	// BibKeys is the set of citation keys present in the bibliography.
	BibKeys map[string]bool

	// BibErr records a bibliography parse failure. Analyzers report it
	// as a single issue instead of failing.
	BibErr error
}

// imageRefPattern matches Markdown image syntax ![alt](target).
// Several analyzers strip image references before pattern matching so
// that alt text and URLs never trigger false positives.
var imageRefPattern = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)

// stripImageRefs removes Markdown image references from a line of text.
func stripImageRefs(s string) string {
	return imageRefPattern.ReplaceAllString(s, "")
}

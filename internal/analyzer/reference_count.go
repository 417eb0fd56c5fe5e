package analyzer

import (
	"context"

	"github.com/nanalab/paperscan/internal/model"
)

// DefaultMinReferences is the minimum unique citation count expected of
// a full manuscript.
const DefaultMinReferences = 15

// ReferenceCountAnalyzer checks that the manuscript cites enough unique
// sources. Thin bibliographies are a common sign of padded or generated
// survey sections.
type ReferenceCountAnalyzer struct {
	citationAnalyzer *CitationAnalyzer
	minReferences    int
}

// NewReferenceCountAnalyzer creates a ReferenceCountAnalyzer that flags
// documents with fewer than minReferences unique citations. A
// non-positive value falls back to DefaultMinReferences.
func NewReferenceCountAnalyzer(minReferences int) *ReferenceCountAnalyzer {
	if minReferences <= 0 {
		minReferences = DefaultMinReferences
	}
	return &ReferenceCountAnalyzer{
		citationAnalyzer: NewCitationAnalyzer(),
		minReferences:    minReferences,
	}
}

// Name returns the report section name.
func (a *ReferenceCountAnalyzer) Name() string {
	return model.SectionReferenceCount
}

// Analyze counts the unique [@key] citations in the document.
func (a *ReferenceCountAnalyzer) Analyze(_ context.Context, doc *Document) *model.Finding {
	finding := model.NewFinding()

	unique := make(map[string]bool)
	matches := a.citationAnalyzer.citationPattern.FindAllStringSubmatch(doc.Text, -1)
	for _, m := range matches {
		unique[m[1]] = true
	}

	finding.CitationsFound = len(matches)
	finding.UniqueCitations = len(unique)

	if len(unique) < a.minReferences {
		finding.AddIssuef("too few references: %d unique citations found, at least %d expected",
			len(unique), a.minReferences)
	}
	return finding
}

// Ensure ReferenceCountAnalyzer implements Analyzer.
var _ Analyzer = (*ReferenceCountAnalyzer)(nil)

package analyzer

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/nanalab/paperscan/internal/model"
)

// CitationAnalyzer checks citation marker format and, when a bibliography
// is available, that every cited key resolves to an entry.
type CitationAnalyzer struct {
	// citationPattern matches well-formed [@key] markers and captures the key.
	citationPattern *regexp.Regexp

	// bracketPattern matches any bracketed span. Spans whose content
	// starts with '@' are the well-formed citations; the rest are
	// candidates for the non-standard-format issue.
	bracketPattern *regexp.Regexp
}

// NewCitationAnalyzer creates a CitationAnalyzer.
func NewCitationAnalyzer() *CitationAnalyzer {
	return &CitationAnalyzer{
		citationPattern: regexp.MustCompile(`\[@([^\]]+)\]`),
		bracketPattern:  regexp.MustCompile(`\[([^\]]*)\]`),
	}
}

// Name returns the report section name.
func (a *CitationAnalyzer) Name() string {
	return model.SectionCitations
}

// Analyze extracts citation markers and validates them. A document with
// no [@key] markers at all passes vacuously, including its bracketed
// spans: format complaints are only meaningful in a document that cites.
func (a *CitationAnalyzer) Analyze(_ context.Context, doc *Document) *model.Finding {
	finding := model.NewFinding()

	var citations []string
	for _, m := range a.citationPattern.FindAllStringSubmatch(doc.Text, -1) {
		citations = append(citations, m[1])
	}
	if len(citations) == 0 {
		return finding
	}

	// Image references are stripped first so [alt text](url) spans never
	// register as malformed citations.
	withoutImages := stripImageRefs(doc.Text)
	for _, m := range a.bracketPattern.FindAllStringSubmatch(withoutImages, -1) {
		inner := m[1]
		if strings.HasPrefix(inner, "@") {
			continue
		}
		if strings.Contains(inner, "http") || isDigits(inner) {
			continue
		}
		finding.AddIssuef("non-standard citation format: [%s], use [@key] format", inner)
	}

	if doc.HasBibliography && !doc.BibliographyMissing {
		if doc.BibErr != nil {
			finding.AddIssuef("failed to read the bibliography file: %s", doc.BibErr)
		} else {
			for _, citation := range citations {
				if !doc.BibKeys[citation] {
					finding.AddIssuef("citation [@%s] not found in the bibliography", citation)
				}
			}
		}
	}

	finding.CitationsFound = len(citations)
	unique := make(map[string]bool, len(citations))
	for _, c := range citations {
		unique[c] = true
	}
	finding.UniqueCitations = len(unique)
	return finding
}

// isDigits reports whether s is non-empty and consists only of digits.
// Purely numeric brackets like [1] are treated as manual reference
// numbering, not malformed citations.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Ensure CitationAnalyzer implements Analyzer.
var _ Analyzer = (*CitationAnalyzer)(nil)

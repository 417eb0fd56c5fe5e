package analyzer

import (
	"context"
	"regexp"
	"strings"

	"github.com/nanalab/paperscan/internal/model"
)

// boldPattern pairs an anchored bold-heading pattern with the description
// recorded when it matches.
type boldPattern struct {
	pattern     *regexp.Regexp
	description string
}

// StereotypeAnalyzer detects templated, machine-flavored phrasing:
// formulaic Chinese connective phrases and paragraphs that open with a
// short bold run followed by a colon.
type StereotypeAnalyzer struct {
	// phrases are matched as literal substrings anywhere in a paragraph.
	// The matched phrase itself is recorded as the found expression.
	phrases []string

	boldPatterns []boldPattern
}

// NewStereotypeAnalyzer creates a StereotypeAnalyzer.
func NewStereotypeAnalyzer() *StereotypeAnalyzer {
	return &StereotypeAnalyzer{
		phrases: []string{
			"首先，", "其次，", "再次，", "最后，", "再者，",
			"综上所述，", "值得注意的是，", "总而言之，", "换句话说，",
			"毫无疑问，", "显而易见，", "众所周知，",
		},
		boldPatterns: []boldPattern{
			{regexp.MustCompile(`^\*\*(.{1,15})\*\*[：:]`), "paragraph opens with a bold phrase and colon"},
			{regexp.MustCompile(`^\d+\.\s*\*\*(.{1,15})\*\*[：:]`), "numbered item with a bold heading"},
			{regexp.MustCompile(`^\s*-\s*\*\*(.{1,15})\*\*[：:]`), "list item with a bold heading"},
		},
	}
}

// Name returns the report section name.
func (a *StereotypeAnalyzer) Name() string {
	return model.SectionStereotypeContent
}

// Analyze scans paragraphs for boilerplate phrases and bold-heading
// openers. Matches are deduplicated in first-seen order and reported as
// one aggregate issue; the per-paragraph counters expose the spread.
func (a *StereotypeAnalyzer) Analyze(_ context.Context, doc *Document) *model.Finding {
	finding := model.NewFinding()

	var found []string
	seen := make(map[string]bool)
	record := func(expr string) {
		if !seen[expr] {
			seen[expr] = true
			found = append(found, expr)
		}
	}

	paragraphs := splitParagraphs(doc.Text)
	affected := 0
	for _, p := range paragraphs {
		matched := false

		for _, phrase := range a.phrases {
			if strings.Contains(p, phrase) {
				record(phrase)
				matched = true
			}
		}

		// At most one bold-heading description per paragraph; later
		// patterns are shadowed by earlier ones.
		for _, bp := range a.boldPatterns {
			if bp.pattern.MatchString(p) {
				record(bp.description)
				matched = true
				break
			}
		}

		if matched {
			affected++
		}
	}

	if len(found) > 0 {
		finding.AddIssue("boilerplate expressions found: " + strings.Join(found, ", "))
	}
	finding.FoundExpressions = found
	finding.AffectedParagraphs = affected
	finding.TotalParagraphs = len(paragraphs)
	return finding
}

// splitParagraphs splits on blank lines only, without the per-line
// reassembly the sparsity check does. Bold-heading detection needs the
// raw paragraph head intact.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// Ensure StereotypeAnalyzer implements Analyzer.
var _ Analyzer = (*StereotypeAnalyzer)(nil)

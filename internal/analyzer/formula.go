package analyzer

import (
	"context"
	"regexp"
	"strings"

	"github.com/nanalab/paperscan/internal/model"
)

// FormulaAnalyzer detects mathematical notation that appears outside
// LaTeX math delimiters: bare Greek letters, bare math symbols, and
// expression shapes that look like unformatted math.
type FormulaAnalyzer struct {
	greekLetters []string
	mathSymbols  []string
	mathPatterns []*regexp.Regexp
}

// NewFormulaAnalyzer creates a FormulaAnalyzer.
func NewFormulaAnalyzer() *FormulaAnalyzer {
	return &FormulaAnalyzer{
		greekLetters: []string{
			"α", "β", "γ", "δ", "ε", "ζ", "η", "θ", "ι", "κ", "λ", "μ",
			"ν", "ξ", "ο", "π", "ρ", "σ", "τ", "υ", "φ", "χ", "ψ", "ω",
			"Α", "Β", "Γ", "Δ", "Ε", "Ζ", "Η", "Θ", "Ι", "Κ", "Λ", "Μ",
			"Ν", "Ξ", "Ο", "Π", "Ρ", "Σ", "Τ", "Υ", "Φ", "Χ", "Ψ", "Ω",
		},
		mathSymbols: []string{
			"∑", "∏", "∫", "∞", "≤", "≥", "≠", "±", "∝", "∈", "∀", "∃",
		},
		mathPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[a-zA-Z]\s*=\s*[a-zA-Z0-9+\-*/^()]+`), // variable assignment
			regexp.MustCompile(`\b[a-zA-Z]+\s*\^\s*[0-9]+`),             // exponentiation
			regexp.MustCompile(`\b[a-zA-Z]+_[a-zA-Z0-9]+`),              // subscript
		},
	}
}

// Name returns the report section name.
func (a *FormulaAnalyzer) Name() string {
	return model.SectionLatexFormulas
}

// Analyze runs three line-oriented passes over the document: Greek
// letters, math symbols, expression shapes. Lines containing a '$' are
// assumed to carry LaTeX math already and are skipped in all passes.
// Issues are ordered pass-major, not line-major.
func (a *FormulaAnalyzer) Analyze(_ context.Context, doc *Document) *model.Finding {
	finding := model.NewFinding()
	lines := strings.Split(doc.Text, "\n")

	for i, line := range lines {
		if strings.Contains(line, "$") {
			continue
		}
		stripped := stripImageRefs(line)
		for _, letter := range a.greekLetters {
			if strings.Contains(stripped, letter) {
				finding.AddIssuef("line %d: bare Greek letter '%s' found, use LaTeX notation", i+1, letter)
			}
		}
	}

	for i, line := range lines {
		if strings.Contains(line, "$") {
			continue
		}
		stripped := stripImageRefs(line)
		for _, symbol := range a.mathSymbols {
			if strings.Contains(stripped, symbol) {
				finding.AddIssuef("line %d: bare math symbol '%s' found, use LaTeX notation", i+1, symbol)
			}
		}
	}

	for i, line := range lines {
		if strings.Contains(line, "$") {
			continue
		}
		stripped := stripImageRefs(line)
		for _, pattern := range a.mathPatterns {
			if pattern.MatchString(stripped) {
				finding.AddIssuef("line %d: possible bare math expression, consider wrapping it in LaTeX", i+1)
				break
			}
		}
	}

	return finding
}

// Ensure FormulaAnalyzer implements Analyzer.
var _ Analyzer = (*FormulaAnalyzer)(nil)

package model

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/sha3"
)

// Section names used as keys in VerificationReport.Results.
// The fixed set mirrors the analyzer set; SectionBibReferences is present
// only when a bibliography was supplied.
const (
	SectionSparseContent     = "sparse_content"
	SectionStereotypeContent = "stereotype_content"
	SectionLatexFormulas     = "latex_formulas"
	SectionCitations         = "citations"
	SectionReferenceCount    = "reference_count"
	SectionImages            = "images"
	SectionCodeBlocks        = "code_blocks"
	SectionBibReferences     = "bib_references"
)

// SectionOrder returns the canonical rendering order of report sections.
// Maps don't preserve insertion order, so renderers iterate this slice.
func SectionOrder() []string {
	return []string{
		SectionSparseContent,
		SectionStereotypeContent,
		SectionLatexFormulas,
		SectionCitations,
		SectionReferenceCount,
		SectionImages,
		SectionCodeBlocks,
		SectionBibReferences,
	}
}

// VerificationReport is the aggregated result of verifying one manuscript.
// It maps section names to Findings and is immutable after the engine
// returns it; renderers and callers only read it.
type VerificationReport struct {
	// DocumentPath is the path of the verified manuscript.
	DocumentPath string `json:"document_path"`

	// BibliographyPath is the path of the bibliography file, if supplied.
	BibliographyPath string `json:"bibliography_path,omitempty"`

	// Fingerprint is the SHA3-256 digest of the manuscript content,
	// identifying the exact revision this report describes.
	Fingerprint string `json:"fingerprint"`

	// DateVerified is when the verification was performed.
	DateVerified time.Time `json:"date_verified"`

	// Results maps section names (see Section* constants) to Findings.
	Results map[string]*Finding `json:"results"`

	// Error holds an orchestration-level error message, set only when the
	// run itself failed (e.g. the manuscript could not be read). Analyzer
	// failures never appear here; they degrade to Finding issues.
	Error string `json:"error,omitempty"`
}

// NewVerificationReport creates a report for the given manuscript content.
func NewVerificationReport(documentPath, content string) *VerificationReport {
	digest := sha3.Sum256([]byte(content))
	return &VerificationReport{
		DocumentPath: documentPath,
		Fingerprint:  hex.EncodeToString(digest[:]),
		DateVerified: time.Now(),
		Results:      make(map[string]*Finding),
	}
}

// Add records the finding for the named section.
func (r *VerificationReport) Add(section string, finding *Finding) {
	r.Results[section] = finding
}

// Summary returns a per-section pass/fail view of the report.
func (r *VerificationReport) Summary() map[string]bool {
	summary := make(map[string]bool, len(r.Results))
	for name, finding := range r.Results {
		summary[name] = finding.HasIssues
	}
	return summary
}

// SectionsWithIssues returns the number of sections that reported issues.
// This is the "total issues found" figure in rendered reports: it counts
// failing checks, not individual issue strings.
func (r *VerificationReport) SectionsWithIssues() int {
	count := 0
	for _, finding := range r.Results {
		if finding.HasIssues {
			count++
		}
	}
	return count
}

// TotalIssues returns the total number of issue strings across sections.
func (r *VerificationReport) TotalIssues() int {
	total := 0
	for _, finding := range r.Results {
		total += len(finding.Issues)
	}
	return total
}

// HasIssues returns true if any section reported issues.
func (r *VerificationReport) HasIssues() bool {
	return r.SectionsWithIssues() > 0
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nanalab/paperscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showPassed controls whether passing sections are listed in full.
	showPassed bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowPassed configures the writer to render passing sections too.
func WithShowPassed(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showPassed = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showPassed: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.VerificationReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)

	if report.Error != "" {
		fmt.Fprintf(&sb, "ERROR: %s\n", report.Error)
		return io.WriteString(w.output, sb.String())
	}

	for i, section := range orderedSections(report) {
		w.writeSection(&sb, i+1, section, report.Results[section])
	}
	w.writeSummary(&sb, report)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report header with document information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.VerificationReport) {
	sb.WriteString("Paper Verification Report\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(sb, "Document:     %s\n", report.DocumentPath)
	if report.BibliographyPath != "" {
		fmt.Fprintf(sb, "Bibliography: %s\n", report.BibliographyPath)
	}
	fmt.Fprintf(sb, "Verified:     %s\n", report.DateVerified.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Fingerprint:  %s\n", report.Fingerprint)
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
}

// writeSection writes one numbered check section.
func (w *SimpleWriter) writeSection(sb *strings.Builder, number int, section string, finding *model.Finding) {
	if !finding.HasIssues && !w.showPassed {
		return
	}

	fmt.Fprintf(sb, "%d. %s\n", number, sectionTitle(section))
	if finding.HasIssues {
		sb.WriteString("   Status: FAIL\n")
		for _, issue := range finding.Issues {
			fmt.Fprintf(sb, "   - %s\n", issue)
		}
	} else {
		sb.WriteString("   Status: PASS\n")
	}
	for _, metric := range sectionMetrics(section, finding) {
		fmt.Fprintf(sb, "   %s\n", metric)
	}
	sb.WriteString("\n")
}

// writeSummary writes the overall verdict.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.VerificationReport) {
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	if failed := report.SectionsWithIssues(); failed > 0 {
		fmt.Fprintf(sb, "Overall: FAIL (%d of %d checks reported issues, %d issues total)\n",
			failed, len(report.Results), report.TotalIssues())
	} else {
		fmt.Fprintf(sb, "Overall: PASS (all %d checks passed)\n", len(report.Results))
	}
}

// sectionMetrics returns the metric lines for a section's finding.
// Only sections that carry metrics produce output.
func sectionMetrics(section string, finding *model.Finding) []string {
	switch section {
	case model.SectionSparseContent:
		metrics := []string{
			fmt.Sprintf("Paragraphs: %d", finding.ParagraphCount),
			fmt.Sprintf("Median length: %.1f", finding.MedianLength),
		}
		if finding.HasIssues {
			metrics = append(metrics, fmt.Sprintf("Sparsity score: %.2f", finding.SparsityScore))
		}
		return metrics
	case model.SectionStereotypeContent:
		return []string{
			fmt.Sprintf("Affected paragraphs: %d/%d", finding.AffectedParagraphs, finding.TotalParagraphs),
		}
	case model.SectionCitations, model.SectionReferenceCount:
		return []string{
			fmt.Sprintf("Citations: %d (unique: %d)", finding.CitationsFound, finding.UniqueCitations),
		}
	case model.SectionImages:
		return []string{
			fmt.Sprintf("Images: %d", finding.ImagesFound),
		}
	case model.SectionBibReferences:
		return []string{
			fmt.Sprintf("Verified: %d/%d", finding.VerifiedCount, finding.TotalCount),
		}
	default:
		return nil
	}
}

// Ensure SimpleWriter implements Writer.
var _ Writer = (*SimpleWriter)(nil)

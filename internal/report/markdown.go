package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nanalab/paperscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.VerificationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)

	if report.Error != "" {
		md.PlainText("**Error**: " + report.Error)
		return len(md.String()), md.Build()
	}

	for i, section := range orderedSections(report) {
		w.writeSection(md, i+1, section, report.Results[section])
	}
	w.writeSummary(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with document information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.VerificationReport) {
	md.H1("Paper Verification Report")
	md.PlainText("")

	bibliography := report.BibliographyPath
	if bibliography == "" {
		bibliography = "not provided"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + report.DocumentPath + "`"},
			{"Bibliography", "`" + bibliography + "`"},
			{"Verified", report.DateVerified.Format("2006-01-02 15:04:05 MST")},
			{"Fingerprint", "`" + report.Fingerprint + "`"},
		},
	})
	md.PlainText("")
	md.HorizontalRule()
	md.PlainText("")
}

// writeSection writes one numbered check section with its status,
// issues, and metrics.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, number int, section string, finding *model.Finding) {
	md.H2(strconv.Itoa(number) + ". " + sectionTitle(section))
	md.PlainText("")

	if finding.HasIssues {
		md.PlainText("**Status**: ❌ issues found")
		md.PlainText("")
		md.BulletList(finding.Issues...)
	} else {
		md.PlainText("**Status**: ✅ passed")
	}

	metrics := sectionMetricsMarkdown(section, finding)
	if len(metrics) > 0 {
		md.PlainText("")
		for _, metric := range metrics {
			md.PlainText(metric)
		}
	}
	md.PlainText("")
}

// writeSummary writes the overall verdict section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.VerificationReport) {
	md.HorizontalRule()
	md.PlainText("")
	md.H2("Summary")
	md.PlainText("")

	if failed := report.SectionsWithIssues(); failed > 0 {
		md.PlainText(fmt.Sprintf("**Overall status**: ❌ %d of %d checks reported issues", failed, len(report.Results)))
		md.PlainText("")
		md.PlainText("**Recommendation**: fix the issues listed above and verify again.")
	} else {
		md.PlainText("**Overall status**: ✅ all checks passed")
		md.PlainText("")
		md.PlainText("**Conclusion**: the manuscript meets the formatting and content requirements.")
	}
}

// sectionMetricsMarkdown returns the bold-labelled metric lines for a
// section's finding.
func sectionMetricsMarkdown(section string, finding *model.Finding) []string {
	switch section {
	case model.SectionSparseContent:
		metrics := []string{
			fmt.Sprintf("**Paragraphs**: %d", finding.ParagraphCount),
			fmt.Sprintf("**Median length**: %.1f", finding.MedianLength),
		}
		if finding.HasIssues {
			metrics = append(metrics, fmt.Sprintf("**Sparsity score**: %.2f", finding.SparsityScore))
		}
		return metrics
	case model.SectionStereotypeContent:
		return []string{
			fmt.Sprintf("**Affected paragraphs**: %d/%d", finding.AffectedParagraphs, finding.TotalParagraphs),
		}
	case model.SectionCitations, model.SectionReferenceCount:
		return []string{
			fmt.Sprintf("**Citations**: %d (unique: %d)", finding.CitationsFound, finding.UniqueCitations),
		}
	case model.SectionImages:
		return []string{
			fmt.Sprintf("**Images**: %d", finding.ImagesFound),
		}
	case model.SectionBibReferences:
		return []string{
			fmt.Sprintf("**Verified**: %d/%d", finding.VerifiedCount, finding.TotalCount),
		}
	default:
		return nil
	}
}

// Ensure MarkdownWriter implements Writer.
var _ Writer = (*MarkdownWriter)(nil)

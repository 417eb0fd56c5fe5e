package analyzer

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/nanalab/paperscan/internal/model"
)

// Sparsity thresholds. Lengths are in characters (runes), ratios are
// strict ">" comparisons, and each symptom adds its weight to the score
// independently so multiple symptoms compound without one dominating.
const (
	// minParagraphLength is the filter below which a paragraph is
	// considered noise and dropped before scoring.
	minParagraphLength = 20

	// shortParagraphLength marks a paragraph as "short".
	shortParagraphLength = 300

	// veryShortParagraphLength marks a paragraph as "very short".
	veryShortParagraphLength = 100

	shortRatioThreshold     = 0.6
	veryShortRatioThreshold = 0.4
	listRatioThreshold      = 0.3

	shortRatioScore     = 0.3
	veryShortRatioScore = 0.2
	listRatioScore      = 0.2
)

// SparsityAnalyzer detects documents dominated by short, list-like
// paragraphs rather than continuous prose.
type SparsityAnalyzer struct {
	// sectionSplit separates the document into blank-line-delimited
	// sections before per-line paragraph assembly.
	sectionSplit *regexp.Regexp

	// headingLine matches Markdown heading lines, which terminate the
	// in-progress paragraph without becoming part of it.
	headingLine *regexp.Regexp

	// listMarkers are matched against paragraph lines to classify a
	// paragraph as list-like. A paragraph counts once no matter how
	// many markers match.
	listMarkers []*regexp.Regexp
}

// NewSparsityAnalyzer creates a SparsityAnalyzer.
func NewSparsityAnalyzer() *SparsityAnalyzer {
	return &SparsityAnalyzer{
		sectionSplit: regexp.MustCompile(`\n\s*\n`),
		headingLine:  regexp.MustCompile(`^#{1,6}\s`),
		listMarkers: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*\d+[.)]\s*`),             // numeric list: "1." / "1)"
			regexp.MustCompile(`(?m)^\s*[a-zA-Z][.)]\s*`),        // alphabetic list: "a." / "a)"
			regexp.MustCompile(`(?m)^\s*[-*+•]\s*`),              // bullet symbols
			regexp.MustCompile(`(?m)^\s*第\d+[章节条]\s*`),           // Chinese chapter markers
			regexp.MustCompile(`(?m)^\s*[一二三四五六七八九十]+[.、]\s*`), // Chinese numeral lists
		},
	}
}

// Name returns the report section name.
func (a *SparsityAnalyzer) Name() string {
	return model.SectionSparseContent
}

// Analyze segments the document into paragraphs and scores how listy and
// sparse the result is.
func (a *SparsityAnalyzer) Analyze(_ context.Context, doc *Document) *model.Finding {
	finding := model.NewFinding()

	paragraphs := a.paragraphs(doc.Text)
	if len(paragraphs) == 0 {
		finding.AddIssue("no meaningful paragraphs found")
		finding.SparsityScore = 1.0
		return finding
	}

	lengths := make([]int, len(paragraphs))
	for i, p := range paragraphs {
		lengths[i] = utf8.RuneCountInString(p)
	}

	short := 0
	veryShort := 0
	for _, n := range lengths {
		if n < shortParagraphLength {
			short++
		}
		if n < veryShortParagraphLength {
			veryShort++
		}
	}
	total := float64(len(paragraphs))
	shortRatio := float64(short) / total
	veryShortRatio := float64(veryShort) / total

	listLike := 0
	for _, p := range paragraphs {
		for _, marker := range a.listMarkers {
			if marker.MatchString(p) {
				listLike++
				break
			}
		}
	}
	listRatio := float64(listLike) / total

	if shortRatio > shortRatioThreshold {
		finding.AddIssuef("too many short paragraphs (%.1f%% of paragraphs are under %d characters)",
			shortRatio*100, shortParagraphLength)
		finding.SparsityScore += shortRatioScore
	}
	if veryShortRatio > veryShortRatioThreshold {
		finding.AddIssuef("too many very short paragraphs (%.1f%% of paragraphs are under %d characters)",
			veryShortRatio*100, veryShortParagraphLength)
		finding.SparsityScore += veryShortRatioScore
	}
	if listRatio > listRatioThreshold {
		finding.AddIssuef("too many list-like paragraphs (%.1f%% of paragraphs are list formatted)",
			listRatio*100)
		finding.SparsityScore += listRatioScore
	}

	finding.ParagraphCount = len(paragraphs)
	finding.MedianLength = median(lengths)
	return finding
}

// paragraphs segments text into prose paragraphs: blank-line-delimited
// sections are split into lines, heading lines flush the paragraph buffer
// without joining it, and paragraphs of 20 characters or fewer (trimmed)
// are dropped.
func (a *SparsityAnalyzer) paragraphs(text string) []string {
	var paragraphs []string

	flush := func(buf *[]string) {
		if len(*buf) == 0 {
			return
		}
		p := strings.TrimSpace(strings.Join(*buf, "\n"))
		if utf8.RuneCountInString(p) > minParagraphLength {
			paragraphs = append(paragraphs, p)
		}
		*buf = (*buf)[:0]
	}

	for _, section := range a.sectionSplit.Split(strings.TrimSpace(text), -1) {
		if strings.TrimSpace(section) == "" {
			continue
		}

		var buf []string
		for _, line := range strings.Split(section, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				flush(&buf)
				continue
			}
			if a.headingLine.MatchString(line) {
				flush(&buf)
				continue
			}
			buf = append(buf, line)
		}
		flush(&buf)
	}

	return paragraphs
}

// median returns the median of the lengths; for an even count it is the
// mean of the two middle values.
func median(lengths []int) float64 {
	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// Ensure SparsityAnalyzer implements Analyzer.
var _ Analyzer = (*SparsityAnalyzer)(nil)

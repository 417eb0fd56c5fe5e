package analyzer

import (
	"context"
	"strings"

	"github.com/nanalab/paperscan/internal/model"
)

// CodeBlockAnalyzer flags code in the manuscript. Finished papers
// describe algorithms in prose or pseudocode environments; fenced and
// inline code are rejected outright.
type CodeBlockAnalyzer struct{}

// NewCodeBlockAnalyzer creates a CodeBlockAnalyzer.
func NewCodeBlockAnalyzer() *CodeBlockAnalyzer {
	return &CodeBlockAnalyzer{}
}

// Name returns the report section name.
func (a *CodeBlockAnalyzer) Name() string {
	return model.SectionCodeBlocks
}

// Analyze runs two passes. The first toggles fence state on lines whose
// trimmed form starts with "```" and reports each opening fence with its
// language tag. The second reports lines that contain two or more
// backticks outside of fence markers as inline code.
//
// The inline pass does not track fence state, so a backticked line
// inside a fenced block is reported as inline code in addition to the
// block's own issue. The overlap is intentional and pinned by tests:
// every backtick-bearing line is accounted for even when fences are
// unbalanced.
func (a *CodeBlockAnalyzer) Analyze(_ context.Context, doc *Document) *model.Finding {
	finding := model.NewFinding()
	lines := strings.Split(doc.Text, "\n")

	inCodeBlock := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "```") {
			continue
		}
		if !inCodeBlock {
			inCodeBlock = true
			blockType := strings.TrimSpace(trimmed[3:])
			if blockType == "" {
				blockType = "code"
			}
			finding.AddIssuef("line %d: %s code block found, papers must not contain code blocks", i+1, blockType)
		} else {
			inCodeBlock = false
		}
	}

	for i, line := range lines {
		if !strings.Contains(line, "`") || strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		if strings.Count(line, "`") >= 2 {
			finding.AddIssuef("line %d: inline code found, papers must not contain code", i+1)
		}
	}

	return finding
}

// Ensure CodeBlockAnalyzer implements Analyzer.
var _ Analyzer = (*CodeBlockAnalyzer)(nil)

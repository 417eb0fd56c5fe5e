package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCitationAnalyzerName(t *testing.T) {
	t.Parallel()

	if got := NewCitationAnalyzer().Name(); got != "citations" {
		t.Errorf("unexpected name: %q", got)
	}
}

// TestCitationNoCitations verifies the short-circuit: a document without
// [@key] markers passes even when it contains odd bracketed spans.
func TestCitationNoCitations(t *testing.T) {
	t.Parallel()

	text := "some text with [a strange bracket] but no citations"

	finding := NewCitationAnalyzer().Analyze(context.Background(), &Document{Text: text})

	if finding.HasIssues {
		t.Errorf("expected no issues, got %v", finding.Issues)
	}
	if finding.CitationsFound != 0 || finding.UniqueCitations != 0 {
		t.Errorf("expected zero counts, got %d/%d", finding.CitationsFound, finding.UniqueCitations)
	}
}

// TestCitationCounting verifies total and unique citation counts.
func TestCitationCounting(t *testing.T) {
	t.Parallel()

	text := "As shown in [@smith2020] and [@jones2021], and again [@smith2020]."

	finding := NewCitationAnalyzer().Analyze(context.Background(), &Document{Text: text})

	if finding.CitationsFound != 3 {
		t.Errorf("expected 3 citations, got %d", finding.CitationsFound)
	}
	if finding.UniqueCitations != 2 {
		t.Errorf("expected 2 unique citations, got %d", finding.UniqueCitations)
	}
	if finding.HasIssues {
		t.Errorf("expected no issues without a bibliography, got %v", finding.Issues)
	}
}

// TestCitationNonStandardFormat verifies malformed bracket detection and
// its exemptions.
func TestCitationNonStandardFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantIssue string
	}{
		{
			name:      "plain bracket flagged",
			text:      "cited as [Smith 2020] next to [@ok2021]",
			wantIssue: "non-standard citation format: [Smith 2020], use [@key] format",
		},
		{
			name:      "numeric bracket exempt",
			text:      "manual numbering [12] next to [@ok2021]",
			wantIssue: "",
		},
		{
			name:      "http bracket exempt",
			text:      "see [https://example.org] next to [@ok2021]",
			wantIssue: "",
		},
		{
			name:      "image alt text exempt",
			text:      "![figure one](/abs/fig.png) next to [@ok2021]",
			wantIssue: "",
		},
		{
			name:      "empty bracket flagged",
			text:      "empty [] next to [@ok2021]",
			wantIssue: "non-standard citation format: [], use [@key] format",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			finding := NewCitationAnalyzer().Analyze(context.Background(), &Document{Text: tt.text})

			if tt.wantIssue == "" {
				if finding.HasIssues {
					t.Errorf("expected no issues, got %v", finding.Issues)
				}
				return
			}
			if len(finding.Issues) != 1 || finding.Issues[0] != tt.wantIssue {
				t.Errorf("expected [%q], got %v", tt.wantIssue, finding.Issues)
			}
		})
	}
}

// TestCitationBibliographyLookup verifies missing-key detection against
// a parsed bibliography, including duplicate citations producing
// duplicate issues.
func TestCitationBibliographyLookup(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Text:            "see [@example2023], [@nonexistent] and [@nonexistent] again",
		HasBibliography: true,
		BibKeys:         map[string]bool{"example2023": true, "real2020": true},
	}

	finding := NewCitationAnalyzer().Analyze(context.Background(), doc)

	want := []string{
		"citation [@nonexistent] not found in the bibliography",
		"citation [@nonexistent] not found in the bibliography",
	}
	if len(finding.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", finding.Issues)
	}
	for i, issue := range finding.Issues {
		if issue != want[i] {
			t.Errorf("issue %d: expected %q, got %q", i, want[i], issue)
		}
	}
	if finding.CitationsFound != 3 || finding.UniqueCitations != 2 {
		t.Errorf("unexpected counts: %d/%d", finding.CitationsFound, finding.UniqueCitations)
	}
}

// TestCitationBibliographyParseError verifies a parse failure is a
// single issue, not a per-citation cascade.
func TestCitationBibliographyParseError(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Text:            "see [@a] and [@b]",
		HasBibliography: true,
		BibErr:          errors.New("line 3: expected '{' after entry type"),
	}

	finding := NewCitationAnalyzer().Analyze(context.Background(), doc)

	if len(finding.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", finding.Issues)
	}
	if !strings.Contains(finding.Issues[0], "failed to read the bibliography file") {
		t.Errorf("unexpected issue: %q", finding.Issues[0])
	}
}

// TestCitationMissingBibliographySkipsLookup verifies a bibliography
// path that does not exist disables key validation here; the
// bibliography check owns that failure.
func TestCitationMissingBibliographySkipsLookup(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Text:                "see [@orphan]",
		HasBibliography:     true,
		BibliographyMissing: true,
	}

	finding := NewCitationAnalyzer().Analyze(context.Background(), doc)

	if finding.HasIssues {
		t.Errorf("expected no issues, got %v", finding.Issues)
	}
}

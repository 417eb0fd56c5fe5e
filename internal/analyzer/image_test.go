package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImageAnalyzerName(t *testing.T) {
	t.Parallel()

	if got := NewImageAnalyzer().Name(); got != "images" {
		t.Errorf("unexpected name: %q", got)
	}
}

// TestImageFirstFailureWins verifies each reference produces at most one
// issue, from the first failing check.
func TestImageFirstFailureWins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantPart string
	}{
		{
			name:     "network link",
			text:     "![diagram](https://example.org/fig.png)",
			wantPart: "network link",
		},
		{
			name:     "insecure network link",
			text:     "![diagram](http://example.org/fig.png)",
			wantPart: "network link",
		},
		{
			name:     "relative path",
			text:     "![diagram](figures/fig.png)",
			wantPart: "relative path",
		},
		{
			name:     "absolute path missing file",
			text:     "![diagram](/nonexistent/path/fig.png)",
			wantPart: "image file does not exist: /nonexistent/path/fig.png",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			finding := NewImageAnalyzer().Analyze(context.Background(), &Document{Text: tt.text})

			if len(finding.Issues) != 1 {
				t.Fatalf("expected exactly 1 issue, got %v", finding.Issues)
			}
			if !strings.Contains(finding.Issues[0], tt.wantPart) {
				t.Errorf("expected issue containing %q, got %q", tt.wantPart, finding.Issues[0])
			}
			if finding.ImagesFound != 1 {
				t.Errorf("expected 1 image found, got %d", finding.ImagesFound)
			}
		})
	}
}

// TestImageValidLocalFile verifies a well-formed absolute reference to an
// existing file passes without issues.
func TestImageValidLocalFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	imgPath := filepath.Join(dir, "fig.png")
	if err := os.WriteFile(imgPath, []byte("not really a png"), 0o600); err != nil {
		t.Fatal(err)
	}

	finding := NewImageAnalyzer().Analyze(context.Background(), &Document{
		Text: "![diagram](" + imgPath + ")",
	})

	if finding.HasIssues {
		t.Errorf("expected no issues, got %v", finding.Issues)
	}
	if finding.ImagesFound != 1 {
		t.Errorf("expected 1 image found, got %d", finding.ImagesFound)
	}
}

// TestImageEXIFCheckTolerant verifies the metadata pass ignores files
// without parsable EXIF data instead of flagging them.
func TestImageEXIFCheckTolerant(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	imgPath := filepath.Join(dir, "fig.png")
	if err := os.WriteFile(imgPath, []byte("no exif payload here"), 0o600); err != nil {
		t.Fatal(err)
	}

	finding := NewImageAnalyzer(WithEXIFCheck(true)).Analyze(context.Background(), &Document{
		Text: "![diagram](" + imgPath + ")",
	})

	if finding.HasIssues {
		t.Errorf("expected no issues for an image without EXIF data, got %v", finding.Issues)
	}
}

// TestImageMultipleReferences verifies counting and per-reference
// isolation across a mixed document.
func TestImageMultipleReferences(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	goodPath := filepath.Join(dir, "ok.png")
	if err := os.WriteFile(goodPath, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	text := "![a](https://example.org/a.png)\n\n![b](" + goodPath + ")\n\n![c](rel/c.png)"

	finding := NewImageAnalyzer().Analyze(context.Background(), &Document{Text: text})

	if finding.ImagesFound != 3 {
		t.Errorf("expected 3 images found, got %d", finding.ImagesFound)
	}
	if len(finding.Issues) != 2 {
		t.Errorf("expected 2 issues, got %v", finding.Issues)
	}
}

// TestImageNoReferences verifies the empty pass path.
func TestImageNoReferences(t *testing.T) {
	t.Parallel()

	finding := NewImageAnalyzer().Analyze(context.Background(), &Document{Text: "plain prose, no images"})

	if finding.HasIssues {
		t.Errorf("expected no issues, got %v", finding.Issues)
	}
	if finding.ImagesFound != 0 {
		t.Errorf("expected 0 images, got %d", finding.ImagesFound)
	}
}

package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestProcessBatchOrderAndIsolation verifies reports come back in
// request order and that a missing document fails alone.
func TestProcessBatchOrderAndIsolation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.md")
	third := filepath.Join(dir, "third.md")
	for _, path := range []string{first, third} {
		if err := os.WriteFile(path, []byte("prose content for a small manuscript body"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	missing := filepath.Join(dir, "missing.md")

	factory := func() *Engine { return quietEngine() }
	bp := NewBatchProcessor(factory,
		WithBatchLogger(discardLogger()),
		WithBatchConcurrency(2),
	)

	reports, err := bp.ProcessBatch(context.Background(), []VerifyRequest{
		{DocumentPath: first},
		{DocumentPath: missing},
		{DocumentPath: third},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].DocumentPath != first || reports[2].DocumentPath != third {
		t.Error("reports are not in request order")
	}
	if reports[1].Error == "" {
		t.Error("expected an error recorded for the missing document")
	}
	if reports[0].Error != "" || reports[2].Error != "" {
		t.Error("healthy documents must not carry errors")
	}
	if len(reports[0].Results) != 7 {
		t.Errorf("expected 7 sections in a completed report, got %d", len(reports[0].Results))
	}
}

// TestProcessBatchEmpty verifies the no-op path.
func TestProcessBatchEmpty(t *testing.T) {
	t.Parallel()

	bp := NewBatchProcessor(func() *Engine { return quietEngine() },
		WithBatchLogger(discardLogger()))

	reports, err := bp.ProcessBatch(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 0 {
		t.Errorf("expected no reports, got %d", len(reports))
	}
}

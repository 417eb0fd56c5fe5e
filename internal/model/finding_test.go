package model

import "testing"

// TestFindingInvariant verifies that HasIssues tracks the issue list.
func TestFindingInvariant(t *testing.T) {
	t.Parallel()

	t.Run("new finding has no issues", func(t *testing.T) {
		t.Parallel()
		f := NewFinding()
		if f.HasIssues {
			t.Error("expected HasIssues to be false for a new finding")
		}
		if f.Issues == nil {
			t.Error("expected Issues to be non-nil")
		}
		if f.IssueCount() != 0 {
			t.Errorf("expected 0 issues, got %d", f.IssueCount())
		}
	})

	t.Run("AddIssue sets HasIssues", func(t *testing.T) {
		t.Parallel()
		f := NewFinding()
		f.AddIssue("something is wrong")
		if !f.HasIssues {
			t.Error("expected HasIssues to be true after AddIssue")
		}
		if f.IssueCount() != 1 {
			t.Errorf("expected 1 issue, got %d", f.IssueCount())
		}
	})

	t.Run("AddIssuef formats the issue", func(t *testing.T) {
		t.Parallel()
		f := NewFinding()
		f.AddIssuef("line %d: problem %q", 3, "x")
		want := `line 3: problem "x"`
		if f.Issues[0] != want {
			t.Errorf("expected %q, got %q", want, f.Issues[0])
		}
	})
}

package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nanalab/paperscan/internal/model"
)

// DefaultLookupConcurrency bounds the number of in-flight bibliography
// lookups. The search API rate-limits aggressively, so a small bound
// keeps large bibliographies from tripping it.
const DefaultLookupConcurrency = 3

// Searcher looks up a publication by title and author string. The
// result carries its own success and error state; implementations never
// return a Go error so that one failed lookup cannot abort the batch.
type Searcher interface {
	Search(ctx context.Context, title, authors string) model.LookupResult
}

// BibliographyAnalyzer corroborates bibliography entries against an
// external search index. Entries whose titles cannot be found are
// flagged as possibly fabricated.
type BibliographyAnalyzer struct {
	searcher    Searcher
	concurrency int
}

// BibliographyOption configures a BibliographyAnalyzer.
type BibliographyOption func(*BibliographyAnalyzer)

// WithLookupConcurrency bounds the number of concurrent lookups.
// Non-positive values fall back to DefaultLookupConcurrency.
func WithLookupConcurrency(n int) BibliographyOption {
	return func(a *BibliographyAnalyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewBibliographyAnalyzer creates a BibliographyAnalyzer that verifies
// entries through the given searcher.
func NewBibliographyAnalyzer(searcher Searcher, opts ...BibliographyOption) *BibliographyAnalyzer {
	a := &BibliographyAnalyzer{
		searcher:    searcher,
		concurrency: DefaultLookupConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the report section name.
func (a *BibliographyAnalyzer) Name() string {
	return model.SectionBibReferences
}

// entryOutcome is the per-entry lookup verdict, collected by index so
// that issues keep bibliography file order regardless of which lookup
// finishes first.
type entryOutcome struct {
	verified bool
	issue    string
}

// Analyze verifies every bibliography entry. Lookups run concurrently
// under a fixed bound; each entry's failure is isolated to its own
// issue. Entries without a title are flagged without being looked up.
func (a *BibliographyAnalyzer) Analyze(ctx context.Context, doc *Document) *model.Finding {
	finding := model.NewFinding()

	if doc.BibliographyMissing {
		finding.AddIssuef("bibliography file does not exist: %s", doc.BibliographyPath)
		return finding
	}
	if doc.BibErr != nil {
		finding.AddIssuef("failed to parse the bibliography file: %s", doc.BibErr)
		return finding
	}

	outcomes := make([]entryOutcome, len(doc.BibEntries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, entry := range doc.BibEntries {
		i, entry := i, entry
		g.Go(func() error {
			outcomes[i] = a.verifyEntry(gctx, entry)
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	for _, outcome := range outcomes {
		if outcome.verified {
			finding.VerifiedCount++
		}
		if outcome.issue != "" {
			finding.AddIssue(outcome.issue)
		}
	}
	finding.TotalCount = len(doc.BibEntries)
	return finding
}

// verifyEntry looks up one entry and classifies the result.
func (a *BibliographyAnalyzer) verifyEntry(ctx context.Context, entry model.BibliographyEntry) entryOutcome {
	if entry.Title == "" {
		return entryOutcome{issue: "bibliography entry " + entry.Key + " is missing a title"}
	}

	result := a.searcher.Search(ctx, entry.Title, entry.Author)
	switch {
	case !result.Success:
		return entryOutcome{issue: "verification of entry " + entry.Key + " failed: " + result.Error}
	case !result.Found:
		return entryOutcome{issue: "entry " + entry.Key + " could not be corroborated and may not exist: " + entry.Title}
	default:
		return entryOutcome{verified: true}
	}
}

// Ensure BibliographyAnalyzer implements Analyzer.
var _ Analyzer = (*BibliographyAnalyzer)(nil)

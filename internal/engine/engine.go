package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nanalab/paperscan/internal/analyzer"
	"github.com/nanalab/paperscan/internal/bibtex"
	"github.com/nanalab/paperscan/internal/model"
	"github.com/nanalab/paperscan/internal/websearch"
)

// ErrDocumentNotFound is returned when the manuscript path does not exist.
var ErrDocumentNotFound = errors.New("manuscript file does not exist")

// Engine runs the full analyzer set over a manuscript and aggregates
// the findings into one report.
//
// Design decision: The Engine verifies pre-loaded content and never
// touches the filesystem for the manuscript or bibliography; VerifyFiles
// is the only file-aware entry point. This keeps Verify deterministic
// and trivially testable with in-memory documents.
type Engine struct {
	// logger is used for structured run logging.
	logger *slog.Logger

	// searcher performs bibliography lookups. Defaults to a Serper
	// client without a credential, whose lookups fail per entry with a
	// descriptive error instead of aborting the run.
	searcher analyzer.Searcher

	// minReferences is the unique citation floor for the reference
	// count check.
	minReferences int

	// exifCheck enables image metadata inspection.
	exifCheck bool

	// only restricts the run to the named sections. Empty means all.
	only map[string]bool

	// lookupConcurrency bounds concurrent bibliography lookups.
	lookupConcurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSearcher sets the bibliography lookup backend.
func WithSearcher(searcher analyzer.Searcher) Option {
	return func(e *Engine) {
		if searcher != nil {
			e.searcher = searcher
		}
	}
}

// WithMinReferences sets the unique citation floor. Non-positive values
// keep the default.
func WithMinReferences(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minReferences = n
		}
	}
}

// WithEXIFCheck enables image metadata inspection.
func WithEXIFCheck(enabled bool) Option {
	return func(e *Engine) {
		e.exifCheck = enabled
	}
}

// WithOnly restricts the run to the named report sections. Unknown
// names are ignored; an empty list means run everything.
func WithOnly(sections []string) Option {
	return func(e *Engine) {
		if len(sections) == 0 {
			return
		}
		e.only = make(map[string]bool, len(sections))
		for _, s := range sections {
			e.only[s] = true
		}
	}
}

// WithLookupConcurrency bounds concurrent bibliography lookups.
func WithLookupConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.lookupConcurrency = n
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		minReferences:     analyzer.DefaultMinReferences,
		lookupConcurrency: analyzer.DefaultLookupConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.searcher == nil {
		e.searcher = websearch.NewClient("")
	}
	return e
}

// analyzers assembles the analyzer set for one run. The bibliography
// check is included only when a bibliography was supplied.
func (e *Engine) analyzers(doc *analyzer.Document) []analyzer.Analyzer {
	imageOpts := []analyzer.ImageOption{}
	if e.exifCheck {
		imageOpts = append(imageOpts, analyzer.WithEXIFCheck(true))
	}

	set := []analyzer.Analyzer{
		analyzer.NewSparsityAnalyzer(),
		analyzer.NewStereotypeAnalyzer(),
		analyzer.NewFormulaAnalyzer(),
		analyzer.NewCitationAnalyzer(),
		analyzer.NewReferenceCountAnalyzer(e.minReferences),
		analyzer.NewImageAnalyzer(imageOpts...),
		analyzer.NewCodeBlockAnalyzer(),
	}
	if doc.HasBibliography {
		set = append(set, analyzer.NewBibliographyAnalyzer(e.searcher,
			analyzer.WithLookupConcurrency(e.lookupConcurrency)))
	}

	if e.only == nil {
		return set
	}
	filtered := set[:0]
	for _, a := range set {
		if e.only[a.Name()] {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// Verify runs all applicable checks over the document and aggregates
// their findings. Checks run concurrently; a panicking check is
// contained and surfaces as a single issue in its own section.
func (e *Engine) Verify(ctx context.Context, doc *analyzer.Document) *model.VerificationReport {
	start := time.Now()
	report := model.NewVerificationReport(doc.Path, doc.Text)
	report.BibliographyPath = doc.BibliographyPath

	set := e.analyzers(doc)
	e.logger.Info("starting verification",
		"document", doc.Path,
		"checks", len(set),
		"bibliography", doc.HasBibliography,
	)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, a := range set {
		a := a
		g.Go(func() error {
			finding := e.runAnalyzer(gctx, a, doc)
			mu.Lock()
			report.Add(a.Name(), finding)
			mu.Unlock()
			return nil
		})
	}
	// Analyzers never return errors; Wait only synchronizes.
	_ = g.Wait()

	e.logger.Info("verification complete",
		"document", doc.Path,
		"sections_with_issues", report.SectionsWithIssues(),
		"total_issues", report.TotalIssues(),
		"elapsed", time.Since(start),
	)
	return report
}

// runAnalyzer executes one check, containing panics. A crashed check
// must not take its siblings down; it reports itself as a failed
// section instead.
func (e *Engine) runAnalyzer(ctx context.Context, a analyzer.Analyzer, doc *analyzer.Document) (finding *model.Finding) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("check panicked",
				"check", a.Name(),
				"panic", r,
			)
			finding = model.NewFinding()
			finding.AddIssuef("check failed: %v", r)
		}
	}()
	return a.Analyze(ctx, doc)
}

// VerifyFiles reads the manuscript and bibliography from disk, then
// verifies the content. A missing manuscript is a hard error; a missing
// or unparsable bibliography degrades to findings so the text checks
// still run.
func (e *Engine) VerifyFiles(ctx context.Context, documentPath, bibliographyPath string) (*model.VerificationReport, error) {
	content, err := os.ReadFile(documentPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, documentPath)
		}
		return nil, fmt.Errorf("failed to read manuscript %s: %w", documentPath, err)
	}

	doc := &analyzer.Document{
		Text: string(content),
		Path: documentPath,
	}

	if bibliographyPath != "" {
		doc.HasBibliography = true
		doc.BibliographyPath = bibliographyPath

		bibContent, err := os.ReadFile(bibliographyPath)
		switch {
		case os.IsNotExist(err):
			doc.BibliographyMissing = true
		case err != nil:
			doc.BibErr = err
		default:
			entries, parseErr := bibtex.Parse(string(bibContent))
			if parseErr != nil {
				doc.BibErr = parseErr
			} else {
				doc.BibEntries = entries
				doc.BibKeys = bibtex.KeySet(entries)
			}
		}
	}

	return e.Verify(ctx, doc), nil
}

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nanalab/paperscan/internal/model"
)

// Default configuration values.
const (
	// DefaultTimeout bounds one bibliography lookup request. Search API
	// calls normally finish within a few seconds; 30 seconds keeps slow
	// responses from looking like hard failures without hanging a run.
	DefaultTimeout = 30 * time.Second

	// DefaultMinReferences is the unique citation floor expected of a
	// full manuscript.
	DefaultMinReferences = 15

	// DefaultLookupConcurrency bounds concurrent bibliography lookups.
	// The search API rate-limits aggressively, so the bound stays small.
	DefaultLookupConcurrency = 3

	// DefaultBatchSize is the number of manuscripts verified concurrently
	// when several are given on the command line. Verification is mostly
	// CPU-light string work plus lookup I/O, so a small bound suffices.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "paperscan"
)

// Config holds all configuration options for paperscan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Documents are the manuscript paths to verify.
	// Must contain at least one path.
	Documents []string

	// BibliographyPath is the BibTeX file checked against citations.
	// Optional; when empty the bibliography checks are skipped.
	BibliographyPath string

	// APIKey is the Serper search credential used for bibliography
	// lookups. When empty, lookups fail per entry with a descriptive
	// message instead of aborting the run.
	APIKey string

	// Timeout is the per-request timeout for bibliography lookups.
	Timeout time.Duration

	// MinReferences is the unique citation floor for the reference
	// count check.
	MinReferences int

	// LookupConcurrency bounds concurrent bibliography lookups.
	LookupConcurrency int

	// BatchSize is the number of manuscripts verified concurrently.
	BatchSize int

	// EXIFCheck enables image metadata inspection.
	EXIFCheck bool

	// Only restricts the run to the named check sections.
	// Empty means run everything.
	Only []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .paperscan in the current
	// directory, the XDG config directory, and the home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, the
// reference floor). This also serves as documentation of the defaults.
func NewConfig() *Config {
	return &Config{
		Timeout:           DefaultTimeout,
		MinReferences:     DefaultMinReferences,
		LookupConcurrency: DefaultLookupConcurrency,
		BatchSize:         DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for paperscan.
// On Linux: ~/.local/share/paperscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for paperscan.
// On Linux: ~/.config/paperscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for paperscan.
// On Linux: ~/.cache/paperscan
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any verification begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Documents) == 0 {
		return ErrNoDocument
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MinReferences <= 0 {
		return ErrInvalidMinReferences
	}

	if c.LookupConcurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	known := make(map[string]bool)
	for _, section := range model.SectionOrder() {
		known[section] = true
	}
	for _, section := range c.Only {
		if !known[section] {
			return fmt.Errorf("%w: %q", ErrUnknownSection, section)
		}
	}

	return nil
}

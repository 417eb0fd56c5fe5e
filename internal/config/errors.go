package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoDocument is returned when no manuscript path is specified.
	ErrNoDocument = errors.New("no document specified: provide at least one manuscript path")

	// ErrInvalidTimeout is returned when the lookup timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMinReferences is returned when the reference floor is not positive.
	ErrInvalidMinReferences = errors.New("invalid minimum references: must be positive")

	// ErrInvalidConcurrency is returned when the lookup concurrency is not positive.
	// Zero concurrency would mean no lookups ever complete.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no documents are ever verified.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrUnknownSection is returned when --only names a section that does
	// not exist.
	ErrUnknownSection = errors.New("unknown check section")
)

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nanalab/paperscan/internal/config"
	"github.com/nanalab/paperscan/internal/engine"
	"github.com/nanalab/paperscan/internal/log"
	"github.com/nanalab/paperscan/internal/model"
	"github.com/nanalab/paperscan/internal/report"
	"github.com/nanalab/paperscan/internal/websearch"
)

// apiKeyEnvVar is the environment variable consulted when --api-key is
// not given. Credential discovery happens only here in the CLI layer;
// the engine and analyzers take the key as an explicit argument.
const apiKeyEnvVar = "SERPER_API_KEY"

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [manuscript...]",
		Short: "Verify Markdown manuscripts for formatting and content problems",
		Long: `Verify runs all checks over one or more Markdown manuscripts.

Checks performed:
- Sparse, list-driven prose instead of continuous paragraphs
- Boilerplate phrasing and templated bold headings
- Greek letters, math symbols, and expressions outside LaTeX delimiters
- Citation marker format and resolution against the bibliography
- Unique reference count against a configurable floor
- Image references (must be absolute local paths to existing files)
- Fenced and inline code (papers must not contain code)
- Bibliography entries corroborated against a web search index

Examples:
  # Verify a single manuscript
  paperscan verify paper.md

  # Verify with bibliography corroboration
  paperscan verify --bib refs.bib --api-key $SERPER_API_KEY paper.md

  # Restrict to specific checks
  paperscan verify --only citations,code_blocks paper.md

  # Markdown report written to a file
  paperscan verify --markdown --output report.md paper.md

  # Verify several manuscripts concurrently
  paperscan verify chapter1.md chapter2.md chapter3.md

Configuration file (.paperscan) example:
  apiKey: "your-serper-key"
  minReferences: 20
  bibliography: refs.bib`,
		Args: cobra.ArbitraryArgs,
		RunE: runVerifyCmd,
	}

	// Verification behavior flags
	cmd.Flags().StringP("bib", "b", "",
		"BibTeX bibliography file checked against citations")
	cmd.Flags().StringP("api-key", "k", "",
		"Serper API key for bibliography lookups (default: $"+apiKeyEnvVar+")")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each bibliography lookup request")
	cmd.Flags().IntP("min-references", "r", config.DefaultMinReferences,
		"Minimum number of unique citations expected")
	cmd.Flags().Int("concurrency", config.DefaultLookupConcurrency,
		"Maximum concurrent bibliography lookups")
	cmd.Flags().Int("batch", config.DefaultBatchSize,
		"Number of manuscripts verified concurrently")
	cmd.Flags().Bool("exif", false,
		"Inspect image EXIF metadata for identifying information")
	cmd.Flags().StringSlice("only", nil,
		"Run only the named checks (e.g. citations,code_blocks)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .paperscan in current, XDG config, or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runVerifyCmd executes the verify command.
func runVerifyCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Secure logging keeps the API credential out of verbose output.
	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runVerify(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags, the environment,
// and the configuration file. Flags win over the environment, which wins
// over the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.BibliographyPath, err = cmd.Flags().GetString("bib")
	if err != nil {
		return nil, err
	}

	cfg.APIKey, err = cmd.Flags().GetString("api-key")
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(apiKeyEnvVar)
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MinReferences, err = cmd.Flags().GetInt("min-references")
	if err != nil {
		return nil, err
	}

	cfg.LookupConcurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.EXIFCheck, err = cmd.Flags().GetBool("exif")
	if err != nil {
		return nil, err
	}

	cfg.Only, err = cmd.Flags().GetStringSlice("only")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load persistent preferences. An explicitly specified config file
	// must exist; an implicit one is optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Documents = args

	return cfg, nil
}

// newEngineFactory builds the per-document engine constructor from the
// configuration.
func newEngineFactory(cfg *config.Config, logger *slog.Logger) func() *engine.Engine {
	searcher := websearch.NewClient(cfg.APIKey,
		websearch.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))

	return func() *engine.Engine {
		return engine.New(
			engine.WithLogger(logger),
			engine.WithSearcher(searcher),
			engine.WithMinReferences(cfg.MinReferences),
			engine.WithEXIFCheck(cfg.EXIFCheck),
			engine.WithOnly(cfg.Only),
			engine.WithLookupConcurrency(cfg.LookupConcurrency),
		)
	}
}

// runVerify executes the verification and writes the reports.
func runVerify(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	factory := newEngineFactory(cfg, logger)

	var reports []*model.VerificationReport
	if len(cfg.Documents) == 1 {
		r, err := factory().VerifyFiles(ctx, cfg.Documents[0], cfg.BibliographyPath)
		if err != nil {
			return err
		}
		reports = append(reports, r)
	} else {
		requests := make([]engine.VerifyRequest, 0, len(cfg.Documents))
		for _, doc := range cfg.Documents {
			requests = append(requests, engine.VerifyRequest{
				DocumentPath:     doc,
				BibliographyPath: cfg.BibliographyPath,
			})
		}

		bp := engine.NewBatchProcessor(factory,
			engine.WithBatchLogger(logger),
			engine.WithBatchConcurrency(cfg.BatchSize),
		)
		var err error
		reports, err = bp.ProcessBatch(ctx, requests)
		if err != nil {
			return err
		}
	}

	writer, cleanup, err := newReportWriter(cfg, stdout)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, r := range reports {
		if _, err := writer.Write(r); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// newReportWriter selects the report format and destination from the
// configuration. The cleanup function closes the output file, if any.
func newReportWriter(cfg *config.Config, stdout io.Writer) (report.Writer, func(), error) {
	output := stdout
	cleanup := func() {}

	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create report file: %w", err)
		}
		output = f
		cleanup = func() { _ = f.Close() }
	}

	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint()), cleanup, nil
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output), cleanup, nil
	default:
		return report.NewSimpleWriter(output), cleanup, nil
	}
}

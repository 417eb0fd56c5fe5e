// Package main provides the entry point for the paperscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for paperscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paperscan",
		Short: "Verification tool for academic Markdown manuscripts",
		Long: `paperscan verifies academic manuscripts written in Markdown.

It checks for sparse list-driven prose, boilerplate phrasing, math
notation outside LaTeX delimiters, malformed citations, broken image
references, embedded code, and bibliography entries that cannot be
corroborated against a web search index.

Bibliography corroboration uses the Serper search API; provide a key
via --api-key, the SERPER_API_KEY environment variable, or a
.paperscan configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewVerifyCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewVerifyCmd tests the verify command creation.
func TestNewVerifyCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVerifyCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "verify [manuscript...]" {
			t.Errorf("expected use 'verify [manuscript...]', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name      string
			shorthand string
			defValue  string
		}{
			{name: "bib", shorthand: "b", defValue: ""},
			{name: "api-key", shorthand: "k", defValue: ""},
			{name: "timeout", shorthand: "t", defValue: "30s"},
			{name: "min-references", shorthand: "r", defValue: "15"},
			{name: "concurrency", shorthand: "", defValue: "3"},
			{name: "batch", shorthand: "", defValue: "4"},
			{name: "exif", shorthand: "", defValue: "false"},
			{name: "config", shorthand: "c", defValue: ""},
			{name: "json", shorthand: "j", defValue: "false"},
			{name: "markdown", shorthand: "m", defValue: "false"},
			{name: "output", shorthand: "o", defValue: ""},
		}

		for _, tt := range tests {
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Errorf("expected flag %q to exist", tt.name)
				continue
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("flag %q: expected shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("flag %q: expected default %q, got %q", tt.name, tt.defValue, flag.DefValue)
			}
		}
	})
}

// TestBuildConfig tests configuration assembly from flags, environment,
// and the configuration file.
func TestBuildConfig(t *testing.T) {
	t.Run("args become documents", func(t *testing.T) {
		t.Setenv(apiKeyEnvVar, "")

		cmd := NewVerifyCmd()
		cfg, err := buildConfig(cmd, []string{"chapter1.md", "chapter2.md"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Documents) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(cfg.Documents))
		}
		if cfg.Documents[0] != "chapter1.md" || cfg.Documents[1] != "chapter2.md" {
			t.Errorf("unexpected documents: %v", cfg.Documents)
		}
	})

	t.Run("api key falls back to environment", func(t *testing.T) {
		t.Setenv(apiKeyEnvVar, "env-key")

		cmd := NewVerifyCmd()
		cfg, err := buildConfig(cmd, []string{"paper.md"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.APIKey != "env-key" {
			t.Errorf("expected API key from environment, got %q", cfg.APIKey)
		}
	})

	t.Run("api key flag wins over environment", func(t *testing.T) {
		t.Setenv(apiKeyEnvVar, "env-key")

		cmd := NewVerifyCmd()
		if err := cmd.Flags().Set("api-key", "flag-key"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"paper.md"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.APIKey != "flag-key" {
			t.Errorf("expected API key from flag, got %q", cfg.APIKey)
		}
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		t.Setenv(apiKeyEnvVar, "")

		cmd := NewVerifyCmd()
		missing := filepath.Join(t.TempDir(), "no-such-config.yaml")
		if err := cmd.Flags().Set("config", missing); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if _, err := buildConfig(cmd, []string{"paper.md"}); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("config file fills defaults", func(t *testing.T) {
		t.Setenv(apiKeyEnvVar, "")

		configPath := filepath.Join(t.TempDir(), ".paperscan")
		content := "apiKey: file-key\nminReferences: 25\n"
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewVerifyCmd()
		if err := cmd.Flags().Set("config", configPath); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"paper.md"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.APIKey != "file-key" {
			t.Errorf("expected API key from config file, got %q", cfg.APIKey)
		}
		if cfg.MinReferences != 25 {
			t.Errorf("expected min references 25, got %d", cfg.MinReferences)
		}
	})

	t.Run("flags win over config file", func(t *testing.T) {
		t.Setenv(apiKeyEnvVar, "")

		configPath := filepath.Join(t.TempDir(), ".paperscan")
		content := "apiKey: file-key\nminReferences: 25\n"
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewVerifyCmd()
		if err := cmd.Flags().Set("config", configPath); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("api-key", "flag-key"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("min-references", "40"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"paper.md"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.APIKey != "flag-key" {
			t.Errorf("expected API key from flag, got %q", cfg.APIKey)
		}
		if cfg.MinReferences != 40 {
			t.Errorf("expected min references 40, got %d", cfg.MinReferences)
		}
	})
}

// TestGetVerboseFlag tests verbose flag resolution.
func TestGetVerboseFlag(t *testing.T) {
	t.Parallel()

	t.Run("default is false", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		if getVerboseFlag(root) {
			t.Error("expected verbose to default to false")
		}
	})

	t.Run("flag set to true", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		if err := root.PersistentFlags().Set("verbose", "true"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if !getVerboseFlag(root) {
			t.Error("expected verbose to be true")
		}
	})
}

// TestVerifyCmdHelp ensures the long help documents the checks.
func TestVerifyCmdHelp(t *testing.T) {
	t.Parallel()

	cmd := NewVerifyCmd()
	if !strings.Contains(cmd.Long, "Checks performed:") {
		t.Error("expected long description to list the checks")
	}
}

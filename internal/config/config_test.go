package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	c := NewConfig()
	c.Documents = []string{"paper.md"}
	return c
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid defaults", mutate: func(*Config) {}, wantErr: nil},
		{name: "no documents", mutate: func(c *Config) { c.Documents = nil }, wantErr: ErrNoDocument},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "zero min references", mutate: func(c *Config) { c.MinReferences = 0 }, wantErr: ErrInvalidMinReferences},
		{name: "zero concurrency", mutate: func(c *Config) { c.LookupConcurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{name: "zero batch size", mutate: func(c *Config) { c.BatchSize = 0 }, wantErr: ErrInvalidBatchSize},
		{
			name:    "conflicting formats",
			mutate:  func(c *Config) { c.JSONReport = true; c.MarkdownReport = true },
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "unknown only section",
			mutate:  func(c *Config) { c.Only = []string{"nonexistent_check"} },
			wantErr: ErrUnknownSection,
		},
		{
			name:   "known only sections",
			mutate: func(c *Config) { c.Only = []string{"citations", "code_blocks"} },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()

	if c.Timeout != DefaultTimeout {
		t.Errorf("unexpected timeout: %v", c.Timeout)
	}
	if c.MinReferences != DefaultMinReferences {
		t.Errorf("unexpected min references: %d", c.MinReferences)
	}
	if c.LookupConcurrency != DefaultLookupConcurrency {
		t.Errorf("unexpected concurrency: %d", c.LookupConcurrency)
	}
	if c.BatchSize != DefaultBatchSize {
		t.Errorf("unexpected batch size: %d", c.BatchSize)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile("/nonexistent/.paperscan")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := "apiKey: test-key\nminReferences: 20\nbibliography: refs.bib\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if cf.APIKey != "test-key" {
			t.Errorf("unexpected api key: %q", cf.APIKey)
		}
		if cf.MinReferences != 20 {
			t.Errorf("unexpected min references: %d", cf.MinReferences)
		}
		if want := filepath.Join(dir, "refs.bib"); cf.Bibliography != want {
			t.Errorf("expected bibliography resolved to %q, got %q", want, cf.Bibliography)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("apiKey: [unclosed"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("fills defaults", func(t *testing.T) {
		t.Parallel()

		c := validConfig()
		cf := &File{
			APIKey:            "file-key",
			MinReferences:     25,
			LookupConcurrency: 5,
			EXIFCheck:         true,
			Bibliography:      "/papers/refs.bib",
		}
		cf.Apply(c)

		if c.APIKey != "file-key" {
			t.Errorf("unexpected api key: %q", c.APIKey)
		}
		if c.MinReferences != 25 {
			t.Errorf("unexpected min references: %d", c.MinReferences)
		}
		if c.LookupConcurrency != 5 {
			t.Errorf("unexpected concurrency: %d", c.LookupConcurrency)
		}
		if !c.EXIFCheck {
			t.Error("expected EXIF check enabled")
		}
		if c.BibliographyPath != "/papers/refs.bib" {
			t.Errorf("unexpected bibliography: %q", c.BibliographyPath)
		}
	})

	t.Run("flags win", func(t *testing.T) {
		t.Parallel()

		c := validConfig()
		c.APIKey = "flag-key"
		c.MinReferences = 30
		c.BibliographyPath = "/flag/refs.bib"

		cf := &File{APIKey: "file-key", MinReferences: 25, Bibliography: "/file/refs.bib"}
		cf.Apply(c)

		if c.APIKey != "flag-key" {
			t.Errorf("file overrode the flag api key: %q", c.APIKey)
		}
		if c.MinReferences != 30 {
			t.Errorf("file overrode the flag min references: %d", c.MinReferences)
		}
		if c.BibliographyPath != "/flag/refs.bib" {
			t.Errorf("file overrode the flag bibliography: %q", c.BibliographyPath)
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path exists", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yml")
		if err := os.WriteFile(path, []byte("apiKey: k\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile("/nonexistent/custom.yml"); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".paperscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .paperscan configuration file.
// It holds persistent preferences so that per-project defaults don't have
// to be repeated on every invocation; CLI flags always win over the file.
type File struct {
	// APIKey is the Serper search credential.
	APIKey string `yaml:"apiKey,omitempty"`

	// MinReferences overrides the unique citation floor.
	MinReferences int `yaml:"minReferences,omitempty"`

	// LookupConcurrency overrides the bibliography lookup bound.
	LookupConcurrency int `yaml:"lookupConcurrency,omitempty"`

	// TimeoutSeconds overrides the per-lookup timeout, in seconds.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`

	// EXIFCheck enables image metadata inspection by default.
	EXIFCheck bool `yaml:"exifCheck,omitempty"`

	// Bibliography is a default BibTeX path, resolved relative to the
	// config file's directory when not absolute.
	Bibliography string `yaml:"bibliography,omitempty"`
}

// LoadConfigFile loads preferences from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Bibliography != "" && !filepath.IsAbs(cf.Bibliography) {
		cf.Bibliography = filepath.Join(filepath.Dir(path), cf.Bibliography)
	}

	return &cf, nil
}

// Apply merges file preferences into the config. Only fields still at
// their zero or default values are overwritten, so flags keep priority.
func (cf *File) Apply(c *Config) {
	if c.APIKey == "" {
		c.APIKey = cf.APIKey
	}
	if cf.MinReferences > 0 && c.MinReferences == DefaultMinReferences {
		c.MinReferences = cf.MinReferences
	}
	if cf.LookupConcurrency > 0 && c.LookupConcurrency == DefaultLookupConcurrency {
		c.LookupConcurrency = cf.LookupConcurrency
	}
	if cf.TimeoutSeconds > 0 && c.Timeout == DefaultTimeout {
		c.Timeout = time.Duration(cf.TimeoutSeconds) * time.Second
	}
	if cf.EXIFCheck && !c.EXIFCheck {
		c.EXIFCheck = true
	}
	if c.BibliographyPath == "" {
		c.BibliographyPath = cf.Bibliography
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .paperscan in the current directory
// 3. Look for .paperscan in the XDG config directory
// 4. Look for .paperscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".importsweep"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .importsweep configuration file.
// Every field is optional; absent fields keep their defaults.
type File struct {
	// Extensions overrides the file extensions selected for analysis.
	Extensions []string `yaml:"extensions,omitempty"`

	// IgnoreDirs overrides the directory names skipped during traversal.
	IgnoreDirs []string `yaml:"ignoreDirs,omitempty"`

	// Oracle selects the usage-detection implementation.
	Oracle string `yaml:"oracle,omitempty"`

	// Preserve overrides the preserve-pattern tables.
	Preserve *PreserveTable `yaml:"preserve,omitempty"`

	// SafeRemoval overrides the safe-removal allow-list.
	SafeRemoval []string `yaml:"safeRemoval,omitempty"`

	// ProgressInterval overrides the progress reporting interval.
	ProgressInterval int `yaml:"progressInterval,omitempty"`

	// Tools overrides the external collaborator command lines.
	Tools ToolsConfig `yaml:"tools,omitempty"`
}

// ToolsConfig holds the external collaborator command lines.
type ToolsConfig struct {
	// Linter is the lenient linter argv.
	Linter []string `yaml:"linter,omitempty"`

	// Checker is the strict checker argv.
	Checker []string `yaml:"checker,omitempty"`

	// Cleanup is the external mutator argv.
	Cleanup []string `yaml:"cleanup,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether the
// config file path was explicitly specified by the user.
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

	return &cf, nil
}

// Apply overlays the file's settings onto the config. Only fields present
// in the file replace the config's values.
func (cf *File) Apply(c *Config) {
	if len(cf.Extensions) > 0 {
		c.Extensions = cf.Extensions
	}
	if len(cf.IgnoreDirs) > 0 {
		c.IgnoreDirs = cf.IgnoreDirs
	}
	if cf.Oracle != "" {
		c.Oracle = cf.Oracle
	}
	if cf.Preserve != nil {
		// Replace only the lists the file sets, so a config file can
		// override contextual patterns without losing the essential set.
		if len(cf.Preserve.Essential) > 0 {
			c.Preserve.Essential = cf.Preserve.Essential
		}
		if len(cf.Preserve.Contextual) > 0 {
			c.Preserve.Contextual = cf.Preserve.Contextual
		}
	}
	if len(cf.SafeRemoval) > 0 {
		c.SafeRemovalModules = cf.SafeRemoval
	}
	if cf.ProgressInterval > 0 {
		c.ProgressInterval = cf.ProgressInterval
	}
	if len(cf.Tools.Linter) > 0 {
		c.LinterCommand = cf.Tools.Linter
	}
	if len(cf.Tools.Checker) > 0 {
		c.CheckerCommand = cf.Tools.Checker
	}
	if len(cf.Tools.Cleanup) > 0 {
		c.CleanupCommand = cf.Tools.Cleanup
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .importsweep in the current directory
// 3. Look for .importsweep in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

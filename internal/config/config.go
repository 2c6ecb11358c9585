// =============================================================================
// C Struct to Rust Converter - Configuration Module
// =============================================================================
//
// This module loads the optional application configuration file. The
// configuration controls ambient behavior only (logging, batch discovery,
// concurrency). The rewrite rule list itself is fixed and is never read from
// configuration.
//
// CONFIGURATION FILE (structconv.yaml):
//   log_level:          debug | info | warn | error
//   log_format:         text | json
//   log_file:           path, empty for stderr
//   file_patterns:      glob patterns used by 'structconv batch'
//   max_concurrency:    number of files converted at once in batch mode
//   continue_on_error:  keep converting other files after a failure
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the slog handler: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// LogFile is the path to the log file. Logs go to stderr when empty;
	// stdout is reserved for converted output.
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// BATCH SETTINGS
	// =========================================================================

	// FilePatterns are glob patterns matched against file names in the batch
	// directory.
	// Default: ["*.h"]
	FilePatterns []string `yaml:"file_patterns"`

	// MaxConcurrency is the maximum number of files converted concurrently.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError determines whether to keep converting other files
	// after one fails.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// RETURNS:
//   - A pointer to the MainConfig struct with defaults applied.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOptional behaves like LoadMainConfig but returns the defaults when the
// file does not exist. Any other failure is still returned.
func LoadOptional(configPath string) (*MainConfig, error) {
	if configPath == "" {
		return Default(), nil
	}

	config, err := LoadMainConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// KeepGoing reports whether batch processing continues after a failure.
func (c *MainConfig) KeepGoing() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if len(config.FilePatterns) == 0 {
		config.FilePatterns = []string{"*.h"}
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	switch strings.ToLower(config.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}

	if config.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be positive, got %d", config.MaxConcurrency)
	}

	for _, pattern := range config.FilePatterns {
		if strings.ContainsRune(pattern, os.PathSeparator) {
			return fmt.Errorf("file pattern %q must not contain a path separator", pattern)
		}
	}

	return nil
}

// =============================================================================
// EFT Viewer - Configuration Module
// =============================================================================
//
// This module loads the main application configuration. The file format is
// chosen by extension:
//   - .toml          BurntSushi/toml
//   - anything else  YAML
//
// A missing configuration file is not an error when the caller asks for an
// optional load; every setting has a default.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Output formats for decode reports.
const (
	OutputText = "text"
	OutputXML  = "xml"
	OutputXLSX = "xlsx"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for EFT files when no files are named on the
	// command line.
	// Default: "./input"
	InputDir string `yaml:"input_dir" toml:"input_dir"`

	// OutputDir receives reports and run logs.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// FilePatterns are glob patterns matched against names in InputDir.
	// Default: ["*.eft", "*.EFT", "*.an2", "*.nist"]
	FilePatterns []string `yaml:"file_patterns" toml:"file_patterns"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile, when set, receives a JSON copy of every log entry.
	// Default: "" (no file)
	LogFile string `yaml:"log_file" toml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFormat is "console" or "json".
	// Default: "console"
	LogFormat string `yaml:"log_format" toml:"log_format"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFormat selects the report written per decoded file.
	// Valid values: "text" (no report file), "xml", "xlsx"
	// Default: "text"
	OutputFormat string `yaml:"output_format" toml:"output_format"`

	// OutputNameFormat defines report file names.
	// Placeholders:
	//   {name}      - Input file name without extension
	//   {uuid}      - The decode run id
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	// The extension of the output format is appended.
	// Default: "{name}_{timestamp}"
	OutputNameFormat string `yaml:"output_name_format" toml:"output_name_format"`

	// LabelsFile overrides field labels. ".xlsx" files are read as label
	// workbooks, anything else as a YAML "id: label" map.
	// Default: "" (built-in labels only)
	LabelsFile string `yaml:"labels_file" toml:"labels_file"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files decoded concurrently.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" toml:"max_concurrency"`

	// ContinueOnError keeps decoding other files after one fails.
	// Default: true
	ContinueOnError bool `yaml:"continue_on_error" toml:"continue_on_error"`

	// ProbeImages reports the format and size of every fingerprint image.
	// Default: false
	ProbeImages bool `yaml:"probe_images" toml:"probe_images"`
}

// DefaultMainConfig returns the configuration used when no file is given.
func DefaultMainConfig() *MainConfig {
	config := &MainConfig{ContinueOnError: true}
	applyMainConfigDefaults(config)
	return config
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration file.
//
// PARAMETERS:
//   - configPath: The path to a .yaml, .yml or .toml file.
//
// RETURNS:
//   - A pointer to the MainConfig struct, with defaults for absent keys.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultMainConfig()
	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(config)

	if err := validateMainConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadOptionalMainConfig is LoadMainConfig, except that a missing file
// yields the defaults.
func LoadOptionalMainConfig(configPath string) (*MainConfig, error) {
	config, err := LoadMainConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultMainConfig(), nil
	}
	return config, err
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if len(config.FilePatterns) == 0 {
		config.FilePatterns = []string{"*.eft", "*.EFT", "*.an2", "*.nist"}
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = OutputText
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{name}_{timestamp}"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.OutputFormat) {
	case OutputText, OutputXML, OutputXLSX:
		config.OutputFormat = strings.ToLower(config.OutputFormat)
	default:
		return fmt.Errorf("output_format must be text, xml or xlsx, got %q", config.OutputFormat)
	}

	switch strings.ToLower(config.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", config.LogFormat)
	}

	switch strings.ToLower(config.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", config.LogLevel)
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	for _, pattern := range config.FilePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid file pattern %q: %w", pattern, err)
		}
	}

	if !strings.Contains(config.OutputNameFormat, "{name}") && !strings.Contains(config.OutputNameFormat, "{uuid}") {
		return fmt.Errorf("output_name_format must contain {name} or {uuid}, got %q", config.OutputNameFormat)
	}

	return nil
}

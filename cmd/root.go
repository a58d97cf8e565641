// =============================================================================
// EFT Viewer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every subcommand is
// attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (eftview)
//   ├── decodeCmd (eftview decode)
//   ├── fieldsCmd (eftview fields)
//   └── versionCmd (eftview version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the main configuration (--config)
//   2. Builds the zerolog logger from it (--verbose forces debug level)
//   The log file is closed by Execute once the command returns.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/eft-viewer/internal/config"
	"github.com/ginjaninja78/eft-viewer/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// mainConfig is loaded before any subcommand runs.
var mainConfig *config.MainConfig

// logger is built from mainConfig before any subcommand runs.
var logger = zerolog.Nop()

// logCloser releases the log file after the command finishes.
var logCloser io.Closer

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "eftview",
	Short: "EFT Viewer - Decode and inspect ANSI/NIST-ITL EFT biometric files",
	Long: `EFT Viewer decodes Electronic Fingerprint Transmission files into their
records and fields, reports every structural problem it finds as a warning,
and can write the decoded content as XML or XLSX reports.

Key Features:
  - Tolerant decoding: malformed files yield a partial result with warnings
  - Binary payloads containing separator bytes are never truncated
  - Field labels for the common record types, overridable by YAML or XLSX
  - Concurrent decoding of whole directories

Example Usage:
  eftview decode subject.eft            # Decode one file and print a summary
  eftview decode --fields subject.eft   # Also print every field
  eftview decode --format xml           # Decode the input directory to XML
  eftview fields 14.013 1.003           # Look up field labels`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := executeRoot(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// executeRoot runs the root command and releases the log file whether or
// not the command succeeded.
func executeRoot() error {
	defer closeLog()
	return rootCmd.Execute()
}

// closeLog closes the log file opened by initConfig, if any.
func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"eftview.yaml",
		"Path to the main configuration file (.yaml or .toml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// initConfig loads the configuration and builds the logger. The default
// configuration file may be absent; one named with --config must exist.
func initConfig(cmd *cobra.Command) error {
	var err error
	if cmd.Flags().Changed("config") {
		mainConfig, err = config.LoadMainConfig(cfgFile)
	} else {
		mainConfig, err = config.LoadOptionalMainConfig(cfgFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	level := mainConfig.LogLevel
	if verbose {
		level = "debug"
	}

	logger, logCloser, err = logging.New(logging.Options{
		Level:  level,
		Format: mainConfig.LogFormat,
		File:   mainConfig.LogFile,
		Out:    cmd.ErrOrStderr(),
		App:    "eftview",
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}

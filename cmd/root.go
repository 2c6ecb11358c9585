// =============================================================================
// C Struct to Rust Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called with a single
// file argument, the root command converts that file:
//
//   structconv packets.h
//
// prints the converted text to stdout and writes it to packets.h_rust.
//
// COBRA CLI STRUCTURE:
//   rootCmd (structconv <file>)
//   ├── batchCmd (structconv batch [dir])
//   ├── rulesCmd (structconv rules)
//   └── versionCmd (structconv version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/c-struct-to-rust/internal/config"
	"github.com/ginjaninja78/c-struct-to-rust/internal/converter"
	"github.com/ginjaninja78/c-struct-to-rust/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// defaultConfigFile is read when present; its absence is not an error.
const defaultConfigFile = "structconv.yaml"

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// appConfig and logger are set up before any command runs.
var (
	appConfig *config.MainConfig
	logger    *slog.Logger
	logFile   *os.File
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command. With a file argument it converts that
// file; without one it prints help.
var rootCmd = &cobra.Command{
	Use:   "structconv [file]",
	Short: "Rewrite C struct declarations as Rust structs",
	Long: `structconv rewrites packed C struct declarations into #[repr(C)] Rust
structs using a fixed, ordered list of text substitutions.

The converted text is printed to stdout and written to "<file>_rust",
overwriting any previous output. Text the rules do not recognize is copied
through unchanged.

Example Usage:
  structconv packets.h            # Convert one header
  structconv batch ./include      # Convert every *.h in a directory
  structconv rules                # Show the substitution rules in order`,

	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.ErrOrStderr())
	},

	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd.OutOrStdout(), args[0])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		teardown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		defaultConfigFile,
		"Path to the configuration file (ignored when absent)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging on stderr",
	)
}

// setup loads the configuration and builds the logger. Logs go to stderr
// unless the configuration names a log file.
func setup(stderr io.Writer) error {
	cfg, err := config.LoadOptional(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	out := stderr
	if cfg.LogFile != "" {
		logFile, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		out = logFile
	}

	logger = logging.New(level, cfg.LogFormat, out)
	logger.Debug("configuration loaded", "config", cfgFile, "level", level)
	return nil
}

func teardown() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// runConvert converts a single file, printing the result to stdout.
func runConvert(stdout io.Writer, path string) error {
	result := converter.New(path, converter.Options{
		Stdout: stdout,
		Logger: logger,
	}).Run()

	if !result.Success {
		return result.Error
	}
	return nil
}

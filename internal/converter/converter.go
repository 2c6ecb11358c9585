// =============================================================================
// C Struct to Rust Converter - Converter Module
// =============================================================================
//
// This module runs the conversion pipeline for a single file.
//
// CONVERSION PIPELINE:
//   1. Read the whole input file as text
//   2. Apply the fixed rewrite rule list in order
//   3. Print the converted buffer to stdout
//   4. Write the same buffer to "<input path>_rust"
//
// FAILURE BEHAVIOR:
//   An unreadable input file is the only fatal condition. Nothing is printed
//   and no output file is created. Input that the rules do not recognize is
//   passed through unchanged and the output file is still written.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ginjaninja78/c-struct-to-rust/internal/logging"
	"github.com/ginjaninja78/c-struct-to-rust/internal/rewriter"
)

// OutputSuffix is appended to the input path to name the output file.
const OutputSuffix = "_rust"

// ErrInputAccess wraps every failure to read the input file.
var ErrInputAccess = errors.New("input file inaccessible")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// InputPath is the path to the file that was converted.
	InputPath string

	// OutputPath is the path to the written Rust file.
	// This is empty if conversion failed or was a dry run.
	OutputPath string

	// Success indicates whether the conversion finished.
	Success bool

	// Error contains the error if conversion failed.
	Error error

	// Skipped marks a file that was never attempted because an earlier
	// failure stopped the batch.
	Skipped bool

	// Stats holds the per-rule match counts.
	Stats rewriter.Stats

	// Bytes is the size of the converted buffer.
	Bytes int

	// Duration is the time taken to convert the file.
	Duration time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options controls where a Converter sends its output.
type Options struct {
	// Stdout receives the converted buffer. Defaults to os.Stdout.
	Stdout io.Writer

	// DryRun prints the converted buffer without writing the output file.
	DryRun bool

	// Logger receives progress messages. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Converter handles the conversion of a single C header to Rust.
type Converter struct {
	inputPath string
	stdout    io.Writer
	dryRun    bool
	logger    *slog.Logger
}

// New creates a new Converter for inputPath.
func New(inputPath string, opts Options) *Converter {
	c := &Converter{
		inputPath: inputPath,
		stdout:    opts.Stdout,
		dryRun:    opts.DryRun,
		logger:    opts.Logger,
	}
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// OutputPath returns the path the converted text is written to.
func OutputPath(inputPath string) string {
	return inputPath + OutputSuffix
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{InputPath: c.inputPath}

	fail := func(err error) Result {
		result.Error = err
		result.Duration = time.Since(startTime)
		// Callers report the error themselves.
		c.logger.Debug("conversion failed", "file", c.inputPath, "error", err)
		return result
	}

	// =========================================================================
	// STEP 1: READ INPUT
	// =========================================================================

	src, err := os.ReadFile(c.inputPath)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrInputAccess, err))
	}
	c.logger.Debug("read input", "file", c.inputPath, "bytes", len(src))

	// =========================================================================
	// STEP 2: REWRITE
	// =========================================================================

	code, stats := rewriter.RewriteWithStats(string(src))
	result.Stats = stats
	result.Bytes = len(code)

	for _, m := range stats.Matches {
		c.logger.Debug("rule applied", "file", c.inputPath, "rule", m.Name, "matches", m.Count)
	}

	// =========================================================================
	// STEP 3: EMIT
	// =========================================================================

	if _, err := io.WriteString(c.stdout, code); err != nil {
		return fail(fmt.Errorf("failed to print output: %w", err))
	}

	if !c.dryRun {
		outputPath := OutputPath(c.inputPath)
		if err := os.WriteFile(outputPath, []byte(code), 0644); err != nil {
			return fail(fmt.Errorf("failed to write output file: %w", err))
		}
		result.OutputPath = outputPath
	}

	result.Success = true
	result.Duration = time.Since(startTime)
	c.logger.Info("converted", "file", c.inputPath, "output", result.OutputPath,
		"matches", stats.Total(), "duration", result.Duration)

	return result
}

// =============================================================================
// C Struct to Rust Converter - Batch Command
// =============================================================================
//
// This file defines the 'batch' command, which converts every header in a
// directory in one run.
//
// COMMAND USAGE:
//   structconv batch [dir] [flags]
//
// FLAGS:
//   --dry-run     : Print converted output without writing "_rust" files
//   --report      : Write an XLSX rule-hit report ("auto" picks a name)
//
// PROCESSING PIPELINE:
//   1. Discover files in the directory matching the configured patterns
//   2. Convert each file (concurrently, up to max_concurrency)
//   3. Print a summary to stderr
//   4. Write the summary log and, if requested, the XLSX report
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/c-struct-to-rust/internal/converter"
	"github.com/ginjaninja78/c-struct-to-rust/internal/report"
	"github.com/ginjaninja78/c-struct-to-rust/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun prints converted output without writing output files.
var dryRun bool

// reportPath is where the XLSX report is written; empty disables it.
var reportPath string

// autoReport asks for a generated report file name inside the batch directory.
const autoReport = "auto"

// =============================================================================
// BATCH COMMAND DEFINITION
// =============================================================================

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Convert every matching header in a directory",
	Long: `The batch command converts every file in the directory (default: the
current directory) whose name matches one of the configured file_patterns
(default "*.h"). Existing "_rust" outputs are never picked up as inputs.

Each converted buffer is printed to stdout and written next to its input,
exactly as the single-file mode does. A failure in one file does not stop the
others unless continue_on_error is false in the configuration.`,

	Args: cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return runBatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), dir)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Print converted output without writing output files",
	)

	batchCmd.Flags().StringVar(
		&reportPath,
		"report",
		"",
		`Write an XLSX rule-hit report to this path ("auto" names it in the directory)`,
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// lockedWriter serializes whole-buffer writes from concurrent conversions.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// runBatch converts every discovered file under dir.
func runBatch(ctx context.Context, stdout, stderr io.Writer, dir string) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	files, err := utils.NewFileManager(dir).DiscoverInputFiles(appConfig.FilePatterns)
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintln(stderr, "No matching files found.")
		return nil
	}

	runID := utils.NewRunID()
	logger.Info("batch started", "run_id", runID, "dir", dir, "files", len(files))

	// =========================================================================
	// STEP 2: CONVERT FILES CONCURRENTLY
	// =========================================================================

	out := &lockedWriter{w: stdout}
	results := make([]converter.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(appConfig.MaxConcurrency)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = converter.Result{InputPath: file, Skipped: true, Error: fmt.Errorf("skipped: %w", err)}
				return nil
			}

			results[i] = converter.New(file, converter.Options{
				Stdout: out,
				DryRun: dryRun,
				Logger: logger.With("run_id", runID),
			}).Run()

			if !results[i].Success && !appConfig.KeepGoing() {
				return fmt.Errorf("%s: %w", filepath.Base(file), results[i].Error)
			}
			return nil
		})
	}

	waitErr := g.Wait()

	// =========================================================================
	// STEP 3: COLLECT RESULTS AND PRINT SUMMARY
	// =========================================================================

	summary := utils.ProcessingSummary{
		RunID:      runID,
		StartTime:  startTime,
		TotalFiles: len(files),
	}

	for _, result := range results {
		switch {
		case result.Skipped:
			summary.SkippedFiles++
			summary.SkippedList = append(summary.SkippedList, result.InputPath)
			fmt.Fprintf(stderr, "  - %s: skipped\n", filepath.Base(result.InputPath))
		case result.Success:
			summary.SuccessfulFiles++
			summary.TotalMatches += result.Stats.Total()
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   result.InputPath,
				OutputFile:  result.OutputPath,
				Matches:     result.Stats.Total(),
				ProcessTime: result.Duration,
			})
			fmt.Fprintf(stderr, "  ✓ %s (%d matches)\n", filepath.Base(result.InputPath), result.Stats.Total())
		default:
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.InputPath,
				ErrorMessage: fmt.Sprint(result.Error),
			})
			fmt.Fprintf(stderr, "  ✗ %s: %v\n", filepath.Base(result.InputPath), result.Error)
		}
	}

	summary.EndTime = time.Now()

	fmt.Fprintln(stderr, "\n=== Batch Complete ===")
	fmt.Fprintf(stderr, "Run ID:          %s\n", runID)
	fmt.Fprintf(stderr, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(stderr, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(stderr, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(stderr, "Skipped:         %d\n", summary.SkippedFiles)
	fmt.Fprintf(stderr, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	// =========================================================================
	// STEP 4: WRITE SUMMARY LOG AND REPORT
	// =========================================================================

	if !dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, dir)
		if err != nil {
			return err
		}
		logger.Info("summary written", "run_id", runID, "path", summaryPath)
	}

	if reportPath != "" {
		path := reportPath
		if path == autoReport {
			path = filepath.Join(dir, utils.GenerateOutputFileName(
				"structconv_report_{timestamp}_{uuid}.xlsx",
				map[string]string{"uuid": runID},
			))
		}
		if err := report.Write(path, runID, results); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Report:          %s\n", path)
	}

	if waitErr != nil {
		return waitErr
	}
	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// =============================================================================
// C Struct to Rust Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for batch conversion:
//   - Input discovery in a directory by glob pattern
//   - Output/report file naming
//   - Summary log generation
//
// Converted files are written next to their inputs ("<name>_rust"); discovery
// never picks those up again as inputs.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// convertedSuffix marks files produced by a previous conversion.
const convertedSuffix = "_rust"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for batch conversion.
type FileManager struct {
	// Dir is the directory scanned for input headers.
	Dir string
}

// NewFileManager creates a new FileManager rooted at dir.
func NewFileManager(dir string) *FileManager {
	return &FileManager{Dir: dir}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the directory for files matching any pattern.
//
// PARAMETERS:
//   - patterns: Glob patterns matched against file names (e.g., "*.h").
//               If empty, defaults to "*.h".
//
// RETURNS:
//   - A sorted, de-duplicated slice of file paths. Directories and existing
//     "_rust" outputs are skipped.
//   - An error if a pattern is malformed or the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"*.h"}
	}

	info, err := os.Stat(fm.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to scan input directory: %s is not a directory", fm.Dir)
	}

	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		files, err := filepath.Glob(filepath.Join(fm.Dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
		}

		for _, file := range files {
			if seen[file] || strings.HasSuffix(file, convertedSuffix) || !isRegularFile(file) {
				continue
			}
			seen[file] = true
			result = append(result, file)
		}
	}

	sort.Strings(result)
	return result, nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// NewRunID returns a fresh identifier for a batch run.
func NewRunID() string {
	return uuid.New().String()
}

// GenerateOutputFileName generates a file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID, or params["uuid"] when given
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//   - params: Extra placeholder values; they override the built-ins.
//
// EXAMPLE:
//   format: "{timestamp}_{uuid}.xlsx"
//   output: "20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a batch run.
type ProcessingSummary struct {
	RunID           string
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	SkippedFiles    int
	TotalMatches    int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
	SkippedList     []string
}

// ProcessedFileInfo contains information about a converted file.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	Matches     int
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a failed file.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummaryLog writes a batch summary to a log file in outputDir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := summary.StartTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("structconv_summary_%s.log", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "C Struct to Rust Converter - Batch Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:    %d\n"+
		"  Successful:     %d\n"+
		"  Failed:         %d\n"+
		"  Skipped:        %d\n"+
		"  Rule Matches:   %d\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.FailedFiles,
		summary.SkippedFiles,
		summary.TotalMatches)

	if len(summary.ProcessedFiles) > 0 {
		writer.WriteString("Converted Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s\n", pf.InputFile)
			fmt.Fprintf(writer, "  Output:       %s\n", pf.OutputFile)
			fmt.Fprintf(writer, "  Matches:      %d\n", pf.Matches)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		writer.WriteString("Failed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	if len(summary.SkippedList) > 0 {
		writer.WriteString("Skipped Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, file := range summary.SkippedList {
			fmt.Fprintf(writer, "  File:  %s\n", file)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// isRegularFile reports whether path names an existing regular file.
// Directories, dangling symlinks and devices are not inputs.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

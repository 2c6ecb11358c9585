package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("int a;\n"), 0644))
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.h"))
	touch(t, filepath.Join(dir, "a.h"))
	touch(t, filepath.Join(dir, "a.h_rust"))
	touch(t, filepath.Join(dir, "c.hpp"))
	touch(t, filepath.Join(dir, "readme.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.h"), 0755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.h"), filepath.Join(dir, "dangling.h")))

	fm := NewFileManager(dir)

	files, err := fm.DiscoverInputFiles(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.h"), filepath.Join(dir, "b.h")}, files)

	files, err = fm.DiscoverInputFiles([]string{"*.h", "*.hpp", "a.*"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.h"),
		filepath.Join(dir, "b.h"),
		filepath.Join(dir, "c.hpp"),
	}, files)
}

func TestDiscoverInputFiles_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileManager(filepath.Join(dir, "missing")).DiscoverInputFiles(nil)
	assert.Error(t, err)

	file := filepath.Join(dir, "file.h")
	touch(t, file)
	_, err = NewFileManager(file).DiscoverInputFiles(nil)
	assert.Error(t, err)

	_, err = NewFileManager(dir).DiscoverInputFiles([]string{"[bad"})
	assert.Error(t, err)
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("report_{uuid}.xlsx", nil)
	id := strings.TrimSuffix(strings.TrimPrefix(name, "report_"), ".xlsx")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	name = GenerateOutputFileName("{date}_{uuid}.xlsx", map[string]string{"uuid": "run-1"})
	assert.Equal(t, time.Now().Format("20060102")+"_run-1.xlsx", name)
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	path, err := WriteSummaryLog(ProcessingSummary{
		RunID:           "run-42",
		StartTime:       start,
		EndTime:         start.Add(2 * time.Second),
		TotalFiles:      3,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		SkippedFiles:    1,
		TotalMatches:    7,
		ProcessedFiles: []ProcessedFileInfo{
			{InputFile: "a.h", OutputFile: "a.h_rust", Matches: 7, ProcessTime: time.Millisecond},
		},
		FailedFilesList: []FailedFileInfo{
			{InputFile: "b.h", ErrorMessage: "permission denied"},
		},
		SkippedList: []string{"c.h"},
	}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "structconv_summary_20240115_143022.log"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Run ID:         run-42")
	assert.Contains(t, text, "Rule Matches:   7")
	assert.Contains(t, text, "Output:       a.h_rust")
	assert.Contains(t, text, "Error: permission denied")
	assert.Contains(t, text, "Skipped:        1")
	assert.Contains(t, text, "Skipped Files:\n")
	assert.Contains(t, text, "  File:  c.h\n")
}

package report

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/c-struct-to-rust/internal/converter"
	"github.com/ginjaninja78/c-struct-to-rust/internal/rewriter"
)

func TestWrite(t *testing.T) {
	_, stats := rewriter.RewriteWithStats("struct Foo {\nuint32_t x;\nfloat v[2];\n};")

	results := []converter.Result{
		{
			InputPath:  "foo.h",
			OutputPath: "foo.h_rust",
			Success:    true,
			Stats:      stats,
			Bytes:      120,
		},
		{
			InputPath: "gone.h",
			Error:     errors.New("input file inaccessible"),
		},
		{
			InputPath: "later.h",
			Skipped:   true,
			Error:     errors.New("skipped: context canceled"),
		},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Write(path, "run-7", results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, RulesSheet, RunSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, []string{"File", "Output", "Status", "Error", "Bytes", "Total"}, summary[0][:6])
	assert.Len(t, summary[0], 16)
	assert.Equal(t, "struct_block", summary[0][7])

	assert.Equal(t, "foo.h", summary[1][0])
	assert.Equal(t, "ok", summary[1][2])
	assert.Equal(t, "120", summary[1][4])
	assert.Equal(t, "1", summary[1][7])

	assert.Equal(t, "gone.h", summary[2][0])
	assert.Equal(t, "failed", summary[2][2])
	assert.Equal(t, "input file inaccessible", summary[2][3])

	assert.Equal(t, "later.h", summary[3][0])
	assert.Equal(t, "skipped", summary[3][2])

	rules, err := f.GetRows(RulesSheet)
	require.NoError(t, err)
	require.Len(t, rules, 11)
	assert.Equal(t, []string{"1", "pack_directive", `#pragma pack\((\d+)\)`, "#[repr(packed(${1}))]"}, rules[1])
	assert.Equal(t, "field", rules[10][1])

	run, err := f.GetCellValue(RunSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "run-7", run)
}

func TestWrite_BadPath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "report.xlsx"), "run", nil)
	assert.Error(t, err)
}

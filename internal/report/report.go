// =============================================================================
// C Struct to Rust Converter - XLSX Rule Report
// =============================================================================
//
// This module writes an XLSX workbook describing a batch run, so the rule
// hits of every converted header can be reviewed side by side.
//
// WORKBOOK LAYOUT:
//   Summary | File | Output | Status | Error | Bytes | Total | <rule 1> ... <rule 10>
//   Rules   | # | Name | Pattern | Template
//   Run     | Run ID, Generated, Files
//
// =============================================================================

package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/c-struct-to-rust/internal/converter"
	"github.com/ginjaninja78/c-struct-to-rust/internal/rewriter"
)

// Sheet names used in the workbook.
const (
	SummarySheet = "Summary"
	RulesSheet   = "Rules"
	RunSheet     = "Run"
)

// Write saves a rule-hit report for results to path.
func Write(path, runID string, results []converter.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	for _, name := range []string{RulesSheet, RunSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	rules := rewriter.Rules()

	if err := writeSummary(f, rules, results); err != nil {
		return err
	}
	if err := writeRules(f, rules); err != nil {
		return err
	}
	if err := writeRun(f, runID, len(results)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, rules []rewriter.Rule, results []converter.Result) error {
	header := []interface{}{"File", "Output", "Status", "Error", "Bytes", "Total"}
	for _, rule := range rules {
		header = append(header, rule.Name)
	}
	if err := setRow(f, SummarySheet, 1, header); err != nil {
		return err
	}

	for i, result := range results {
		status, errText := "ok", ""
		if !result.Success {
			status = "failed"
			if result.Skipped {
				status = "skipped"
			}
			if result.Error != nil {
				errText = result.Error.Error()
			}
		}

		row := []interface{}{
			result.InputPath,
			result.OutputPath,
			status,
			errText,
			result.Bytes,
			result.Stats.Total(),
		}
		for _, rule := range rules {
			row = append(row, result.Stats.Count(rule.Name))
		}

		if err := setRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRules(f *excelize.File, rules []rewriter.Rule) error {
	if err := setRow(f, RulesSheet, 1, []interface{}{"#", "Name", "Pattern", "Template"}); err != nil {
		return err
	}
	for i, rule := range rules {
		row := []interface{}{i + 1, rule.Name, rule.Pattern.String(), rule.Template}
		if err := setRow(f, RulesSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRun(f *excelize.File, runID string, files int) error {
	rows := [][]interface{}{
		{"Run ID", runID},
		{"Generated", time.Now().Format(time.RFC3339)},
		{"Files", files},
	}
	for i, row := range rows {
		if err := setRow(f, RunSheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes values starting at column A of the given 1-based row.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var sheetNameReplacer = strings.NewReplacer(":", "", `\`, "", "/", "", "?", "", "*", "", "[", "", "]", "", "'", "")

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var understandingExportHeader = []string{
	"Disease", "N", "Avg Age", "Male %", "Female %",
	"Pass Pre %", "Pass Post %", "Improvement %", "Incomplete",
}

var nutritionExportHeader = append(append([]string{"Date", "Month", "HN", "Name"}, riskFactorNames...), "Intake", "Status")

// sheetData is one worksheet: a bold header row followed by data rows.
type sheetData struct {
	name   string
	header []string
	widths []float64
	rows   [][]any
}

// buildUnderstandingWorkbook renders the per-disease understanding summary.
func buildUnderstandingWorkbook(month string, stats []cohortStatRow) ([]byte, error) {
	rows := make([][]any, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []any{
			s.Name, s.N, s.AvgAge, s.MalePct, s.FemalePct,
			s.PassPrePct, s.PassPostPct, s.ImprovementPct, s.Incomplete,
		})
	}
	return buildWorkbook(sheetData{
		name:   sheetName("Understanding", month),
		header: understandingExportHeader,
		widths: []float64{12, 8, 10, 10, 10, 12, 12, 14, 12},
		rows:   rows,
	})
}

// buildNutritionWorkbook renders the monthly assessment table and the
// risk-factor tally as two sheets.
func buildNutritionWorkbook(r nutritionReport) ([]byte, error) {
	rows := make([][]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		cells := []any{row.Date.Format("2006-01-02"), row.Month, row.HN, row.FullName}
		for _, set := range row.RiskFactors.flags() {
			mark := ""
			if set {
				mark = "✓"
			}
			cells = append(cells, mark)
		}
		rows = append(rows, append(cells, row.Intake, row.Status))
	}

	counts := make([][]any, 0, len(r.Counts)+1)
	for _, c := range r.Counts {
		counts = append(counts, []any{c.Name, c.Count})
	}
	counts = append(counts, []any{"Total assessments", r.Total})

	return buildWorkbook(
		sheetData{
			name:   sheetName("Nutrition", r.Month),
			header: nutritionExportHeader,
			widths: []float64{12, 12, 12, 28},
			rows:   rows,
		},
		sheetData{
			name:   "Risk Factors",
			header: []string{"Risk Factor", "Count"},
			widths: []float64{20, 10},
			rows:   counts,
		},
	)
}

// sheetName drops the characters Excel forbids in sheet names and keeps
// within the 31-character limit. Month labels are free text.
func sheetName(prefix, month string) string {
	name := prefix
	if m := sheetNameReplacer.Replace(month); strings.TrimSpace(m) != "" {
		name += " " + strings.TrimSpace(m)
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

func buildWorkbook(sheets ...sheetData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for _, sh := range sheets {
		if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sh.name, err)
		}
		if err := writeSheet(f, sh, headerStyle); err != nil {
			return nil, err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	if len(sheets) > 0 {
		if index, err := f.GetSheetIndex(sheets[0].name); err == nil {
			f.SetActiveSheet(index)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sh sheetData, headerStyle int) error {
	for col, h := range sh.header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sh.name, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sh.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header %s: %w", cell, err)
		}
	}

	for i, w := range sh.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.name, col, col, w); err != nil {
			return fmt.Errorf("set width %s: %w", col, err)
		}
	}

	for r, values := range sh.rows {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sh.name, cell, v); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	return f.SetPanes(sh.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}

func TestBuildUnderstandingWorkbook(t *testing.T) {
	stats := []cohortStatRow{
		{Name: "DM", N: 2, AvgAge: 55, MalePct: 50, FemalePct: 50, PassPrePct: 50, PassPostPct: 100, ImprovementPct: 25, Incomplete: 1},
	}

	data, err := buildUnderstandingWorkbook("ตุลาคม", stats)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Understanding ตุลาคม"}, f.GetSheetList())

	sheet := "Understanding ตุลาคม"
	assert.Equal(t, "Disease", cellValue(t, f, sheet, "A1"))
	assert.Equal(t, "Incomplete", cellValue(t, f, sheet, "I1"))
	assert.Equal(t, "DM", cellValue(t, f, sheet, "A2"))
	assert.Equal(t, "2", cellValue(t, f, sheet, "B2"))
	assert.Equal(t, "55", cellValue(t, f, sheet, "C2"))
	assert.Equal(t, "100", cellValue(t, f, sheet, "G2"))
	assert.Equal(t, "25", cellValue(t, f, sheet, "H2"))
}

func TestBuildUnderstandingWorkbook_NoRows(t *testing.T) {
	data, err := buildUnderstandingWorkbook("", nil)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Understanding"}, f.GetSheetList())
	assert.Equal(t, "", cellValue(t, f, "Understanding", "A2"))
}

func TestBuildNutritionWorkbook(t *testing.T) {
	r := nutritionReport{
		Month: "ตุลาคม",
		Total: 1,
		Counts: []riskFactorCount{
			{Name: "DM", Count: 1}, {Name: "HT", Count: 0},
		},
		Rows: []nutritionReportRow{{
			Date:        DateOnly{time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)},
			Month:       "ตุลาคม",
			HN:          "HN1",
			FullName:    "Somchai Jaidee",
			RiskFactors: riskFactors{DM: true},
			Intake:      "Risk",
			Status:      "E2",
		}},
	}

	data, err := buildNutritionWorkbook(r)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Nutrition ตุลาคม", "Risk Factors"}, f.GetSheetList())

	sheet := "Nutrition ตุลาคม"
	assert.Equal(t, "Date", cellValue(t, f, sheet, "A1"))
	assert.Equal(t, "DM", cellValue(t, f, sheet, "E1"))
	assert.Equal(t, "2026-10-03", cellValue(t, f, sheet, "A2"))
	assert.Equal(t, "HN1", cellValue(t, f, sheet, "C2"))
	assert.Equal(t, "✓", cellValue(t, f, sheet, "E2"))
	assert.Equal(t, "", cellValue(t, f, sheet, "F2"))
	// 4 leading columns + 10 risk factors, then Intake and Status.
	assert.Equal(t, "Risk", cellValue(t, f, sheet, "O2"))
	assert.Equal(t, "E2", cellValue(t, f, sheet, "P2"))

	assert.Equal(t, "DM", cellValue(t, f, "Risk Factors", "A2"))
	assert.Equal(t, "1", cellValue(t, f, "Risk Factors", "B2"))
	assert.Equal(t, "Total assessments", cellValue(t, f, "Risk Factors", "A4"))
	assert.Equal(t, "1", cellValue(t, f, "Risk Factors", "B4"))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Nutrition", sheetName("Nutrition", ""))
	assert.Equal(t, "Nutrition 102026", sheetName("Nutrition", "10/2026"))
	assert.Equal(t, "Nutrition", sheetName("Nutrition", "[]"))
	assert.Equal(t, "Nutrition Oct 69", sheetName("Nutrition", "'Oct 69'"))
	assert.Len(t, []rune(sheetName("Understanding", "a very long free text month label")), 31)
}

func TestBuildUnderstandingWorkbook_ApostropheInMonth(t *testing.T) {
	data, err := buildUnderstandingWorkbook("ตุลาคม'", nil)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Understanding ตุลาคม"}, f.GetSheetList())
}

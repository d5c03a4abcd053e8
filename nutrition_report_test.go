package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assessmentRow(hn, name string, diseases riskFactors, status nutritionStatus, codes map[string]bool) nutritionAssessmentRow {
	return nutritionAssessmentRow{
		nutritionAssessment: nutritionAssessment{
			HN:    hn,
			Date:  DateOnly{time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
			Month: "ตุลาคม",
			Details: nutritionAssessmentDetails{
				Diseases:        diseases,
				NutritionStatus: status,
				AssessmentCodes: codes,
			},
		},
		PatientName: name,
	}
}

func TestBuildNutritionReport(t *testing.T) {
	items := []nutritionAssessmentRow{
		assessmentRow("HN1", "Somchai Jaidee", riskFactors{DM: true, HT: true}, nutritionStatus{Score0To5: true}, map[string]bool{"e1": true}),
		assessmentRow("HN2", "Unknown", riskFactors{DM: true, Other: "asthma"}, nutritionStatus{Score6To10: true}, map[string]bool{"e2": true}),
		assessmentRow("HN3", "Malee Sukjai", riskFactors{BMIRisk: true, Critical: true, Other: "  "}, nutritionStatus{ScoreOver11: true}, nil),
	}

	r := buildNutritionReport("ตุลาคม", items)

	assert.Equal(t, "ตุลาคม", r.Month)
	assert.Equal(t, 3, r.Total)
	require.Len(t, r.Counts, len(riskFactorNames))

	counts := map[string]int{}
	for _, c := range r.Counts {
		counts[c.Name] = c.Count
	}
	assert.Equal(t, 2, counts["DM"])
	assert.Equal(t, 1, counts["HT"])
	assert.Equal(t, 0, counts["CKD"])
	assert.Equal(t, 1, counts["BMI"])
	assert.Equal(t, 1, counts["CC"])
	// Blank "other" text is not a risk factor.
	assert.Equal(t, 1, counts["Other"])

	require.Len(t, r.Rows, 3)
	assert.Equal(t, "HN1", r.Rows[0].HN)
	assert.Equal(t, "Somchai Jaidee", r.Rows[0].FullName)
	assert.Equal(t, "Normal", r.Rows[0].Intake)
	assert.Equal(t, "E1", r.Rows[0].Status)
	assert.Equal(t, "Risk", r.Rows[1].Intake)
	assert.Equal(t, "E2", r.Rows[1].Status)
	assert.Equal(t, "High Risk", r.Rows[2].Intake)
	assert.Equal(t, "-", r.Rows[2].Status)
}

func TestBuildNutritionReport_Empty(t *testing.T) {
	r := buildNutritionReport("มกราคม", nil)
	assert.Equal(t, 0, r.Total)
	assert.NotNil(t, r.Rows)
	for _, c := range r.Counts {
		assert.Zero(t, c.Count, c.Name)
	}
}

func TestStatusCode_E1WinsOverE2(t *testing.T) {
	assert.Equal(t, "E1", statusCode(map[string]bool{"e1": true, "e2": true}))
	assert.Equal(t, "-", statusCode(map[string]bool{"e1": false}))
}

func TestIntakeClass_NoBandIsHighRisk(t *testing.T) {
	assert.Equal(t, "High Risk", intakeClass(nutritionStatus{}))
}

func TestBuildDashboardStats(t *testing.T) {
	buddhism, islam, christian := "พุทธ", "Islam", "Christianity"
	patients := []patient{
		{Gender: genderMale, Religion: &buddhism},
		{Gender: genderFemaleTH, Religion: &islam},
		{Gender: genderMaleTH, Religion: &christian},
		{Gender: "", Religion: nil},
	}

	s := buildDashboardStats(patients)

	assert.Equal(t, dashboardStats{
		Total:         4,
		Male:          2,
		Female:        1,
		Buddhism:      1,
		Islam:         1,
		OtherReligion: 2,
	}, s)
}

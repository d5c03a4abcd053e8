package main

import "strings"

/* ─── Nutrition assessment report ────────────────────────────────────── */

// riskFactorCount is one bar of the monthly risk-factor chart.
type riskFactorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// nutritionReportRow is one assessment in the monthly table.
type nutritionReportRow struct {
	Date        DateOnly    `json:"date"`
	Month       string      `json:"month"`
	HN          string      `json:"hn"`
	FullName    string      `json:"full_name"`
	RiskFactors riskFactors `json:"risk_factors"`
	Intake      string      `json:"intake"`
	Status      string      `json:"status"`
}

type nutritionReport struct {
	Month  string               `json:"month"`
	Total  int                  `json:"total"`
	Counts []riskFactorCount    `json:"counts"`
	Rows   []nutritionReportRow `json:"rows"`
}

// riskFactorNames is the chart order.
var riskFactorNames = []string{"DM", "HT", "DLP", "CKD", "Gout", "Heart", "Stroke", "BMI", "CC", "Other"}

// flags returns one boolean per riskFactorNames entry.
func (r riskFactors) flags() []bool {
	return []bool{r.DM, r.HT, r.DLP, r.CKD, r.Gout, r.Heart, r.Stroke, r.BMIRisk, r.Critical, strings.TrimSpace(r.Other) != ""}
}

// intakeClass maps the screening score band to the report label.
func intakeClass(s nutritionStatus) string {
	switch {
	case s.Score0To5:
		return "Normal"
	case s.Score6To10:
		return "Risk"
	}
	return "High Risk"
}

// statusCode reports the first of E1/E2 that is set.
func statusCode(codes map[string]bool) string {
	switch {
	case codes["e1"]:
		return "E1"
	case codes["e2"]:
		return "E2"
	}
	return "-"
}

// buildNutritionReport tallies risk factors across a month's assessments.
// Rows keep the input order.
func buildNutritionReport(month string, items []nutritionAssessmentRow) nutritionReport {
	counts := make([]riskFactorCount, len(riskFactorNames))
	for i, name := range riskFactorNames {
		counts[i].Name = name
	}
	rows := make([]nutritionReportRow, 0, len(items))
	for _, a := range items {
		for i, set := range a.Details.Diseases.flags() {
			if set {
				counts[i].Count++
			}
		}
		rows = append(rows, nutritionReportRow{
			Date:        a.Date,
			Month:       a.Month,
			HN:          a.HN,
			FullName:    a.PatientName,
			RiskFactors: a.Details.Diseases,
			Intake:      intakeClass(a.Details.NutritionStatus),
			Status:      statusCode(a.Details.AssessmentCodes),
		})
	}
	return nutritionReport{Month: month, Total: len(items), Counts: counts, Rows: rows}
}

/* ─── Dashboard ──────────────────────────────────────────────────────── */

type dashboardStats struct {
	Total         int `json:"total"`
	Male          int `json:"male"`
	Female        int `json:"female"`
	Buddhism      int `json:"buddhism"`
	Islam         int `json:"islam"`
	OtherReligion int `json:"other_religion"`
}

func buildDashboardStats(patients []patient) dashboardStats {
	var s dashboardStats
	s.Total = len(patients)
	for _, p := range patients {
		switch p.Gender {
		case genderMale, genderMaleTH:
			s.Male++
		case genderFemale, genderFemaleTH:
			s.Female++
		}
		religion := ""
		if p.Religion != nil {
			religion = *p.Religion
		}
		switch religion {
		case "Buddhism", "พุทธ":
			s.Buddhism++
		case "Islam", "อิสลาม":
			s.Islam++
		}
	}
	s.OtherReligion = s.Total - s.Buddhism - s.Islam
	return s
}

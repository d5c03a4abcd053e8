package main

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// allMonths as the month parameter selects every stored month.
const allMonths = "all"

// understandingReport is the cohort summary for one month. ByMonth holds one
// overall row per month present in the selection.
type understandingReport struct {
	Month     string          `json:"month"`
	ByDisease []cohortStatRow `json:"by_disease"`
	ByMonth   []cohortStatRow `json:"by_month"`
}

// monthFilter maps the selected month to the SQL filter value.
func monthFilter(month string) string {
	if month == allMonths {
		return ""
	}
	return month
}

func (h *Handler) loadUnderstandingReport(c *gin.Context) (understandingReport, error) {
	month := reportMonth(c.Query("month"), time.Now())
	rows, err := h.understandingRows(c, monthFilter(month))
	if err != nil {
		return understandingReport{}, err
	}
	records := make([]cohortRecord, len(rows))
	for i, r := range rows {
		records[i] = r.cohortRecord()
	}
	return understandingReport{
		Month:     month,
		ByDisease: summarizeByDisease(records),
		ByMonth:   summarizeByMonth(records),
	}, nil
}

func (h *Handler) loadNutritionReport(c *gin.Context) (nutritionReport, error) {
	month := reportMonth(c.Query("month"), time.Now())
	items, err := queryMany[nutritionAssessmentRow](h, c, nutritionAssessmentListSQL,
		pgx.NamedArgs{"month": monthFilter(month)})
	if err != nil {
		return nutritionReport{}, err
	}
	return buildNutritionReport(month, items), nil
}

// getUnderstandingReport returns per-disease understanding statistics.
// GET /api/reports/understanding?month=... (defaults to the current month).
func (h *Handler) getUnderstandingReport(c *gin.Context) {
	report, err := h.loadUnderstandingReport(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to build report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// exportUnderstandingReport streams the per-disease statistics as XLSX.
// GET /api/reports/understanding/export?month=...
func (h *Handler) exportUnderstandingReport(c *gin.Context) {
	report, err := h.loadUnderstandingReport(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to build report")
		return
	}
	data, err := buildUnderstandingWorkbook(report.Month, report.ByDisease)
	if err != nil {
		h.log.Error("build understanding workbook", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to export report")
		return
	}
	sendWorkbook(c, "understanding-report", report.Month, data)
}

// getNutritionReport returns the monthly nutrition assessment table and
// risk-factor counts.
// GET /api/reports/nutrition?month=... (defaults to the current month).
func (h *Handler) getNutritionReport(c *gin.Context) {
	report, err := h.loadNutritionReport(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to build report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// exportNutritionReport streams the monthly nutrition report as XLSX.
// GET /api/reports/nutrition/export?month=...
func (h *Handler) exportNutritionReport(c *gin.Context) {
	report, err := h.loadNutritionReport(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to build report")
		return
	}
	data, err := buildNutritionWorkbook(report)
	if err != nil {
		h.log.Error("build nutrition workbook", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to export report")
		return
	}
	sendWorkbook(c, "nutrition-report", report.Month, data)
}

// sendWorkbook writes an XLSX attachment. The month goes in the RFC 5987
// filename* parameter since labels are usually not ASCII.
func sendWorkbook(c *gin.Context, base, month string, data []byte) {
	disposition := "attachment; filename=" + base + ".xlsx; filename*=UTF-8''" +
		url.PathEscape(base+"-"+month+".xlsx")
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, xlsxContentType, data)
}

package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// nutritionAssessmentListSQL joins the patient name; month "" matches all rows.
const nutritionAssessmentListSQL = `
	SELECT a.*,
	       COALESCE(NULLIF(TRIM(COALESCE(p.first_name, '') || ' ' || COALESCE(p.last_name, '')), ''), 'Unknown') AS patient_name
	  FROM nutrition_assessments a
	  LEFT JOIN patients p ON p.hn = a.hn
	 WHERE (@month = '' OR a.month = @month)
	 ORDER BY a.date DESC, a.created_at DESC`

// createNutritionAssessment saves the comprehensive assessment form. BMI and
// IBW are derived here; the patient's latest weight, height and BMI are
// updated in the same transaction.
// POST /api/nutrition-assessments.
func (h *Handler) createNutritionAssessment(c *gin.Context) {
	var body createNutritionAssessmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "hn and month are required")
		return
	}
	if msg := validateAnthropometrics(&body.WeightKG, &body.HeightCM); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}
	date, ok := todayOr(body.Date)
	if !ok {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	bmi := computeBMI(body.WeightKG, body.HeightCM)
	ibw := computeIBW(body.HeightCM, body.Gender)
	details, err := jsonbArg(body.Details)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid details")
		return
	}

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save assessment")
		return
	}
	defer tx.Rollback(c)

	rows, err := tx.Query(c,
		`INSERT INTO nutrition_assessments (hn, date, month, weight, height, bmi, ibw, details)
		 VALUES (@hn, @date, @month, @weight, @height, @bmi, @ibw, @details::jsonb)
		 RETURNING *`,
		pgx.NamedArgs{
			"hn": body.HN, "date": date, "month": strings.TrimSpace(body.Month),
			"weight": body.WeightKG, "height": body.HeightCM,
			"bmi": bmi, "ibw": ibw, "details": details,
		})
	if err != nil {
		h.log.Error("insert nutrition assessment", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to save assessment")
		return
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[nutritionAssessment])
	if err != nil {
		h.log.Error("scan nutrition assessment", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to save assessment")
		return
	}

	// Only touch anthropometry that was actually measured.
	if body.WeightKG > 0 && body.HeightCM > 0 {
		tag, err := tx.Exec(c,
			`UPDATE patients SET weight = @weight, height = @height, bmi = @bmi, updated_at = now()
			 WHERE hn = @hn`,
			pgx.NamedArgs{"weight": body.WeightKG, "height": body.HeightCM, "bmi": bmi, "hn": body.HN})
		if err != nil {
			h.log.Error("update patient anthropometry", zap.Error(err))
			apiError(c, http.StatusInternalServerError, "failed to save assessment")
			return
		}
		if tag.RowsAffected() == 0 {
			h.log.Warn("assessment saved for unknown patient", zap.String("hn", body.HN))
		}
	}

	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save assessment")
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// getNutritionAssessments lists assessments, newest first, optionally for one month.
// GET /api/nutrition-assessments?month=...
func (h *Handler) getNutritionAssessments(c *gin.Context) {
	items, err := queryMany[nutritionAssessmentRow](h, c, nutritionAssessmentListSQL,
		pgx.NamedArgs{"month": strings.TrimSpace(c.Query("month"))})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch assessments")
		return
	}
	if items == nil {
		items = []nutritionAssessmentRow{}
	}
	c.JSON(http.StatusOK, items)
}

package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// nutritionLogResponse pairs a saved log with its derived summary.
type nutritionLogResponse struct {
	nutritionLog
	Summary mealSummary `json:"summary"`
}

// previewNutritionLog returns the intake, energy and target comparison for a
// day's meals without saving anything. The form calls it on every edit.
// POST /api/nutrition-logs/preview.
func (h *Handler) previewNutritionLog(c *gin.Context) {
	var body createNutritionLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, mealsBindError(err))
		return
	}
	c.JSON(http.StatusOK, summarizeMeals(body.Meals))
}

// mealsBindError names the offending group when a serving count was rejected.
func mealsBindError(err error) string {
	if errors.Is(err, errServingOutOfRange) {
		return fmt.Sprintf("servings must be between 0 and %d (%v)", maxServings, err)
	}
	return "invalid request body"
}

// createNutritionLog saves one day's meals. total_calories is recomputed
// here; the client's figure is never trusted.
// POST /api/nutrition-logs. Defaults date to today if omitted.
func (h *Handler) createNutritionLog(c *gin.Context) {
	var body createNutritionLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, mealsBindError(err))
		return
	}
	body.HN = strings.TrimSpace(body.HN)
	if body.HN == "" {
		apiError(c, http.StatusBadRequest, "hn is required")
		return
	}
	date, ok := todayOr(body.Date)
	if !ok {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	summary := summarizeMeals(body.Meals)
	meals, err := jsonbArg(body.Meals)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid meals")
		return
	}

	log, err := queryOne[nutritionLog](h, c,
		`INSERT INTO nutrition_logs (hn, date, meals, total_calories)
		 VALUES (@hn, @date, @meals::jsonb, @totalCalories)
		 RETURNING *`,
		pgx.NamedArgs{"hn": body.HN, "date": date, "meals": meals, "totalCalories": summary.TotalKcal})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save nutrition log")
		return
	}

	c.JSON(http.StatusCreated, nutritionLogResponse{nutritionLog: log, Summary: summary})
}

// getNutritionLogs lists logs newest first, optionally for one patient.
// GET /api/nutrition-logs?hn=...
func (h *Handler) getNutritionLogs(c *gin.Context) {
	logs, err := queryMany[nutritionLog](h, c,
		`SELECT * FROM nutrition_logs
		 WHERE (@hn = '' OR hn = @hn)
		 ORDER BY date DESC, created_at DESC`,
		pgx.NamedArgs{"hn": strings.TrimSpace(c.Query("hn"))})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch nutrition logs")
		return
	}

	out := make([]nutritionLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, nutritionLogResponse{nutritionLog: l, Summary: summarizeMeals(l.Meals)})
	}
	c.JSON(http.StatusOK, out)
}

// deleteNutritionLog removes a log. Returns 204 on success.
// DELETE /api/nutrition-logs/:id.
func (h *Handler) deleteNutritionLog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM nutrition_logs WHERE id = @id",
		pgx.NamedArgs{"id": id})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete nutrition log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "nutrition log not found")
		return
	}

	c.Status(http.StatusNoContent)
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// postAnthropometrics derives BMI, IBW and, when age and activity level are
// given, a suggested daily energy requirement. Nothing is stored.
// POST /api/metrics/anthropometrics.
func (h *Handler) postAnthropometrics(c *gin.Context) {
	var body anthropometricsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.WeightKG < 0 || body.HeightCM < 0 {
		apiError(c, http.StatusBadRequest, "weight and height must not be negative")
		return
	}
	if body.ActivityLevel != "" {
		if _, ok := activityMultipliers[body.ActivityLevel]; !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, active, very_active")
			return
		}
	}

	resp := anthropometricsResponse{
		BMI: computeBMI(body.WeightKG, body.HeightCM),
		IBW: computeIBW(body.HeightCM, body.Gender),
	}
	if body.Age != nil && body.ActivityLevel != "" {
		if bmr, kcal, ok := estimateEnergyRequirement(body.WeightKG, body.HeightCM, *body.Age, body.Gender, body.ActivityLevel); ok {
			resp.BMR = &bmr
			resp.EnergyDaily = &kcal
		}
	}

	c.JSON(http.StatusOK, resp)
}

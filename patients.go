package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// validateAnthropometrics rejects weights and heights the form cannot produce.
// Returns "" when the values are acceptable.
func validateAnthropometrics(weightKG, heightCM *float64) string {
	if weightKG != nil && (*weightKG < 0 || *weightKG > 500) {
		return "weight must be between 0 and 500 kg"
	}
	if heightCM != nil && (*heightCM < 0 || *heightCM > 300) {
		return "height must be between 0 and 300 cm"
	}
	return ""
}

// derivedBMI returns a BMI pointer for storage, nil when either side is unknown.
func derivedBMI(weightKG, heightCM *float64) *float64 {
	if weightKG == nil || heightCM == nil {
		return nil
	}
	bmi := computeBMI(*weightKG, *heightCM)
	return &bmi
}

func validDate(s *string) bool {
	if s == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", *s)
	return err == nil
}

// getPatients returns the 100 most recently created patients.
// GET /api/patients.
func (h *Handler) getPatients(c *gin.Context) {
	patients, err := queryMany[patient](h, c,
		"SELECT * FROM patients ORDER BY created_at DESC LIMIT 100", nil)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch patients")
		return
	}
	if patients == nil {
		patients = []patient{}
	}
	c.JSON(http.StatusOK, patients)
}

// searchPatients matches HN, first name or last name (case-insensitive).
// GET /api/patients/search?q=... Queries shorter than 3 characters return [].
func (h *Handler) searchPatients(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 3 {
		c.JSON(http.StatusOK, []patient{})
		return
	}

	patients, err := queryMany[patient](h, c,
		`SELECT * FROM patients
		 WHERE hn ILIKE @pattern OR first_name ILIKE @pattern OR last_name ILIKE @pattern
		 ORDER BY hn
		 LIMIT 10`,
		pgx.NamedArgs{"pattern": "%" + escapeLike(q) + "%"})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to search patients")
		return
	}
	if patients == nil {
		patients = []patient{}
	}
	c.JSON(http.StatusOK, patients)
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// getPatient returns one patient by HN.
// GET /api/patients/:hn.
func (h *Handler) getPatient(c *gin.Context) {
	p, err := queryOne[patient](h, c,
		"SELECT * FROM patients WHERE hn = @hn",
		pgx.NamedArgs{"hn": c.Param("hn")})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "patient not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch patient")
		}
		return
	}
	c.JSON(http.StatusOK, p)
}

// upsertPatient creates or replaces the patient with the given HN. BMI is
// recomputed from weight and height; any client-sent BMI is ignored.
// PUT /api/patients.
func (h *Handler) upsertPatient(c *gin.Context) {
	var body upsertPatientRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "hn is required")
		return
	}
	if msg := validateAnthropometrics(body.WeightKG, body.HeightCM); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}
	if !validDate(body.AdmitDate) {
		apiError(c, http.StatusBadRequest, "invalid admit_date, expected YYYY-MM-DD")
		return
	}

	p, err := queryOne[patient](h, c,
		`INSERT INTO patients (hn, prefix, first_name, last_name, age, gender, religion, ward,
		                       admit_date, diagnosis, weight, height, bmi, diet_type)
		 VALUES (@hn, @prefix, @firstName, @lastName, @age, @gender, @religion, @ward,
		         @admitDate, @diagnosis, @weight, @height, @bmi, @dietType)
		 ON CONFLICT (hn) DO UPDATE SET
			prefix = EXCLUDED.prefix,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			religion = EXCLUDED.religion,
			ward = EXCLUDED.ward,
			admit_date = EXCLUDED.admit_date,
			diagnosis = EXCLUDED.diagnosis,
			weight = EXCLUDED.weight,
			height = EXCLUDED.height,
			bmi = EXCLUDED.bmi,
			diet_type = EXCLUDED.diet_type,
			updated_at = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"hn": body.HN, "prefix": body.Prefix, "firstName": body.FirstName,
			"lastName": body.LastName, "age": body.Age, "gender": string(body.Gender),
			"religion": body.Religion, "ward": body.Ward, "admitDate": body.AdmitDate,
			"diagnosis": body.Diagnosis, "weight": body.WeightKG, "height": body.HeightCM,
			"bmi": derivedBMI(body.WeightKG, body.HeightCM), "dietType": body.DietType,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save patient")
		return
	}

	c.JSON(http.StatusOK, p)
}

// patientUpdate builds the UPDATE for the fields a PATCH body actually sent.
// ok is false when the body names no field.
func patientUpdate(hn string, body patchPatientRequest) (query string, args pgx.NamedArgs, ok bool) {
	setClauses := []string{}
	args = pgx.NamedArgs{"hn": hn}
	set := func(column, arg string, v any) {
		setClauses = append(setClauses, column+" = @"+arg)
		args[arg] = v
	}

	if body.Prefix != nil {
		set("prefix", "prefix", *body.Prefix)
	}
	if body.FirstName != nil {
		set("first_name", "firstName", *body.FirstName)
	}
	if body.LastName != nil {
		set("last_name", "lastName", *body.LastName)
	}
	if body.Age != nil {
		set("age", "age", *body.Age)
	}
	if body.Gender != nil {
		set("gender", "gender", string(*body.Gender))
	}
	if body.Religion != nil {
		set("religion", "religion", *body.Religion)
	}
	if body.Ward != nil {
		set("ward", "ward", *body.Ward)
	}
	if body.AdmitDate != nil {
		set("admit_date", "admitDate", *body.AdmitDate)
	}
	if body.Diagnosis != nil {
		set("diagnosis", "diagnosis", *body.Diagnosis)
	}
	if body.WeightKG != nil {
		set("weight", "weight", *body.WeightKG)
	}
	if body.HeightCM != nil {
		set("height", "height", *body.HeightCM)
	}
	if body.DietType != nil {
		set("diet_type", "dietType", *body.DietType)
	}

	if len(setClauses) == 0 {
		return "", nil, false
	}
	query = "UPDATE patients SET " +
		strings.Join(setClauses, ", ") +
		", updated_at = now() WHERE hn = @hn RETURNING *"
	return query, args, true
}

// changesBMI reports whether a PATCH body touches weight or height.
func (b patchPatientRequest) changesBMI() bool {
	return b.WeightKG != nil || b.HeightCM != nil
}

// patchPatient updates only the provided fields of a patient. When weight or
// height changes, BMI is recomputed from the stored values in the same
// transaction.
// PATCH /api/patients/:hn.
func (h *Handler) patchPatient(c *gin.Context) {
	hn := c.Param("hn")

	var body patchPatientRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateAnthropometrics(body.WeightKG, body.HeightCM); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}
	if !validDate(body.AdmitDate) {
		apiError(c, http.StatusBadRequest, "invalid admit_date, expected YYYY-MM-DD")
		return
	}

	query, args, ok := patientUpdate(hn, body)
	if !ok {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	tx, err := h.db.Begin(c)
	if err != nil {
		h.log.Error("begin failed", zap.String("op", "patchPatient"), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to update patient")
		return
	}
	defer tx.Rollback(c)

	rows, err := tx.Query(c, query, args)
	if err != nil {
		h.log.Error("query failed", zap.String("op", "patchPatient"), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to update patient")
		return
	}
	p, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[patient])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "patient not found")
		} else {
			h.log.Error("scan failed", zap.String("op", "patchPatient"), zap.Error(err))
			apiError(c, http.StatusInternalServerError, "failed to update patient")
		}
		return
	}

	// BMI follows whatever weight and height are now stored.
	if body.changesBMI() {
		rows, err := tx.Query(c,
			"UPDATE patients SET bmi = @bmi WHERE hn = @hn RETURNING *",
			pgx.NamedArgs{"bmi": derivedBMI(p.WeightKG, p.HeightCM), "hn": hn})
		if err == nil {
			p, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[patient])
		}
		if err != nil {
			h.log.Error("bmi update failed", zap.String("op", "patchPatient"), zap.Error(err))
			apiError(c, http.StatusInternalServerError, "failed to update bmi")
			return
		}
	}

	if err := tx.Commit(c); err != nil {
		h.log.Error("commit failed", zap.String("op", "patchPatient"), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to update patient")
		return
	}

	c.JSON(http.StatusOK, p)
}

package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// Staff roles.
const (
	roleAdmin  = "ADMIN"
	roleStaff  = "STAFF"
	roleDoctor = "DOCTOR"
)

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID         uuid.UUID  `json:"id"          db:"id"`
	Username   string     `json:"username"    db:"username"`
	FullName   string     `json:"full_name"   db:"full_name"`
	Role       string     `json:"role"        db:"role"`
	AvatarURL  *string    `json:"avatar_url"  db:"avatar_url"`
	Degree     *string    `json:"degree"      db:"degree"`
	Faculty    *string    `json:"faculty"     db:"faculty"`
	Major      *string    `json:"major"       db:"major"`
	Institute  *string    `json:"institute"   db:"institute"`
	Department *string    `json:"department"  db:"department"`
	Hospital   *string    `json:"hospital"    db:"hospital"`
	AuthToken  string     `json:"-"           db:"auth_token"`
	Password   string     `json:"-"           db:"password"`
	CreatedAt  *time.Time `json:"created_at"  db:"created_at"`
}

// patient maps to the patients table, keyed by hospital number (HN).
// Anthropometric fields are the latest values recorded for the patient.
type patient struct {
	ID        uuid.UUID  `json:"id"         db:"id"`
	HN        string     `json:"hn"         db:"hn"`
	Prefix    string     `json:"prefix"     db:"prefix"`
	FirstName string     `json:"first_name" db:"first_name"`
	LastName  string     `json:"last_name"  db:"last_name"`
	Age       *int       `json:"age"        db:"age"`
	Gender    gender     `json:"gender"     db:"gender"`
	Religion  *string    `json:"religion"   db:"religion"`
	Ward      *string    `json:"ward"       db:"ward"`
	AdmitDate *DateOnly  `json:"admit_date" db:"admit_date"`
	Diagnosis *string    `json:"diagnosis"  db:"diagnosis"`
	WeightKG  *float64   `json:"weight"     db:"weight"`
	HeightCM  *float64   `json:"height"     db:"height"`
	BMI       *float64   `json:"bmi"        db:"bmi"`
	DietType  *string    `json:"diet_type"  db:"diet_type"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// riskFactors are the underlying-disease checkboxes of the assessment form.
type riskFactors struct {
	DM       bool   `json:"dm"`
	HT       bool   `json:"ht"`
	DLP      bool   `json:"dlp"`
	CKD      bool   `json:"ckd"`
	Gout     bool   `json:"gout"`
	Heart    bool   `json:"heart"`
	Stroke   bool   `json:"stroke"`
	BMIRisk  bool   `json:"bmiRisk"`
	Critical bool   `json:"critical"`
	Other    string `json:"other"`
}

type dietHistory struct {
	Breakfast      string   `json:"breakfast"`
	Lunch          string   `json:"lunch"`
	Dinner         string   `json:"dinner"`
	Snack          string   `json:"snack"`
	Drink          string   `json:"drink"`
	Supplement     string   `json:"supplement"`
	PreferenceType string   `json:"preferenceType"`
	PreferenceMenu string   `json:"preferenceMenu"`
	Dislike        string   `json:"dislike"`
	Allergy        string   `json:"allergy"`
	Cooking        []string `json:"cooking"`
	Alcohol        string   `json:"alcohol"`
	Smoking        string   `json:"smoking"`
	Exercise       string   `json:"exercise"`
	Excretion      string   `json:"excretion"`
	Sleep          string   `json:"sleep"`
	Medication     string   `json:"medication"`
	Occupation     string   `json:"occupation"`
}

// nutritionStatus is the screening score band; exactly one should be set.
type nutritionStatus struct {
	Score0To5   bool `json:"score0_5"`
	Score6To10  bool `json:"score6_10"`
	ScoreOver11 bool `json:"scoreGT11"`
}

// nutritionAssessmentDetails is the free-form part of the comprehensive
// assessment form, stored whole in the details JSONB column.
type nutritionAssessmentDetails struct {
	VN              string          `json:"vn"`
	Assessor        string          `json:"assessor"`
	EnergyDaily     float64         `json:"energyDaily"`
	EnergyTarget    float64         `json:"energyTarget"`
	Source          []string        `json:"source"`
	Diseases        riskFactors     `json:"diseases"`
	DietHistory     dietHistory     `json:"dietHistory"`
	AssessmentCodes map[string]bool `json:"assessmentCodes"`
	NutritionStatus nutritionStatus `json:"nutritionStatus"`
	Problems        map[string]bool `json:"problems"`
	Plans           map[string]bool `json:"plans"`
	Recommendation  string          `json:"recommendation"`
	FollowUp        string          `json:"followUp"`
	Understanding   struct {
		Passed  bool   `json:"passed"`
		Details string `json:"details"`
	} `json:"understanding"`
}

// nutritionAssessment maps to nutrition_assessments. Month is the label the
// assessor picked and is kept even when it disagrees with Date.
type nutritionAssessment struct {
	ID        uuid.UUID                  `json:"id"      db:"id"`
	HN        string                     `json:"hn"      db:"hn"`
	Date      DateOnly                   `json:"date"    db:"date"`
	Month     string                     `json:"month"   db:"month"`
	WeightKG  float64                    `json:"weight"  db:"weight"`
	HeightCM  float64                    `json:"height"  db:"height"`
	BMI       float64                    `json:"bmi"     db:"bmi"`
	IBW       float64                    `json:"ibw"     db:"ibw"`
	Details   nutritionAssessmentDetails `json:"details" db:"details"`
	CreatedAt *time.Time                 `json:"created_at" db:"created_at"`
}

// nutritionAssessmentRow is a nutritionAssessment joined with the patient name.
type nutritionAssessmentRow struct {
	nutritionAssessment
	PatientName string `json:"patient_name" db:"patient_name"`
}

// nutritionLog maps to nutrition_logs: one immutable snapshot of a day's meals.
type nutritionLog struct {
	ID            uuid.UUID  `json:"id"             db:"id"`
	HN            string     `json:"hn"             db:"hn"`
	Date          DateOnly   `json:"date"           db:"date"`
	Meals         mealSet    `json:"meals"          db:"meals"`
	TotalCalories int        `json:"total_calories" db:"total_calories"`
	CreatedAt     *time.Time `json:"created_at"     db:"created_at"`
}

// understandingAssessment maps to understanding_assessments.
type understandingAssessment struct {
	ID           uuid.UUID   `json:"id"            db:"id"`
	HN           string      `json:"hn"            db:"hn"`
	Date         DateOnly    `json:"date"          db:"date"`
	Month        string      `json:"month"         db:"month"`
	Disease      string      `json:"disease"       db:"disease"`
	ScorePre     int         `json:"score_pre"     db:"score_pre"`
	ScorePost    int         `json:"score_post"    db:"score_post"`
	FullScore    int         `json:"full_score"    db:"full_score"`
	Answers      answerSheet `json:"answers"       db:"answers"`
	Comments     string      `json:"comments"      db:"comments"`
	AssessorPre  *string     `json:"assessor_pre"  db:"assessor_pre"`
	AssessorPost *string     `json:"assessor_post" db:"assessor_post"`
	CreatedAt    *time.Time  `json:"created_at"    db:"created_at"`
}

// understandingRow is an understandingAssessment joined with the patient's
// name, age and gender for reports.
type understandingRow struct {
	understandingAssessment
	PatientName   string  `json:"patient_name"   db:"patient_name"`
	PatientAge    *int    `json:"patient_age"    db:"patient_age"`
	PatientGender *string `json:"patient_gender" db:"patient_gender"`
}

// cohortRecord drops the fields the summarizer does not read.
func (r understandingRow) cohortRecord() cohortRecord {
	var g gender
	if r.PatientGender != nil {
		g = gender(*r.PatientGender)
	}
	return cohortRecord{
		Disease:   r.Disease,
		Month:     r.Month,
		Age:       r.PatientAge,
		Gender:    g,
		ScorePre:  r.ScorePre,
		ScorePost: r.ScorePost,
		FullScore: r.FullScore,
		Answers:   r.Answers,
	}
}

/* ─── Request bodies ─────────────────────────────────────────────────── */

// anthropometricsRequest is the body for POST /api/metrics/anthropometrics.
// Age and activity level are only needed for the energy estimate.
type anthropometricsRequest struct {
	WeightKG      float64 `json:"weight"`
	HeightCM      float64 `json:"height"`
	Gender        gender  `json:"gender"`
	Age           *int    `json:"age"`
	ActivityLevel string  `json:"activity_level"`
}

// anthropometricsResponse carries the derived values. Energy fields are
// omitted when they cannot be estimated.
type anthropometricsResponse struct {
	BMI         float64 `json:"bmi"`
	IBW         float64 `json:"ibw"`
	BMR         *int    `json:"bmr,omitempty"`
	EnergyDaily *int    `json:"energy_daily,omitempty"`
}

// upsertPatientRequest is the body for PUT /api/patients.
type upsertPatientRequest struct {
	HN        string   `json:"hn" binding:"required"`
	Prefix    string   `json:"prefix"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Age       *int     `json:"age"`
	Gender    gender   `json:"gender"`
	Religion  *string  `json:"religion"`
	Ward      *string  `json:"ward"`
	AdmitDate *string  `json:"admit_date"` // YYYY-MM-DD
	Diagnosis *string  `json:"diagnosis"`
	WeightKG  *float64 `json:"weight"`
	HeightCM  *float64 `json:"height"`
	DietType  *string  `json:"diet_type"`
}

// patchPatientRequest is the body for PATCH /api/patients/:hn. Only non-nil
// fields are written.
type patchPatientRequest struct {
	Prefix    *string  `json:"prefix"`
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Age       *int     `json:"age"`
	Gender    *gender  `json:"gender"`
	Religion  *string  `json:"religion"`
	Ward      *string  `json:"ward"`
	AdmitDate *string  `json:"admit_date"`
	Diagnosis *string  `json:"diagnosis"`
	WeightKG  *float64 `json:"weight"`
	HeightCM  *float64 `json:"height"`
	DietType  *string  `json:"diet_type"`
}

// createNutritionAssessmentRequest is the body for POST /api/nutrition-assessments.
// BMI and IBW are derived server side from weight, height and gender.
type createNutritionAssessmentRequest struct {
	HN       string                     `json:"hn" binding:"required"`
	Date     string                     `json:"date"`
	Month    string                     `json:"month" binding:"required"`
	WeightKG float64                    `json:"weight"`
	HeightCM float64                    `json:"height"`
	Gender   gender                     `json:"gender"`
	Details  nutritionAssessmentDetails `json:"details"`
}

// createNutritionLogRequest is the body for POST /api/nutrition-logs and
// /api/nutrition-logs/preview.
type createNutritionLogRequest struct {
	HN    string  `json:"hn"`
	Date  string  `json:"date"`
	Meals mealSet `json:"meals"`
}

// understandingRequest is the body for POST /api/understanding and
// /api/understanding/score.
type understandingRequest struct {
	HN           string      `json:"hn"`
	Date         string      `json:"date"`
	Month        string      `json:"month"`
	Disease      string      `json:"disease"`
	Answers      answerSheet `json:"answers"`
	Comments     string      `json:"comments"`
	AssessorPre  *string     `json:"assessor_pre"`
	AssessorPost *string     `json:"assessor_post"`
}

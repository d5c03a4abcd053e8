package main

import (
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// understandingListSQL joins the patient's name, age and gender; month ""
// matches all rows.
const understandingListSQL = `
	SELECT u.*,
	       COALESCE(NULLIF(TRIM(COALESCE(p.first_name, '') || ' ' || COALESCE(p.last_name, '')), ''), 'Unknown') AS patient_name,
	       p.age AS patient_age,
	       p.gender AS patient_gender
	  FROM understanding_assessments u
	  LEFT JOIN patients p ON p.hn = u.hn
	 WHERE (@month = '' OR u.month = @month)
	 ORDER BY u.date DESC, u.created_at DESC`

// scoredUnderstanding is returned by the score preview.
type scoredUnderstanding struct {
	Disease   string   `json:"disease"`
	Questions []string `json:"questions"`
	scoreResult
}

// sessionFromRequest replays a submitted form through an assessment session.
// Answers for question indices outside the disease's set are rejected; the
// lowest such index is reported.
func sessionFromRequest(body understandingRequest) (*assessmentSession, error) {
	s := newAssessmentSession()
	if _, err := s.selectDisease(body.Disease); err != nil {
		return nil, err
	}
	for _, idx := range slices.Sorted(maps.Keys(body.Answers)) {
		pair := body.Answers[idx]
		if err := s.setAnswer(idx, phasePre, pair.Pre); err != nil {
			return nil, err
		}
		if err := s.setAnswer(idx, phasePost, pair.Post); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// getDiseaseCatalog returns every disease with its question set, in form order.
// GET /api/understanding/diseases.
func (h *Handler) getDiseaseCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, diseaseCatalog)
}

// scoreUnderstanding scores a form without saving it. An unknown disease has
// an empty question list, so it scores 0 of 0 and rejects any answer.
// POST /api/understanding/score.
func (h *Handler) scoreUnderstanding(c *gin.Context) {
	var body understandingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	s, err := sessionFromRequest(body)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, scoredUnderstanding{
		Disease:     body.Disease,
		Questions:   s.questions,
		scoreResult: s.result(),
	})
}

// createUnderstanding scores and saves a pre/post understanding assessment.
// Scores are computed here from the answers.
// POST /api/understanding. Defaults date to today if omitted.
func (h *Handler) createUnderstanding(c *gin.Context) {
	var body understandingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.HN = strings.TrimSpace(body.HN)
	body.Month = strings.TrimSpace(body.Month)
	if body.HN == "" || body.Month == "" {
		apiError(c, http.StatusBadRequest, "hn and month are required")
		return
	}
	if !isKnownDisease(body.Disease) {
		apiError(c, http.StatusBadRequest, "unknown disease")
		return
	}
	date, ok := todayOr(body.Date)
	if !ok {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	s, err := sessionFromRequest(body)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	res, answers, err := s.finalize()
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	answersJSON, err := jsonbArg(answers)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid answers")
		return
	}

	saved, err := queryOne[understandingAssessment](h, c,
		`INSERT INTO understanding_assessments
			(hn, date, month, disease, score_pre, score_post, full_score, answers, comments, assessor_pre, assessor_post)
		 VALUES
			(@hn, @date, @month, @disease, @scorePre, @scorePost, @fullScore, @answers::jsonb, @comments, @assessorPre, @assessorPost)
		 RETURNING *`,
		pgx.NamedArgs{
			"hn": body.HN, "date": date, "month": body.Month, "disease": body.Disease,
			"scorePre": res.ScorePre, "scorePost": res.ScorePost, "fullScore": res.FullScore,
			"answers": answersJSON, "comments": body.Comments,
			"assessorPre": body.AssessorPre, "assessorPost": body.AssessorPost,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save assessment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assessment": saved, "result": res})
}

// getUnderstanding lists saved understanding assessments, optionally for one month.
// GET /api/understanding?month=...
func (h *Handler) getUnderstanding(c *gin.Context) {
	rows, err := h.understandingRows(c, strings.TrimSpace(c.Query("month")))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch assessments")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) understandingRows(c *gin.Context, month string) ([]understandingRow, error) {
	rows, err := queryMany[understandingRow](h, c, understandingListSQL, pgx.NamedArgs{"month": month})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []understandingRow{}
	}
	return rows, nil
}

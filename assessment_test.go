package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// yesFor marks the first n questions yes in the given phase.
func yesFor(n int, ph phase) answerSheet {
	s := answerSheet{}
	for i := 0; i < n; i++ {
		var p answerPair
		if ph == phasePost {
			p.Post = answerYes
		} else {
			p.Pre = answerYes
		}
		s[i] = p
	}
	return s
}

func TestScore(t *testing.T) {
	assert.Equal(t, 7, score(yesFor(7, phasePre), 10, phasePre))
	assert.Equal(t, 0, score(yesFor(7, phasePre), 10, phasePost))
}

func TestScore_NoAndUnansweredScoreAlike(t *testing.T) {
	s := answerSheet{
		0: {Pre: answerYes},
		1: {Pre: answerNo},
		2: {Pre: answerUnanswered},
	}
	assert.Equal(t, 1, score(s, 3, phasePre))
}

func TestScore_IgnoresIndicesOutsideQuestionSet(t *testing.T) {
	s := answerSheet{0: {Pre: answerYes}, 5: {Pre: answerYes}, -1: {Pre: answerYes}}
	assert.Equal(t, 1, score(s, 3, phasePre))
}

func TestVerdictFor(t *testing.T) {
	cases := []struct {
		score, total int
		want         verdict
	}{
		{7, 10, verdictPass},
		{6, 10, verdictFail},
		{4, 6, verdictPass},
		{3, 5, verdictFail},
		{0, 8, verdictFail},
		{8, 8, verdictPass},
		{0, 0, verdictNotApplicable},
		{3, 0, verdictNotApplicable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, verdictFor(tc.score, tc.total), "%d/%d", tc.score, tc.total)
	}
}

func TestHasUnanswered(t *testing.T) {
	complete := answerSheet{
		0: {Pre: answerYes, Post: answerYes},
		1: {Pre: answerNo, Post: answerYes},
	}
	assert.False(t, hasUnanswered(complete, 2))
	assert.True(t, hasUnanswered(complete, 3))

	missingPost := answerSheet{0: {Pre: answerYes}}
	assert.True(t, hasUnanswered(missingPost, 1))
}

/* ─── Tri-state JSON ─────────────────────────────────────────────────── */

func TestAnswerSheet_JSONKeepsFalseAndNullApart(t *testing.T) {
	var s answerSheet
	require.NoError(t, json.Unmarshal([]byte(`{
		"0": {"pre": true, "post": false},
		"1": {"pre": null},
		"2": {}
	}`), &s))

	assert.Equal(t, answerPair{Pre: answerYes, Post: answerNo}, s[0])
	assert.Equal(t, answerPair{}, s[1])
	assert.Equal(t, answerPair{}, s[2])

	b, err := json.Marshal(answerSheet{0: {Pre: answerYes, Post: answerNo}, 1: {}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"0":{"pre":true,"post":false},"1":{"pre":null,"post":null}}`, string(b))
}

func TestAnswer_RejectsNonBoolean(t *testing.T) {
	var s answerSheet
	err := json.Unmarshal([]byte(`{"0": {"pre": "yes"}}`), &s)
	assert.Error(t, err)
}

/* ─── Session ────────────────────────────────────────────────────────── */

func TestSession_SelectDiseaseLoadsQuestions(t *testing.T) {
	s := newAssessmentSession()
	qs, err := s.selectDisease("DM")
	require.NoError(t, err)
	assert.Len(t, qs, 10)
	assert.Equal(t, 10, s.total())
}

func TestSession_ScoresAndVerdicts(t *testing.T) {
	s := newAssessmentSession()
	_, err := s.selectDisease("DM")
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		require.NoError(t, s.setAnswer(i, phasePre, answerYes))
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, s.setAnswer(i, phasePost, answerYes))
	}

	r := s.result()
	assert.Equal(t, 7, r.ScorePre)
	assert.Equal(t, 10, r.ScorePost)
	assert.Equal(t, 10, r.FullScore)
	assert.Equal(t, verdictPass, r.VerdictPre)
	assert.Equal(t, verdictPass, r.VerdictPost)
	assert.True(t, r.Incomplete)
}

func TestSession_ReselectResetsAnswers(t *testing.T) {
	s := newAssessmentSession()
	_, _ = s.selectDisease("DM")
	require.NoError(t, s.setAnswer(0, phasePre, answerYes))
	assert.Equal(t, 1, s.score(phasePre))

	// Same disease again still clears.
	_, err := s.selectDisease("DM")
	require.NoError(t, err)
	assert.Equal(t, 0, s.score(phasePre))

	_, err = s.selectDisease("HT")
	require.NoError(t, err)
	assert.Equal(t, 8, s.total())
	assert.Empty(t, s.answers)
}

func TestSession_UnknownDiseaseHasNoQuestions(t *testing.T) {
	s := newAssessmentSession()
	qs, err := s.selectDisease("Cancer")
	require.NoError(t, err)
	assert.NotNil(t, qs)
	assert.Empty(t, qs)

	r := s.result()
	assert.Equal(t, 0, r.FullScore)
	assert.Equal(t, verdictNotApplicable, r.VerdictPre)
	assert.Equal(t, verdictNotApplicable, r.VerdictPost)
	assert.ErrorIs(t, s.setAnswer(0, phasePre, answerYes), errQuestionOutOfRange)
}

func TestSession_SetAnswerBeforeSelect(t *testing.T) {
	s := newAssessmentSession()
	assert.ErrorIs(t, s.setAnswer(0, phasePre, answerYes), errNoDiseaseSelected)
	_, _, err := s.finalize()
	assert.ErrorIs(t, err, errNoDiseaseSelected)
}

func TestSession_OutOfRange(t *testing.T) {
	s := newAssessmentSession()
	_, _ = s.selectDisease("Gout")
	assert.ErrorIs(t, s.setAnswer(6, phasePre, answerYes), errQuestionOutOfRange)
	assert.ErrorIs(t, s.setAnswer(-1, phasePost, answerYes), errQuestionOutOfRange)
}

func TestSession_FinalizedIsImmutable(t *testing.T) {
	s := newAssessmentSession()
	_, _ = s.selectDisease("Stroke")
	require.NoError(t, s.setAnswer(0, phasePre, answerYes))

	r, answers, err := s.finalize()
	require.NoError(t, err)
	assert.Equal(t, 1, r.ScorePre)
	assert.Equal(t, 6, r.FullScore)
	assert.Equal(t, answerPair{Pre: answerYes}, answers[0])

	assert.ErrorIs(t, s.setAnswer(1, phasePre, answerYes), errSessionFinalized)
	_, err = s.selectDisease("DM")
	assert.ErrorIs(t, err, errSessionFinalized)
	_, _, err = s.finalize()
	assert.ErrorIs(t, err, errSessionFinalized)

	// The returned sheet is a copy.
	answers[1] = answerPair{Pre: answerYes}
	assert.Equal(t, 1, s.score(phasePre))
}

func TestDiseaseCatalog(t *testing.T) {
	want := map[string]int{"DM": 10, "HT": 8, "DLP": 8, "CKD": 10, "Gout": 6, "Heart": 8, "Stroke": 6}
	require.Len(t, diseaseCatalog, len(want))
	for _, d := range diseaseCatalog {
		assert.Len(t, d.Questions, want[d.Disease], d.Disease)
		assert.True(t, isKnownDisease(d.Disease))
	}
	assert.Equal(t, "DM", diseaseCatalog[0].Disease)
	assert.False(t, isKnownDisease("dm"))
}

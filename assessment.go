package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

/* ─── Answers ────────────────────────────────────────────────────────── */

// answer is a tri-state response to one question in one phase. Unanswered
// (not yet assessed) and no (assessed, not understood) score the same but are
// kept apart in storage.
type answer int8

const (
	answerUnanswered answer = iota
	answerYes
	answerNo
)

// MarshalJSON writes true, false or null.
func (a answer) MarshalJSON() ([]byte, error) {
	switch a {
	case answerYes:
		return []byte("true"), nil
	case answerNo:
		return []byte("false"), nil
	}
	return []byte("null"), nil
}

func (a *answer) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*a = answerUnanswered
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("answer must be true, false or null: %w", err)
	}
	if v {
		*a = answerYes
	} else {
		*a = answerNo
	}
	return nil
}

// phase selects the before-advice or after-advice column of the form.
type phase string

const (
	phasePre  phase = "pre"
	phasePost phase = "post"
)

// answerPair holds both phases for one question. Absent JSON fields decode as
// unanswered.
type answerPair struct {
	Pre  answer `json:"pre"`
	Post answer `json:"post"`
}

func (p answerPair) get(ph phase) answer {
	if ph == phasePost {
		return p.Post
	}
	return p.Pre
}

// answerSheet maps question index to its answers. Stored as JSONB with the
// index as object key, the shape the data-entry form saves.
type answerSheet map[int]answerPair

/* ─── Scoring ────────────────────────────────────────────────────────── */

// passThreshold is the fraction of correct answers that must be exceeded.
const passThreshold = 0.6

type verdict string

const (
	verdictPass          verdict = "pass"
	verdictFail          verdict = "fail"
	verdictNotApplicable verdict = "n/a"
)

// score counts the questions 0..total-1 answered yes in the given phase.
// Answers recorded against indices outside the question set are ignored.
func score(answers answerSheet, total int, ph phase) int {
	n := 0
	for i := 0; i < total; i++ {
		if answers[i].get(ph) == answerYes {
			n++
		}
	}
	return n
}

// verdictFor passes when score/total is strictly greater than 60%. A zero
// question count has no verdict.
func verdictFor(score, total int) verdict {
	if total <= 0 {
		return verdictNotApplicable
	}
	if float64(score)/float64(total) > passThreshold {
		return verdictPass
	}
	return verdictFail
}

// hasUnanswered reports whether any question in 0..total-1 is still
// unanswered in either phase.
func hasUnanswered(answers answerSheet, total int) bool {
	for i := 0; i < total; i++ {
		p := answers[i]
		if p.Pre == answerUnanswered || p.Post == answerUnanswered {
			return true
		}
	}
	return false
}

/* ─── Session ────────────────────────────────────────────────────────── */

type sessionState int

const (
	sessionUnselected sessionState = iota
	sessionInProgress
	sessionFinalized
)

func (s sessionState) String() string {
	switch s {
	case sessionInProgress:
		return "in_progress"
	case sessionFinalized:
		return "finalized"
	}
	return "unselected"
}

var (
	errSessionFinalized   = errors.New("assessment is finalized")
	errNoDiseaseSelected  = errors.New("no disease selected")
	errQuestionOutOfRange = errors.New("question index out of range")
)

// assessmentSession tracks one understanding assessment from disease selection
// to save. Not safe for concurrent use.
type assessmentSession struct {
	state     sessionState
	disease   string
	questions []string
	answers   answerSheet
}

func newAssessmentSession() *assessmentSession {
	return &assessmentSession{answers: answerSheet{}}
}

// selectDisease loads the disease's question set and discards every answer
// recorded so far, even when the same disease is selected again. Unknown
// diseases yield an empty question set.
func (s *assessmentSession) selectDisease(name string) ([]string, error) {
	if s.state == sessionFinalized {
		return nil, errSessionFinalized
	}
	s.disease = name
	s.questions = questionsFor(name)
	s.answers = answerSheet{}
	s.state = sessionInProgress
	return s.questions, nil
}

func (s *assessmentSession) setAnswer(idx int, ph phase, a answer) error {
	switch s.state {
	case sessionUnselected:
		return errNoDiseaseSelected
	case sessionFinalized:
		return errSessionFinalized
	}
	if idx < 0 || idx >= len(s.questions) {
		return fmt.Errorf("%w: %d", errQuestionOutOfRange, idx)
	}
	p := s.answers[idx]
	if ph == phasePost {
		p.Post = a
	} else {
		p.Pre = a
	}
	s.answers[idx] = p
	return nil
}

func (s *assessmentSession) total() int { return len(s.questions) }

func (s *assessmentSession) score(ph phase) int {
	return score(s.answers, s.total(), ph)
}

// scoreResult is the derived part of an understanding assessment.
type scoreResult struct {
	ScorePre    int     `json:"score_pre"`
	ScorePost   int     `json:"score_post"`
	FullScore   int     `json:"full_score"`
	VerdictPre  verdict `json:"verdict_pre"`
	VerdictPost verdict `json:"verdict_post"`
	Incomplete  bool    `json:"incomplete"`
}

func (s *assessmentSession) result() scoreResult {
	pre, post, total := s.score(phasePre), s.score(phasePost), s.total()
	return scoreResult{
		ScorePre:    pre,
		ScorePost:   post,
		FullScore:   total,
		VerdictPre:  verdictFor(pre, total),
		VerdictPost: verdictFor(post, total),
		Incomplete:  hasUnanswered(s.answers, total),
	}
}

// finalize freezes the session. The returned answers are a copy; later calls
// to setAnswer fail.
func (s *assessmentSession) finalize() (scoreResult, answerSheet, error) {
	switch s.state {
	case sessionUnselected:
		return scoreResult{}, nil, errNoDiseaseSelected
	case sessionFinalized:
		return scoreResult{}, nil, errSessionFinalized
	}
	s.state = sessionFinalized
	frozen := make(answerSheet, len(s.answers))
	for k, v := range s.answers {
		frozen[k] = v
	}
	return s.result(), frozen, nil
}

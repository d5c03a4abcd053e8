package main

// cohortRecord is one saved understanding assessment joined with the patient's
// age and gender at report time. Age is nil when the patient row has none.
type cohortRecord struct {
	Disease   string
	Month     string
	Age       *int
	Gender    gender
	ScorePre  int
	ScorePost int
	FullScore int
	Answers   answerSheet
}

// cohortStatRow is one line of the monthly understanding report.
// Percentages are rounded independently, so MalePct+FemalePct may differ
// from 100 by one. ImprovementPct is SignedImprovementPct clamped at 0 for
// display.
type cohortStatRow struct {
	Name                 string `json:"name"`
	N                    int    `json:"n"`
	AvgAge               int    `json:"avg_age"`
	MalePct              int    `json:"male_pct"`
	FemalePct            int    `json:"female_pct"`
	PassPrePct           int    `json:"pass_pre_pct"`
	PassPostPct          int    `json:"pass_post_pct"`
	ImprovementPct       int    `json:"improvement_pct"`
	SignedImprovementPct int    `json:"signed_improvement_pct"`
	Incomplete           int    `json:"incomplete"`
}

// summarizeByDisease groups records by disease in first-seen order.
func summarizeByDisease(records []cohortRecord) []cohortStatRow {
	return summarizeBy(records, func(r cohortRecord) string { return r.Disease })
}

// summarizeByMonth groups records by their stored month label.
func summarizeByMonth(records []cohortRecord) []cohortStatRow {
	return summarizeBy(records, func(r cohortRecord) string { return r.Month })
}

func summarizeBy(records []cohortRecord, key func(cohortRecord) string) []cohortStatRow {
	var order []string
	groups := make(map[string][]cohortRecord)
	for _, r := range records {
		k := key(r)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	rows := make([]cohortStatRow, 0, len(order))
	for _, k := range order {
		if row, ok := summarizeGroup(k, groups[k]); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// summarizeGroup returns ok=false for an empty group.
func summarizeGroup(name string, items []cohortRecord) (cohortStatRow, bool) {
	n := len(items)
	if n == 0 {
		return cohortStatRow{}, false
	}

	var ageSum, males, passPre, passPost, incomplete int
	var improvementSum float64
	for _, r := range items {
		if r.Age != nil {
			ageSum += *r.Age
		}
		if r.Gender.isMale() {
			males++
		}
		if verdictFor(r.ScorePre, r.FullScore) == verdictPass {
			passPre++
		}
		if verdictFor(r.ScorePost, r.FullScore) == verdictPass {
			passPost++
		}
		if r.FullScore > 0 {
			improvementSum += float64(r.ScorePost-r.ScorePre) / float64(r.FullScore) * 100
		}
		if r.Answers != nil && hasUnanswered(r.Answers, r.FullScore) {
			incomplete++
		}
	}

	signed := roundHalfUp(improvementSum / float64(n))
	return cohortStatRow{
		Name:                 name,
		N:                    n,
		AvgAge:               roundHalfUp(float64(ageSum) / float64(n)),
		MalePct:              percent(males, n),
		FemalePct:            percent(n-males, n),
		PassPrePct:           percent(passPre, n),
		PassPostPct:          percent(passPost, n),
		ImprovementPct:       max(signed, 0),
		SignedImprovementPct: signed,
		Incomplete:           incomplete,
	}, true
}

// percent returns round(part/whole*100), or 0 when whole is 0.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return roundHalfUp(float64(part) / float64(whole) * 100)
}

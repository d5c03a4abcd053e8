package main

import (
	"strings"
	"time"
)

// monthLabels are the month names the data-entry forms store in the month
// column, January first.
var monthLabels = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// monthLabel returns the stored label for t's month.
func monthLabel(t time.Time) string {
	return monthLabels[t.Month()-1]
}

// reportMonth reads the month query parameter, defaulting to the current
// month's label. The value is matched verbatim against the stored column.
func reportMonth(q string, now time.Time) string {
	if m := strings.TrimSpace(q); m != "" {
		return m
	}
	return monthLabel(now)
}

// todayOr returns s, or today's date as YYYY-MM-DD when s is blank.
// ok=false when s is not a valid date.
func todayOr(s string) (string, bool) {
	if s == "" {
		return time.Now().Format("2006-01-02"), true
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}

package engine

import (
	"fmt"
	"time"
)

// dateLayout is the ISO calendar-date form used throughout the engine.
// Lexicographic comparison of two such strings matches chronological order.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// daysBetween returns the whole-day distance from a to b (positive when b is
// later). Both strings must already be validated ISO dates.
func daysBetween(b, a string) int {
	tb, _ := parseDate(b)
	ta, _ := parseDate(a)
	return int(tb.Sub(ta).Hours() / 24)
}

// isoWeek returns the ISO-8601 year and week number for an ISO date string.
// Weeks start Monday; week 1 contains the year's first Thursday.
func isoWeek(date string) (year, week int) {
	t, _ := parseDate(date)
	return t.ISOWeek()
}

// dayLabel renders a short US-style display label, e.g. "Sun 8/10".
// Anything fancier (locale, units) belongs to the caller's presentation layer.
func dayLabel(date string) string {
	t, err := parseDate(date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d/%d", t.Format("Mon"), int(t.Month()), t.Day())
}

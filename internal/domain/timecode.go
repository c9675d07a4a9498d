package domain

import (
	"fmt"
	"strconv"
	"time"
)

const displayDateLayout = "02/01/2006 15:04"

// TimeCode returns the 4-digit 24-hour time-of-day code, e.g. "0930".
func TimeCode(t time.Time) string {
	return t.Format("1504")
}

// FormatDisplayDate renders the log display date, "DD/MM/YYYY HH:MM".
func FormatDisplayDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// ParseDisplayDate parses a log DATE back to an instant. The format is
// exact; anything else is a malformed date, which views treat as unknown
// rather than failing the whole report.
func ParseDisplayDate(s string) (time.Time, error) {
	t, err := time.Parse(displayDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// TimestampKey returns the sortable LOGS map key, "YYYYMMDDHHmm".
// Minute granularity: two events for the same order within the same minute
// share a key and the later one wins. Accepted limitation of the format.
func TimestampKey(t time.Time) string {
	return t.Format("200601021504")
}

// ComputeDuration returns the elapsed minutes between two HHMM time codes,
// floored at 1. The subtraction is legacy base-100 integer arithmetic,
// kept so durations match already-exported datasets; it over-counts
// across hour boundaries.
func ComputeDuration(start, end string) int {
	s, _ := strconv.Atoi(start)
	e, _ := strconv.Atoi(end)
	if d := e - s; d >= 1 {
		return d
	}
	return 1
}

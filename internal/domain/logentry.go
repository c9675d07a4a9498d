package domain

import (
	"fmt"
	"time"
)

// Log STATUS value written for synthesized intake entries.
const StatusComplete = "COMPLETE"

// LogEntry is one recorded activity against an order. Immutable once
// appended. Serialization mirrors the exported dataset format.
type LogEntry struct {
	Date      string `json:"DATE"`
	User      string `json:"USER"`
	Area      string `json:"AREA"`
	Line      string `json:"LINE"`
	StartTime string `json:"STARTTIME"`
	EndTime   string `json:"ENDTIME"`
	Duration  int    `json:"DURATION"`
	Status    string `json:"STATUS"`
	Notes     string `json:"NOTES"`
}

// ScanInput are the raw scan-form fields a log entry is built from.
type ScanInput struct {
	User      string
	Area      string
	SubArea   string
	Line      string
	StartTime string
	EndTime   string
	Status    string
	Notes     string
}

// NewScanLog builds the log entry for a production scan.
func NewScanLog(now time.Time, in ScanInput) LogEntry {
	return LogEntry{
		Date:      FormatDisplayDate(now),
		User:      in.User,
		Area:      fmt.Sprintf("%s - %s", in.Area, in.SubArea),
		Line:      in.Line,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Duration:  ComputeDuration(in.StartTime, in.EndTime),
		Status:    in.Status,
		Notes:     in.Notes,
	}
}

// NewIntakeLog synthesizes the office write-up entry recorded when an order
// is first created. Start and end are the same instant, so duration is 0.
func NewIntakeLog(now time.Time, user string, writtenUp bool, notes string) LogEntry {
	area := "Office - "
	if writtenUp {
		area = "Office - WRITTEN-UP"
	}
	code := TimeCode(now)
	return LogEntry{
		Date:      FormatDisplayDate(now),
		User:      user,
		Area:      area,
		StartTime: code,
		EndTime:   code,
		Duration:  0,
		Status:    StatusComplete,
		Notes:     notes,
	}
}

// LatestLog returns the entry with the most recent parseable DATE, along
// with its map key. Entries whose DATE does not parse are skipped; ties on
// DATE go to the larger timestamp key so the result is deterministic.
// ok is false when the order has no entry with a valid date.
func LatestLog(o *Order) (entry LogEntry, key string, ok bool) {
	var best time.Time
	for k, e := range o.Logs {
		t, err := ParseDisplayDate(e.Date)
		if err != nil {
			continue
		}
		if !ok || t.After(best) || (t.Equal(best) && k > key) {
			entry, key, best, ok = e, k, t, true
		}
	}
	return entry, key, ok
}

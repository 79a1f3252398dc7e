package pipeline

import (
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// dateLayouts lists the accepted date formats in the order they are tried.
// "1/2/2006" accepts both M/D/YYYY and MM/DD/YYYY.
var dateLayouts = []string{
	isoDate,
	"1/2/2006",
	"1-2-2006",
	"2006/1/2",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// parseDate returns the calendar date of s in UTC.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		// timestamps with an offset are reduced to their UTC calendar day
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// NormalizeDate reports whether s is an accepted date and returns it as YYYY-MM-DD.
func NormalizeDate(s string) (string, bool) {
	t, ok := parseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(isoDate), true
}

// compareDates orders date keys chronologically. Keys that are not dates
// sort after all real dates, lexically among themselves.
func compareDates(a, b string) int {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

package util

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of a log date.
const DateLayout = "2006-01-02"

// FormatHours renders an hour total with one decimal, e.g. "10.5h".
func FormatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// ParseDate reads a log date given as YYYY-MM-DD or as a full RFC3339
// timestamp. The result is that calendar day at midnight UTC, so dates from
// either form compare equal.
func ParseDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if t, err := time.Parse(DateLayout, date); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate shows a log date as MM/DD/YYYY. Anything that does not parse is
// returned unchanged so the sheet still has a title.
func FormatDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("01/02/2006")
}

// HumanizeStatus replaces the first underscore of a status with a space,
// e.g. "off_duty" -> "off duty".
func HumanizeStatus(status string) string {
	return strings.Replace(status, "_", " ", 1)
}

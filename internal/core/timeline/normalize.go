package timeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

var (
	ErrMissingTime     = errors.New("time value missing")
	ErrMalformedTime   = errors.New("malformed clock time")
	ErrUnsupportedTime = errors.New("unsupported time value")
)

// Normalize resolves a time value to a fractional hour of day.
//
// Numbers pass through untouched, including values outside [0, 24). Strings
// must contain a colon; the first two components are parsed as integer hour
// and minute. Missing values and values of any other shape return 0 together
// with an error so the caller can decide whether 0 is acceptable.
func Normalize(tv model.TimeValue) (float64, error) {
	switch tv.Kind {
	case model.TimeHours:
		return tv.Hours, nil
	case model.TimeClock:
		return parseClock(tv.Clock)
	case model.TimeAbsent:
		return 0, ErrMissingTime
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedTime, tv.Raw)
	}
}

func parseClock(s string) (float64, error) {
	if !strings.Contains(s, ":") {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedTime, s)
	}

	parts := strings.Split(s, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: hour in %q", ErrMalformedTime, s)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: minute in %q", ErrMalformedTime, s)
	}

	return float64(hour) + float64(minute)/60, nil
}

// HourOfDay is Normalize for display purposes: any failure yields 0.
func HourOfDay(tv model.TimeValue) float64 {
	h, err := Normalize(tv)
	if err != nil {
		return 0
	}
	return h
}

// FormatClock renders a time value for entry tables. Strings are shown as
// supplied, numbers as zero-padded HH:MM with minutes floored, anything else
// as "--:--".
func FormatClock(tv model.TimeValue) string {
	switch tv.Kind {
	case model.TimeClock:
		return tv.Clock
	case model.TimeHours:
		h := math.Floor(tv.Hours)
		m := math.Floor((tv.Hours - h) * 60)
		return fmt.Sprintf("%02d:%02d", int(h), int(m))
	default:
		return "--:--"
	}
}

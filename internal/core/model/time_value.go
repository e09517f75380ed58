package model

import (
	"bytes"
	"strconv"

	"github.com/bytedance/sonic"
)

// TimeKind tags which arm of TimeValue is populated.
type TimeKind int

const (
	TimeAbsent TimeKind = iota
	TimeHours
	TimeClock
	TimeOther
)

// TimeValue is an entry boundary as it arrived on the wire: a fractional hour
// of day, an "HH:MM" string, nothing at all, or a value of some other type.
type TimeValue struct {
	Kind  TimeKind
	Hours float64
	Clock string
	Raw   string // raw JSON text for TimeOther, kept for diagnostics
}

// HoursValue builds a numeric time value.
func HoursValue(h float64) TimeValue {
	return TimeValue{Kind: TimeHours, Hours: h}
}

// ClockValue builds a formatted "HH:MM" time value.
func ClockValue(s string) TimeValue {
	return TimeValue{Kind: TimeClock, Clock: s}
}

// IsAbsent reports whether the field was missing or null.
func (tv TimeValue) IsAbsent() bool {
	return tv.Kind == TimeAbsent
}

func (tv *TimeValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*tv = TimeValue{Kind: TimeAbsent}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := sonic.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*tv = ClockValue(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var f float64
		if err := sonic.Unmarshal(trimmed, &f); err != nil {
			return err
		}
		*tv = HoursValue(f)
		return nil
	}

	// Booleans, objects and arrays are kept rather than failing the whole log.
	*tv = TimeValue{Kind: TimeOther, Raw: string(trimmed)}
	return nil
}

func (tv TimeValue) MarshalJSON() ([]byte, error) {
	switch tv.Kind {
	case TimeHours:
		return []byte(strconv.FormatFloat(tv.Hours, 'f', -1, 64)), nil
	case TimeClock:
		return sonic.Marshal(tv.Clock)
	case TimeOther:
		if tv.Raw != "" {
			return []byte(tv.Raw), nil
		}
	}
	return []byte("null"), nil
}

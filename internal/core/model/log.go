package model

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// DailyLog is one calendar day of a driver's duty-status record as produced by
// the trip planner. Totals are authoritative and independent of Entries.
type DailyLog struct {
	Date                   string  `json:"date"`
	TotalOffDutyHours      Hours   `json:"total_off_duty_hours"`
	TotalSleeperBerthHours Hours   `json:"total_sleeper_berth_hours"`
	TotalDrivingHours      Hours   `json:"total_driving_hours"`
	TotalOnDutyHours       Hours   `json:"total_on_duty_hours"`
	Entries                Entries `json:"log_data"`
}

// DutyStatusEntry is one contiguous interval in a single duty status.
type DutyStatusEntry struct {
	StartTime TimeValue `json:"start_time"`
	EndTime   TimeValue `json:"end_time"`
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Activity  string    `json:"activity,omitempty"`
}

// Category resolves the entry status onto the closed enumeration.
func (e DutyStatusEntry) Category() Category {
	return ParseCategory(e.Status)
}

// Hours is an optional non-negative hour total. Values that are missing, null
// or not numbers decode as not Valid instead of failing the log.
type Hours struct {
	Value float64
	Valid bool
}

// NewHours returns a valid Hours.
func NewHours(v float64) Hours {
	return Hours{Value: v, Valid: true}
}

// OrZero returns the value, or 0 when the total was not supplied.
func (h Hours) OrZero() float64 {
	if !h.Valid {
		return 0
	}
	return h.Value
}

func (h *Hours) UnmarshalJSON(data []byte) error {
	*h = Hours{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var f float64
	if err := sonic.Unmarshal(data, &f); err != nil {
		// Non-numeric totals fall back to zero at display time.
		return nil
	}
	*h = NewHours(f)
	return nil
}

func (h Hours) MarshalJSON() ([]byte, error) {
	if !h.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(h.Value, 'f', -1, 64)), nil
}

// Entries is the ordered entry list of a day. The planner stores it as JSON
// text, so a string holding the encoded array is accepted as well.
type Entries []DutyStatusEntry

func (es *Entries) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*es = nil
		return nil
	}

	var items []DutyStatusEntry
	if err := sonic.Unmarshal(trimmed, &items); err == nil {
		*es = items
		return nil
	}

	var encoded string
	if err := sonic.Unmarshal(trimmed, &encoded); err == nil {
		if encoded == "" {
			*es = nil
			return nil
		}
		if err := sonic.UnmarshalString(encoded, &items); err != nil {
			return fmt.Errorf("log_data string does not hold an entry array: %w", err)
		}
		*es = items
		return nil
	}

	return fmt.Errorf("log_data must be either an array of entries or a JSON string")
}

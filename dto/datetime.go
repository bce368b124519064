package dto

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the fixed textual timestamp pattern used on every wire
// boundary, main service and stats service alike. No timezone component.
const TimeLayout = "2006-01-02 15:04:05"

// DateTime marshals as "yyyy-MM-dd HH:mm:ss" for compatibility with existing
// clients.
type DateTime time.Time

// MarshalJSON renders the fixed layout.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(d).Format(TimeLayout))), nil
}

// UnmarshalJSON accepts the fixed layout only.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return err
	}
	*d = DateTime(t)
	return nil
}

// Time converts back to time.Time.
func (d DateTime) Time() time.Time {
	return time.Time(d)
}

// ParseDateTime parses a query-string timestamp in the wire layout.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}

// FormatDateTime renders t in the wire layout.
func FormatDateTime(t time.Time) string {
	return t.Format(TimeLayout)
}

package helpers

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
	DisplayLayout   = "2006-01-02 03:04 PM"
)

// ParseDate reads the calendar date at the start of s. Stored values may be a
// bare date or a full timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Parse(DateLayout, s[:len(DateLayout)])
}

func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampLayout, time.RFC3339, "2006-01-02T15:04:05", DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// DisplayTimestamp renders a stored timestamp for people, falling back to the
// raw value when it does not parse.
func DisplayTimestamp(s string) string {
	t, err := ParseTimestamp(s)
	if err != nil {
		return s
	}
	return t.Format(DisplayLayout)
}

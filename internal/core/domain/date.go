package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for purchase and change dates
const DateLayout = "2006-01-02"

// Epoch is the fallback for dates that cannot be parsed; it sorts before every real date
var Epoch = time.Unix(0, 0).UTC()

// ParseDate parses a calendar date (midnight UTC) or a full RFC 3339 timestamp
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// EffectiveTime is ParseDate with the epoch fallback
func EffectiveTime(s string) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return Epoch
}

// FormatDate renders t as a calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimestamp parses a creation time; empty or malformed input yields the zero time
func ParseTimestamp(s string) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return time.Time{}
}

// decodeTimestamp reads a stored createdAt value, which may be null, empty or not a string
func decodeTimestamp(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	return ParseTimestamp(s)
}

package domain

import (
	"strings"
	"time"
)

// DatetimeLayout is the timestamp format used throughout the API.
const DatetimeLayout = "2006-01-02T15:04:05Z"

// NeverScanned renders a zero LastScan.
const NeverScanned = "never"

var datetimeLayouts = []string{
	DatetimeLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDatetime parses an API timestamp as UTC. element names the field in
// the returned MalformedResponseError.
func ParseDatetime(element, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, &MalformedResponseError{Element: element, Err: lastErr}
}

// ParseOptionalDatetime is ParseDatetime that maps an empty value to the zero time.
func ParseOptionalDatetime(element, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return ParseDatetime(element, value)
}

// FormatDatetime is the inverse of ParseDatetime; the zero time renders empty.
func FormatDatetime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DatetimeLayout)
}

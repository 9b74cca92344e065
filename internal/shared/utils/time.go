package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are the accepted ISO-8601 shapes for query parameters and
// CSV start_time values, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp string in one of the accepted
// layouts. Timestamps without an explicit offset are interpreted as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp format %q: expected ISO format (e.g. 2022-12-01T00:00:00)", value)
}

// FormatTimestamp renders a timestamp the way the API reports reference
// dates: ISO-8601 seconds precision, no offset suffix for UTC values.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

// ParseUsageTime converts an H:MM:SS duration string into total seconds.
// The hours field has no upper bound; sessions longer than a day show up
// as e.g. "26:05:12".
func ParseUsageTime(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid usage time %q: expected H:MM:SS", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid usage time %q: bad hours field", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid usage time %q: bad minutes field", value)
	}
	seconds, err := strconv.Atoi(parts[2])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("invalid usage time %q: bad seconds field", value)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

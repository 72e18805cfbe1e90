package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ActivityLayout renders timestamps on the recent-activity feed.
const ActivityLayout = "Jan 2 15:04"

// UnknownActivityLabel is shown when a record carries no usable timestamp.
const UnknownActivityLabel = "a few minutes ago"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseTimestamp accepts the timestamp shapes upstreams emit: RFC 3339,
// SQL-style datetimes, bare dates and unix epochs in seconds or milliseconds.
// Anything else yields the zero time.
func ParseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
		if n >= 1e12 {
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	}
	return time.Time{}
}

// ActivityLabel formats t in UTC, or returns UnknownActivityLabel for the zero time.
func ActivityLabel(t time.Time) string {
	if t.IsZero() {
		return UnknownActivityLabel
	}
	return t.UTC().Format(ActivityLayout)
}

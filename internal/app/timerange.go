package app

import (
	"fmt"
	"time"
)

// parseStart parses a range start that may be RFC3339 or YYYY-MM-DD.
// If empty, defaultVal is returned.
func parseStart(val string, defaultVal time.Time, loc *time.Location) (time.Time, error) {
	if val == "" {
		return defaultVal, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.ParseInLocation("2006-01-02", val, loc); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q", val)
}

// parseEnd parses a range end that may be RFC3339 or YYYY-MM-DD. The
// date-only form is inclusive: it converts to the next day's midnight.
func parseEnd(val string, defaultVal time.Time, loc *time.Location) (time.Time, error) {
	if val == "" {
		return defaultVal, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.ParseInLocation("2006-01-02", val, loc); err == nil {
		return d.AddDate(0, 0, 1), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q", val)
}

// ParseDateRange is the CLI-facing form of the from/to parsing the HTTP
// layer does: empty values default to the last 24 hours.
func ParseDateRange(fromStr, toStr string, loc *time.Location) (time.Time, time.Time, error) {
	now := time.Now().In(loc)
	to, err := parseEnd(toStr, now, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, err := parseStart(fromStr, to.Add(-24*time.Hour), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

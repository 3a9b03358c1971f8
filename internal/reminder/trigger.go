// internal/reminder/trigger.go
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseOffset decodes a relative reminder offset such as "2d", "3h" or
// "30m". An unrecognized trailing unit yields a zero offset (the reminder
// fires at the due instant itself); a missing or malformed number counts
// as zero.
func ParseOffset(s string) time.Duration {
	var unit time.Duration
	switch {
	case strings.HasSuffix(s, "d"):
		unit = 24 * time.Hour
	case strings.HasSuffix(s, "h"):
		unit = time.Hour
	case strings.HasSuffix(s, "m"):
		unit = time.Minute
	default:
		return 0
	}

	n, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil {
		n = 0
	}
	return time.Duration(n) * unit
}

// TriggerTime computes the absolute fire instant for one offset entry.
func TriggerTime(dueInstant time.Time, offset string) time.Time {
	return dueInstant.Add(-ParseOffset(offset))
}

// NextDailyOccurrence returns the next wall-clock occurrence of an
// "HH:mm" time: today if it has not passed yet, otherwise tomorrow.
func NextDailyOccurrence(now time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid daily reminder time %q: %w", hhmm, err)
	}

	candidate := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if candidate.Before(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate, nil
}

// DailyCronSpec converts an "HH:mm" time to a six-field cron spec that
// fires once a day at that time.
func DailyCronSpec(hhmm string) (string, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:mm", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", hhmm)
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}

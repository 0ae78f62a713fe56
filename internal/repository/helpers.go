package repository

import "time"

const (
	timeLayout = time.RFC3339
	dateLayout = "2006-01-02"
)

// parseTime parses a stored timestamp, tolerating bare dates written by
// older rows. Unparseable values yield the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	return time.Time{}
}

// formatDate stores a date-valued time as its date only.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// secondsToDuration converts stored integer seconds to a time.Duration.
func secondsToDuration(s int64) time.Duration {
	return time.Duration(s) * time.Second
}

func durationToSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

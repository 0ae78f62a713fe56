package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// durationPattern accepts natural-language durations like "1 hour",
// "2.5 hours", "30 minutes", "1hr", "45m", "2 days".
var durationPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([a-zA-Z]+)\s*$`)

var unitSeconds = map[string]float64{
	"s": 1, "sec": 1, "secs": 1, "second": 1, "seconds": 1,
	"m": 60, "min": 60, "mins": 60, "minute": 60, "minutes": 60,
	"h": 3600, "hr": 3600, "hrs": 3600, "hour": 3600, "hours": 3600,
	"d": 86400, "day": 86400, "days": 86400,
	"w": 604800, "week": 604800, "weeks": 604800,
}

// ParseDuration parses a natural-language duration string. Unparseable
// input yields a zero duration, never an error: callers depend on time
// logging and item creation silently succeeding with a zero estimate when
// the supplied string is junk.
func ParseDuration(s string) time.Duration {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	mult, ok := unitSeconds[strings.ToLower(m[2])]
	if !ok {
		return 0
	}
	return time.Duration(n * mult * float64(time.Second))
}

// TruncateString shortens s to at most n bytes, appending "..." when
// anything was cut.
func TruncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package domain

import (
	"fmt"
	"time"
)

// ActualTime is a logged duration of work against an item. Rows are
// append-only and aggregated for resolve-time reporting.
type ActualTime struct {
	ID        int64
	ItemID    int64
	Resolver  string
	Duration  time.Duration
	Completed time.Time
}

// FormatHours renders a duration as decimal hours, e.g. "1.00 hours".
func FormatHours(d time.Duration) string {
	return fmt.Sprintf("%.2f hours", d.Seconds()/3600)
}

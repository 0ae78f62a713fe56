package domain

import (
	"fmt"
	"strings"
	"time"
)

// Item is an action item or bug tracked against a milestone.
type Item struct {
	IID           int64
	Type          ItemType
	Title         string
	Status        ItemStatus
	RStatus       ResolveStatus
	Priority      int
	Owner         string
	AssignedTo    string
	MilestoneID   int64
	TargetDate    time.Time
	EstimatedTime time.Duration
	Description   string
	LastMod       time.Time
}

// upcomingWindowDays is the window inside which an item counts as upcoming
// rather than ok. overdueWindowDays is the window, inclusive, inside which a
// past-due item counts as overdue rather than late.
const (
	upcomingWindowDays = 7
	overdueWindowDays  = 60
)

func (i *Item) URL() string {
	return fmt.Sprintf("/item/%d/", i.IID)
}

func (i *Item) IsBug() bool {
	return i.Type == ItemTypeBug
}

// StatusDisplay returns the user-facing status. Resolved items display
// their resolution instead of the bare RESOLVED.
func (i *Item) StatusDisplay() string {
	if i.Status == StatusResolved && i.RStatus != "" {
		return string(i.RStatus)
	}
	return string(i.Status)
}

// StatusClass returns the presentation class for the item's status.
func (i *Item) StatusClass() string {
	return "pmt-" + strings.ToLower(strings.ReplaceAll(string(i.Status), "_", ""))
}

func (i *Item) PriorityLabel() string {
	return PriorityLabel(i.Priority)
}

// SetStatus applies a status change, clearing the resolution whenever the
// item leaves RESOLVED.
func (i *Item) SetStatus(s ItemStatus, r ResolveStatus) {
	i.Status = s
	if s == StatusResolved {
		i.RStatus = r
	} else {
		i.RStatus = ""
	}
}

// TargetDateStatus classifies the item's target date relative to now:
// more than 7 days ahead is ok, 1..7 days ahead is upcoming, due today is
// due, 1..60 days past is overdue, anything older is late.
func (i *Item) TargetDateStatus(now time.Time) TargetDateStatus {
	days := daysUntil(now, i.TargetDate)
	switch {
	case days > upcomingWindowDays:
		return TargetOK
	case days >= 1:
		return TargetUpcoming
	case days == 0:
		return TargetDue
	case days >= -overdueWindowDays:
		return TargetOverdue
	default:
		return TargetLate
	}
}

// daysUntil counts whole calendar days from now's date to target's date.
// Negative when target is in the past.
func daysUntil(now, target time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ty, tm, td := target.Date()
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(today).Hours() / 24)
}

package domain

import (
	"fmt"
	"time"
)

// Milestone groups items within a project and carries a target date.
type Milestone struct {
	MID         int64
	ProjectID   int64
	Name        string
	TargetDate  time.Time
	Status      MilestoneStatus
	Description string
}

func (m *Milestone) URL() string {
	return fmt.Sprintf("/milestone/%d/", m.MID)
}

func (m *Milestone) IsOpen() bool {
	return m.Status == MilestoneOpen
}

// Close marks the milestone CLOSED. Closing an already closed milestone is
// a no-op; the return value reports whether anything changed.
func (m *Milestone) Close() bool {
	if m.Status == MilestoneClosed {
		return false
	}
	m.Status = MilestoneClosed
	return true
}

// ShouldBeClosed reports whether the milestone is still open past its
// target date. The target date must be strictly before today.
func (m *Milestone) ShouldBeClosed(now time.Time) bool {
	if m.Status != MilestoneOpen {
		return false
	}
	return daysUntil(now, m.TargetDate) < 0
}

// Update closes the milestone if it should be closed, otherwise does
// nothing. Returns whether the milestone was closed.
func (m *Milestone) Update(now time.Time) bool {
	if m.ShouldBeClosed(now) {
		return m.Close()
	}
	return false
}

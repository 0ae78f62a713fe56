package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)

func TestItemURL(t *testing.T) {
	i := &Item{IID: 42}
	assert.Equal(t, "/item/42/", i.URL())
}

func TestIsBug(t *testing.T) {
	assert.True(t, (&Item{Type: ItemTypeBug}).IsBug())
	assert.False(t, (&Item{Type: ItemTypeAction}).IsBug())
}

func TestStatusDisplay(t *testing.T) {
	i := &Item{Status: StatusOpen}
	assert.Equal(t, "OPEN", i.StatusDisplay())

	i.Status = StatusResolved
	i.RStatus = ResolveFixed
	assert.Equal(t, "FIXED", i.StatusDisplay())
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "pmt-open", (&Item{Status: StatusOpen}).StatusClass())
	assert.Equal(t, "pmt-inprogress", (&Item{Status: StatusInProgress}).StatusClass())
	assert.Equal(t, "pmt-resolved", (&Item{Status: StatusResolved}).StatusClass())
}

func TestPriorityLabel(t *testing.T) {
	cases := []struct {
		priority int
		label    string
	}{
		{0, "ICING"},
		{1, "LOW"},
		{2, "MEDIUM"},
		{3, "HIGH"},
		{4, "CRITICAL"},
		{-1, "ICING"},
		{9, "CRITICAL"},
	}
	for _, tc := range cases {
		i := &Item{Priority: tc.priority}
		assert.Equal(t, tc.label, i.PriorityLabel(), "priority=%d", tc.priority)
	}
}

func TestSetStatus_ClearsResolutionOutsideResolved(t *testing.T) {
	i := &Item{Status: StatusOpen}
	i.SetStatus(StatusResolved, ResolveWontFix)
	assert.Equal(t, StatusResolved, i.Status)
	assert.Equal(t, ResolveWontFix, i.RStatus)

	i.SetStatus(StatusVerified, "")
	assert.Equal(t, StatusVerified, i.Status)
	assert.Empty(t, i.RStatus)

	i.SetStatus(StatusReopened, ResolveFixed)
	assert.Empty(t, i.RStatus, "resolution only valid while RESOLVED")
}

func TestTargetDateStatus(t *testing.T) {
	cases := []struct {
		daysOut int
		want    TargetDateStatus
	}{
		{8, TargetOK},
		{3, TargetUpcoming},
		{7, TargetUpcoming},
		{1, TargetUpcoming},
		{0, TargetDue},
		{-1, TargetOverdue},
		{-2, TargetOverdue},
		{-60, TargetOverdue},
		{-61, TargetLate},
		{-80, TargetLate},
	}
	for _, tc := range cases {
		i := &Item{TargetDate: testNow.AddDate(0, 0, tc.daysOut)}
		assert.Equal(t, tc.want, i.TargetDateStatus(testNow), "daysOut=%d", tc.daysOut)
	}
}

func TestTargetDateStatus_IgnoresTimeOfDay(t *testing.T) {
	// Due today regardless of the clock on either timestamp.
	late := time.Date(2026, 3, 9, 23, 55, 0, 0, time.UTC)
	i := &Item{TargetDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, TargetDue, i.TargetDateStatus(late))
}

package domain

type ItemType string

const (
	ItemTypeBug    ItemType = "bug"
	ItemTypeAction ItemType = "action item"
)

type ItemStatus string

const (
	StatusOpen       ItemStatus = "OPEN"
	StatusInProgress ItemStatus = "IN_PROGRESS"
	StatusResolved   ItemStatus = "RESOLVED"
	StatusVerified   ItemStatus = "VERIFIED"
	StatusReopened   ItemStatus = "REOPENED"
)

// ResolveStatus qualifies an item in StatusResolved. It is empty in every
// other status.
type ResolveStatus string

const (
	ResolveFixed      ResolveStatus = "FIXED"
	ResolveWontFix    ResolveStatus = "WONTFIX"
	ResolveInvalid    ResolveStatus = "INVALID"
	ResolveDuplicate  ResolveStatus = "DUPLICATE"
	ResolveWorksForMe ResolveStatus = "WORKSFORME"
)

type MilestoneStatus string

const (
	MilestoneOpen   MilestoneStatus = "OPEN"
	MilestoneClosed MilestoneStatus = "CLOSED"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// ProjectRole is a user's membership role on one project.
type ProjectRole string

const (
	RoleManager   ProjectRole = "manager"
	RoleDeveloper ProjectRole = "developer"
	RoleGuest     ProjectRole = "guest"
)

// ValidProjectRoles is the canonical set of accepted membership roles.
var ValidProjectRoles = map[ProjectRole]bool{
	RoleManager:   true,
	RoleDeveloper: true,
	RoleGuest:     true,
}

// TargetDateStatus classifies how an item stands relative to its target
// date. Display only, never stored.
type TargetDateStatus string

const (
	TargetOK       TargetDateStatus = "ok"
	TargetUpcoming TargetDateStatus = "upcoming"
	TargetDue      TargetDateStatus = "due"
	TargetOverdue  TargetDateStatus = "overdue"
	TargetLate     TargetDateStatus = "late"
)

// ValidResolveStatuses is the canonical set of accepted resolution strings.
var ValidResolveStatuses = map[ResolveStatus]bool{
	ResolveFixed:      true,
	ResolveWontFix:    true,
	ResolveInvalid:    true,
	ResolveDuplicate:  true,
	ResolveWorksForMe: true,
}

var priorityLabels = []string{"ICING", "LOW", "MEDIUM", "HIGH", "CRITICAL"}

// PriorityLabel returns the display label for a 0..4 priority value.
// Out-of-range values are clamped.
func PriorityLabel(priority int) string {
	if priority < 0 {
		priority = 0
	}
	if priority >= len(priorityLabels) {
		priority = len(priorityLabels) - 1
	}
	return priorityLabels[priority]
}

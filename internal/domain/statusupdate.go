package domain

import "time"

// StatusUpdate is a short user-authored progress note on a project.
type StatusUpdate struct {
	SID       int64
	ProjectID int64
	Username  string
	Body      string
	AddedAt   time.Time
}

package domain

import "fmt"

// Project owns milestones and the items under them. Caretaker is the
// username that item references fall back to when an assignee or owner
// cannot be resolved.
type Project struct {
	PID         int64
	Name        string
	Caretaker   string
	Description string
	Status      string
}

func (p *Project) URL() string {
	return fmt.Sprintf("/project/%d/", p.PID)
}

// Package timeline merges heterogeneous timestamped records into one
// chronologically ordered feed. Each record kind is wrapped in an adapter
// exposing the same capability set; absent capabilities report zero values
// so incomplete kinds participate without special-casing.
package timeline

import (
	"sort"
	"time"

	"github.com/tracklab/pmt/internal/domain"
)

// Entry is the uniform capability set every feed item exposes. Absent
// capabilities return the zero value: "" for strings, 0 for the project id.
type Entry interface {
	Timestamp() time.Time
	User() string
	Project() int64
	EventType() string
	Title() string
	Body() string
	Label() string
	URL() string
}

// base supplies absent defaults for every capability except Timestamp,
// which concrete entries must provide.
type base struct{}

func (base) User() string      { return "" }
func (base) Project() int64    { return 0 }
func (base) EventType() string { return "" }
func (base) Title() string     { return "" }
func (base) Body() string      { return "" }
func (base) Label() string     { return "" }
func (base) URL() string       { return "" }

// EventEntry wraps a status-change event together with its item and the
// comment logged with it, if any.
type EventEntry struct {
	base
	Event   domain.Event
	Item    domain.Item
	Comment *domain.Comment
}

func (e EventEntry) Timestamp() time.Time { return e.Event.OccurredAt }
func (e EventEntry) User() string         { return e.Event.Username }
func (e EventEntry) EventType() string    { return "event" }
func (e EventEntry) Title() string        { return e.Item.Title }
func (e EventEntry) URL() string          { return e.Item.URL() }

// Body returns the text of the comment attached to the event. An event
// with no comment has no body.
func (e EventEntry) Body() string {
	if e.Comment == nil {
		return ""
	}
	return e.Comment.Body
}

type CommentEntry struct {
	base
	Comment domain.Comment
	Item    domain.Item
}

func (c CommentEntry) Timestamp() time.Time { return c.Comment.AddedAt }
func (c CommentEntry) User() string         { return c.Comment.Username }
func (c CommentEntry) EventType() string    { return "comment" }
func (c CommentEntry) Title() string        { return c.Item.Title }
func (c CommentEntry) Body() string         { return c.Comment.Body }
func (c CommentEntry) Label() string        { return "COMMENT ADDED" }
func (c CommentEntry) URL() string          { return c.Item.URL() }

type ActualTimeEntry struct {
	base
	ActualTime domain.ActualTime
	Item       domain.Item
}

func (a ActualTimeEntry) Timestamp() time.Time { return a.ActualTime.Completed }
func (a ActualTimeEntry) User() string         { return a.ActualTime.Resolver }
func (a ActualTimeEntry) EventType() string    { return "actual_time" }
func (a ActualTimeEntry) Title() string        { return a.Item.Title }
func (a ActualTimeEntry) Body() string         { return domain.FormatHours(a.ActualTime.Duration) }
func (a ActualTimeEntry) Label() string        { return "TIME LOGGED" }
func (a ActualTimeEntry) URL() string          { return a.Item.URL() }

type StatusUpdateEntry struct {
	base
	Update domain.StatusUpdate
}

func (s StatusUpdateEntry) Timestamp() time.Time { return s.Update.AddedAt }
func (s StatusUpdateEntry) User() string         { return s.Update.Username }
func (s StatusUpdateEntry) Project() int64       { return s.Update.ProjectID }
func (s StatusUpdateEntry) EventType() string    { return "status_update" }
func (s StatusUpdateEntry) Title() string        { return "status update" }
func (s StatusUpdateEntry) Body() string         { return s.Update.Body }
func (s StatusUpdateEntry) Label() string        { return "STATUS UPDATE" }

type PostEntry struct {
	base
	Post domain.Node
}

func (p PostEntry) Timestamp() time.Time { return p.Post.AddedAt }
func (p PostEntry) User() string         { return p.Post.Author }
func (p PostEntry) Project() int64       { return p.Post.ProjectID }
func (p PostEntry) EventType() string    { return "forum_post" }
func (p PostEntry) Title() string        { return p.Post.Subject }
func (p PostEntry) Body() string         { return p.Post.Body }
func (p PostEntry) Label() string        { return "FORUM POST" }
func (p PostEntry) URL() string          { return p.Post.URL() }

type MilestoneEntry struct {
	base
	Milestone domain.Milestone
}

func (m MilestoneEntry) Timestamp() time.Time { return m.Milestone.TargetDate }
func (m MilestoneEntry) Project() int64       { return m.Milestone.ProjectID }
func (m MilestoneEntry) EventType() string    { return "milestone" }
func (m MilestoneEntry) Title() string        { return m.Milestone.Name }
func (m MilestoneEntry) Label() string        { return "MILESTONE" }
func (m MilestoneEntry) URL() string          { return m.Milestone.URL() }

// Merge sorts entries ascending by timestamp and returns the same slice.
// The sort is stable and compares timestamps only: entries with equal
// timestamps keep the order the caller concatenated them in.
func Merge(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp().Before(entries[j].Timestamp())
	})
	return entries
}

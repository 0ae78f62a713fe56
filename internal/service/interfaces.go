package service

import (
	"context"
	"errors"
	"time"

	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
	"github.com/tracklab/pmt/internal/timeline"
)

// ErrInvalidInput marks caller mistakes: unknown resolve statuses,
// out-of-range priorities, malformed requests.
var ErrInvalidInput = errors.New("invalid input")

// Notifier delivers a notification to a single recipient address. Delivery
// failures are the implementation's concern; the workflow only logs them.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// AddItemRequest carries everything needed to open a new item. AssignedTo,
// Owner, and MilestoneID may be unresolvable; the workflow falls back to
// the project caretaker and the project's upcoming milestone.
type AddItemRequest struct {
	ProjectID     int64
	MilestoneID   int64
	Type          domain.ItemType
	Title         string
	Description   string
	AssignedTo    string
	Owner         string
	Priority      int
	TargetDate    time.Time
	EstimatedTime string
}

type WorkflowService interface {
	AddItem(ctx context.Context, req AddItemRequest) (*domain.Item, error)
	GetItem(ctx context.Context, iid int64) (*domain.Item, error)

	Resolve(ctx context.Context, iid int64, actor string, rstatus domain.ResolveStatus, comment string) error
	InProgress(ctx context.Context, iid int64, actor, comment string) error
	Verify(ctx context.Context, iid int64, actor, comment string) error
	Reopen(ctx context.Context, iid int64, actor, comment string) error
	Reassign(ctx context.Context, iid int64, actor, assignee, comment string) error
	ChangeOwner(ctx context.Context, iid int64, actor, owner, comment string) error
	SetPriority(ctx context.Context, iid int64, actor string, priority int) error
	Split(ctx context.Context, iid int64, actor string, titles []string) ([]*domain.Item, error)
	MoveProject(ctx context.Context, iid int64, actor string, targetPID int64) error

	AddComment(ctx context.Context, iid int64, actor, body string) error
	AddResolveTime(ctx context.Context, iid int64, actor, duration string, completed time.Time) error
	AddStatusUpdate(ctx context.Context, pid int64, actor, body string) (*domain.StatusUpdate, error)
	// AddForumPost creates a forum post; a reply notifies the parent's
	// author unless they are replying to themselves.
	AddForumPost(ctx context.Context, pid int64, author, subject, body string, replyTo int64) (*domain.Node, error)

	RegisterClient(ctx context.Context, c *domain.Client) error
	// AttachClients associates existing clients with an item, matched by
	// email. Unknown addresses are skipped; the attached clients are
	// returned.
	AttachClients(ctx context.Context, iid int64, emails []string) ([]*domain.Client, error)
	ItemClients(ctx context.Context, iid int64) ([]*domain.Client, error)

	Watch(ctx context.Context, iid int64, username string) error
	Unwatch(ctx context.Context, iid int64, username string) error
	IsWatching(ctx context.Context, iid int64, username string) (bool, error)
}

// ProjectPersonnel groups a project's membership by role.
type ProjectPersonnel struct {
	Managers   []*domain.UserProfile
	Developers []*domain.UserProfile
	Guests     []*domain.UserProfile
}

// UserRoles lists the projects a user holds each role on.
type UserRoles struct {
	ManagerOn   []*domain.Project
	DeveloperOn []*domain.Project
	GuestOn     []*domain.Project
}

type ProjectService interface {
	AddPersonnel(ctx context.Context, pid int64, username string, role domain.ProjectRole) error
	RemovePersonnel(ctx context.Context, pid int64, username string, role domain.ProjectRole) error
	Personnel(ctx context.Context, pid int64) (*ProjectPersonnel, error)
	RolesFor(ctx context.Context, username string) (*UserRoles, error)
}

type TimelineService interface {
	UserTimeline(ctx context.Context, username string) ([]timeline.Entry, error)
	ProjectTimeline(ctx context.Context, pid int64) ([]timeline.Entry, error)
}

// WeeklyReport aggregates one user's logged time for a Monday-based week.
type WeeklyReport struct {
	Username  string
	WeekStart time.Time
	WeekEnd   time.Time
	PrevWeek  time.Time
	NextWeek  time.Time
	Projects  []repository.ProjectHours
	Total     time.Duration
}

func (r *WeeklyReport) TotalHours() float64 {
	return r.Total.Hours()
}

type ReportService interface {
	WeeklyReport(ctx context.Context, username string, date time.Time) (*WeeklyReport, error)
	SendWeeklyReport(ctx context.Context, username string, date time.Time) error
	// IntervalReport aggregates logged time over an arbitrary [start, end)
	// interval.
	IntervalReport(ctx context.Context, username string, start, end time.Time) ([]repository.ProjectHours, time.Duration, error)
	// SendWeeklyReports fans the weekly report out to several users.
	// Failures for one recipient do not block the rest.
	SendWeeklyReports(ctx context.Context, usernames []string, date time.Time) error
}

type MilestoneService interface {
	Close(ctx context.Context, mid int64) error
	// Sweep closes every open milestone whose target date has passed and
	// returns how many were closed.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

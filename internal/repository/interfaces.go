package repository

import (
	"context"
	"time"

	"github.com/tracklab/pmt/internal/domain"
)

// ProjectHours is an aggregation row: total logged time against one
// project's items for some user and interval.
type ProjectHours struct {
	ProjectID   int64
	ProjectName string
	Total       time.Duration
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.UserProfile) error
	GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.UserProfile, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, pid int64) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, mid int64) (*domain.Milestone, error)
	ListByProject(ctx context.Context, pid int64) ([]*domain.Milestone, error)
	ListOpen(ctx context.Context) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	// Upcoming returns the project's open milestone with the nearest
	// target date on or after today, falling back to the latest open one.
	Upcoming(ctx context.Context, pid int64, today time.Time) (*domain.Milestone, error)
	UnclosedItemCount(ctx context.Context, mid int64) (int, error)
	EstimatedTimeRemaining(ctx context.Context, mid int64) (time.Duration, error)
}

type ItemRepo interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, iid int64) (*domain.Item, error)
	ListByMilestone(ctx context.Context, mid int64) ([]*domain.Item, error)
	ListByProject(ctx context.Context, pid int64) ([]*domain.Item, error)
	Update(ctx context.Context, i *domain.Item) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	ListByItem(ctx context.Context, iid int64) ([]*domain.Event, error)
	ListByProject(ctx context.Context, pid int64) ([]*domain.Event, error)
	ListByUser(ctx context.Context, username string) ([]*domain.Event, error)
	CountByItemStatus(ctx context.Context, iid int64, status domain.ItemStatus) (int, error)
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	// GetByEvent returns the comment attached to an event, or ErrNotFound
	// when the event was logged without one.
	GetByEvent(ctx context.Context, eid int64) (*domain.Comment, error)
	ListByItem(ctx context.Context, iid int64) ([]*domain.Comment, error)
	ListByProject(ctx context.Context, pid int64) ([]*domain.Comment, error)
	ListByUser(ctx context.Context, username string) ([]*domain.Comment, error)
}

type ActualTimeRepo interface {
	Create(ctx context.Context, a *domain.ActualTime) error
	ListByItem(ctx context.Context, iid int64) ([]*domain.ActualTime, error)
	ListByProject(ctx context.Context, pid int64) ([]*domain.ActualTime, error)
	ListByUserInterval(ctx context.Context, username string, start, end time.Time) ([]*domain.ActualTime, error)
	TotalForItem(ctx context.Context, iid int64) (time.Duration, error)
	TotalForUserInterval(ctx context.Context, username string, start, end time.Time) (time.Duration, error)
	ProjectHoursForUserInterval(ctx context.Context, username string, start, end time.Time) ([]ProjectHours, error)
}

type StatusUpdateRepo interface {
	Create(ctx context.Context, s *domain.StatusUpdate) error
	ListByProject(ctx context.Context, pid int64) ([]*domain.StatusUpdate, error)
	ListByUser(ctx context.Context, username string) ([]*domain.StatusUpdate, error)
}

type NodeRepo interface {
	Create(ctx context.Context, n *domain.Node) error
	GetByID(ctx context.Context, nid int64) (*domain.Node, error)
	ListByProject(ctx context.Context, pid int64) ([]*domain.Node, error)
	ListByUser(ctx context.Context, username string) ([]*domain.Node, error)
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, clientID int64) (*domain.Client, error)
	// GetByEmail returns the oldest client registered under an address;
	// duplicate registrations are tolerated.
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	ListByItem(ctx context.Context, iid int64) ([]*domain.Client, error)
	AttachToItem(ctx context.Context, iid, clientID int64) error
	// CopyItemClients attaches every client of one item to another.
	CopyItemClients(ctx context.Context, fromIID, toIID int64) error
}

type PersonnelRepo interface {
	Add(ctx context.Context, pid int64, username string, role domain.ProjectRole) error
	Remove(ctx context.Context, pid int64, username string, role domain.ProjectRole) error
	UsersByRole(ctx context.Context, pid int64, role domain.ProjectRole) ([]*domain.UserProfile, error)
	ProjectsByRole(ctx context.Context, username string, role domain.ProjectRole) ([]*domain.Project, error)
}

type NotifyRepo interface {
	Add(ctx context.Context, iid int64, username string) error
	Remove(ctx context.Context, iid int64, username string) error
	Exists(ctx context.Context, iid int64, username string) (bool, error)
	ListUsernames(ctx context.Context, iid int64) ([]string, error)
}

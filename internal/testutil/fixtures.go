package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
)

var userCounter atomic.Int64

// User options
type UserOption func(*domain.UserProfile)

func WithUserStatus(s domain.UserStatus) UserOption {
	return func(u *domain.UserProfile) {
		u.Status = s
	}
}

func WithFullname(name string) UserOption {
	return func(u *domain.UserProfile) {
		u.Fullname = name
	}
}

func NewTestUser(opts ...UserOption) *domain.UserProfile {
	n := userCounter.Add(1)
	u := &domain.UserProfile{
		Username: fmt.Sprintf("user%d", n),
		Fullname: fmt.Sprintf("Test User %d", n),
		Email:    fmt.Sprintf("user%d-%s@example.com", n, uuid.NewString()[:8]),
		Status:   domain.UserActive,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithTargetDate(d time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.TargetDate = d
	}
}

func WithMilestoneStatus(s domain.MilestoneStatus) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Status = s
	}
}

// Item options
type ItemOption func(*domain.Item)

func WithItemType(t domain.ItemType) ItemOption {
	return func(i *domain.Item) {
		i.Type = t
	}
}

func WithItemStatus(s domain.ItemStatus) ItemOption {
	return func(i *domain.Item) {
		i.Status = s
	}
}

func WithPriority(p int) ItemOption {
	return func(i *domain.Item) {
		i.Priority = p
	}
}

func WithItemTargetDate(d time.Time) ItemOption {
	return func(i *domain.Item) {
		i.TargetDate = d
	}
}

func WithEstimatedTime(d time.Duration) ItemOption {
	return func(i *domain.Item) {
		i.EstimatedTime = d
	}
}

// Fixture seeds a test database with a caretaker, a project, and an open
// milestone, mirroring the minimum graph every workflow operation needs.
type Fixture struct {
	Caretaker *domain.UserProfile
	Project   *domain.Project
	Milestone *domain.Milestone
}

// NewFixture inserts the base graph and returns it.
func NewFixture(t *testing.T, database *sql.DB) *Fixture {
	t.Helper()
	ctx := context.Background()

	caretaker := NewTestUser()
	if err := repository.NewSQLiteUserRepo(database).Create(ctx, caretaker); err != nil {
		t.Fatalf("creating fixture user: %v", err)
	}

	project := &domain.Project{Name: "Test Project", Caretaker: caretaker.Username, Status: "active"}
	if err := repository.NewSQLiteProjectRepo(database).Create(ctx, project); err != nil {
		t.Fatalf("creating fixture project: %v", err)
	}

	milestone := &domain.Milestone{
		ProjectID:  project.PID,
		Name:       "Test Milestone",
		TargetDate: time.Now().UTC().AddDate(0, 1, 0),
		Status:     domain.MilestoneOpen,
	}
	if err := repository.NewSQLiteMilestoneRepo(database).Create(ctx, milestone); err != nil {
		t.Fatalf("creating fixture milestone: %v", err)
	}

	return &Fixture{Caretaker: caretaker, Project: project, Milestone: milestone}
}

// AddUser inserts an additional user.
func (f *Fixture) AddUser(t *testing.T, database *sql.DB, opts ...UserOption) *domain.UserProfile {
	t.Helper()
	u := NewTestUser(opts...)
	if err := repository.NewSQLiteUserRepo(database).Create(context.Background(), u); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return u
}

// AddClient inserts a client with a unique email.
func (f *Fixture) AddClient(t *testing.T, database *sql.DB) *domain.Client {
	t.Helper()
	n := userCounter.Add(1)
	c := &domain.Client{
		LastName:  fmt.Sprintf("Client%d", n),
		FirstName: "Test",
		Email:     fmt.Sprintf("client%d-%s@example.com", n, uuid.NewString()[:8]),
		Status:    domain.ClientActive,
	}
	if err := repository.NewSQLiteClientRepo(database).Create(context.Background(), c); err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return c
}

// AddMilestone inserts an additional milestone on the fixture project.
func (f *Fixture) AddMilestone(t *testing.T, database *sql.DB, opts ...MilestoneOption) *domain.Milestone {
	t.Helper()
	m := &domain.Milestone{
		ProjectID:  f.Project.PID,
		Name:       "Milestone " + uuid.NewString()[:8],
		TargetDate: time.Now().UTC().AddDate(0, 2, 0),
		Status:     domain.MilestoneOpen,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := repository.NewSQLiteMilestoneRepo(database).Create(context.Background(), m); err != nil {
		t.Fatalf("creating milestone: %v", err)
	}
	return m
}

// AddItem inserts an item under the fixture milestone, owned and assigned
// to the caretaker unless options override it.
func (f *Fixture) AddItem(t *testing.T, database *sql.DB, opts ...ItemOption) *domain.Item {
	t.Helper()
	i := &domain.Item{
		Type:        domain.ItemTypeBug,
		Title:       "test item",
		Status:      domain.StatusOpen,
		Priority:    1,
		Owner:       f.Caretaker.Username,
		AssignedTo:  f.Caretaker.Username,
		MilestoneID: f.Milestone.MID,
		TargetDate:  f.Milestone.TargetDate,
		LastMod:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if err := repository.NewSQLiteItemRepo(database).Create(context.Background(), i); err != nil {
		t.Fatalf("creating item: %v", err)
	}
	return i
}

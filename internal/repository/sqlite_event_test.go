package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
	"github.com/tracklab/pmt/internal/testutil"
)

func TestEventRepo_CreateAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLiteEventRepo(database)
	ctx := context.Background()

	item := f.AddItem(t, database)
	now := time.Now().UTC()

	e := &domain.Event{ItemID: item.IID, Status: domain.StatusOpen, Username: f.Caretaker.Username, OccurredAt: now}
	require.NoError(t, repo.Create(ctx, e))
	require.NotZero(t, e.EID)

	e2 := &domain.Event{ItemID: item.IID, Status: domain.StatusResolved, Username: f.Caretaker.Username, OccurredAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, e2))

	events, err := repo.ListByItem(ctx, item.IID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.StatusOpen, events[0].Status)
	assert.Equal(t, domain.StatusResolved, events[1].Status)

	byProject, err := repo.ListByProject(ctx, f.Project.PID)
	require.NoError(t, err)
	assert.Len(t, byProject, 2)

	byUser, err := repo.ListByUser(ctx, f.Caretaker.Username)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}

func TestEventRepo_CountByItemStatus(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLiteEventRepo(database)
	ctx := context.Background()

	item := f.AddItem(t, database)
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, &domain.Event{ItemID: item.IID, Status: domain.StatusResolved, Username: f.Caretaker.Username, OccurredAt: now}))

	n, err := repo.CountByItemStatus(ctx, item.IID, domain.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountByItemStatus(ctx, item.IID, domain.StatusVerified)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCommentRepo_GetByEvent(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	events := repository.NewSQLiteEventRepo(database)
	comments := repository.NewSQLiteCommentRepo(database)
	ctx := context.Background()

	item := f.AddItem(t, database)
	now := time.Now().UTC()

	e := &domain.Event{ItemID: item.IID, Status: domain.StatusResolved, Username: f.Caretaker.Username, OccurredAt: now}
	require.NoError(t, events.Create(ctx, e))

	// No comment attached yet.
	_, err := comments.GetByEvent(ctx, e.EID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	c := &domain.Comment{ItemID: item.IID, EventID: e.EID, Username: f.Caretaker.Username, Body: "fixed it", AddedAt: now}
	require.NoError(t, comments.Create(ctx, c))

	fetched, err := comments.GetByEvent(ctx, e.EID)
	require.NoError(t, err)
	assert.Equal(t, "fixed it", fetched.Body)
	assert.Equal(t, e.EID, fetched.EventID)
}

func TestCommentRepo_StandaloneComment(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	comments := repository.NewSQLiteCommentRepo(database)
	ctx := context.Background()

	item := f.AddItem(t, database)
	c := &domain.Comment{ItemID: item.IID, Username: f.Caretaker.Username, Body: "a note", AddedAt: time.Now().UTC()}
	require.NoError(t, comments.Create(ctx, c))

	list, err := comments.ListByItem(ctx, item.IID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Zero(t, list[0].EventID)
}

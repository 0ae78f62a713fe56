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

func TestMilestoneRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLiteMilestoneRepo(database)
	ctx := context.Background()

	fetched, err := repo.GetByID(ctx, f.Milestone.MID)
	require.NoError(t, err)
	assert.Equal(t, "Test Milestone", fetched.Name)
	assert.Equal(t, domain.MilestoneOpen, fetched.Status)
	assert.Equal(t, f.Milestone.TargetDate.Format("2006-01-02"),
		fetched.TargetDate.Format("2006-01-02"))
}

func TestMilestoneRepo_UpdateClosed(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLiteMilestoneRepo(database)
	ctx := context.Background()

	f.Milestone.Close()
	require.NoError(t, repo.Update(ctx, f.Milestone))

	fetched, err := repo.GetByID(ctx, f.Milestone.MID)
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneClosed, fetched.Status)

	open, err := repo.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestMilestoneRepo_Upcoming(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLiteMilestoneRepo(database)
	ctx := context.Background()
	today := time.Now().UTC()

	near := f.AddMilestone(t, database, testutil.WithTargetDate(today.AddDate(0, 0, 7)))
	f.AddMilestone(t, database, testutil.WithTargetDate(today.AddDate(0, 3, 0)))

	m, err := repo.Upcoming(ctx, f.Project.PID, today)
	require.NoError(t, err)
	assert.Equal(t, near.MID, m.MID, "nearest future open milestone wins")
}

func TestMilestoneRepo_Upcoming_FallsBackToPast(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLiteMilestoneRepo(database)
	ctx := context.Background()
	today := time.Now().UTC()

	// Close the fixture milestone so only a past-due one remains open.
	f.Milestone.Close()
	require.NoError(t, repo.Update(ctx, f.Milestone))
	past := f.AddMilestone(t, database, testutil.WithTargetDate(today.AddDate(0, -1, 0)))

	m, err := repo.Upcoming(ctx, f.Project.PID, today)
	require.NoError(t, err)
	assert.Equal(t, past.MID, m.MID)
}

func TestMilestoneRepo_Upcoming_NoneOpen(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLiteMilestoneRepo(database)
	ctx := context.Background()

	f.Milestone.Close()
	require.NoError(t, repo.Update(ctx, f.Milestone))

	_, err := repo.Upcoming(ctx, f.Project.PID, time.Now().UTC())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMilestoneRepo_UnclosedItemsAndEstimate(t *testing.T) {
	database := testutil.NewTestDB(t)
	f := testutil.NewFixture(t, database)
	repo := repository.NewSQLiteMilestoneRepo(database)
	ctx := context.Background()

	n, err := repo.UnclosedItemCount(ctx, f.Milestone.MID)
	require.NoError(t, err)
	assert.Zero(t, n, "empty milestone has no unclosed items")

	remaining, err := repo.EstimatedTimeRemaining(ctx, f.Milestone.MID)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	f.AddItem(t, database, testutil.WithEstimatedTime(time.Hour))
	f.AddItem(t, database,
		testutil.WithItemStatus(domain.StatusVerified),
		testutil.WithEstimatedTime(3*time.Hour))

	n, err = repo.UnclosedItemCount(ctx, f.Milestone.MID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	remaining, err = repo.EstimatedTimeRemaining(ctx, f.Milestone.MID)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, remaining, "verified items do not count")
}

package service

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

func TestMilestoneClose_Idempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	fixture := testutil.NewFixture(t, database)
	ctx := context.Background()

	svc := NewMilestoneService(database, testutil.NewTestUoW(database), testLogger())
	require.NoError(t, svc.Close(ctx, fixture.Milestone.MID))
	require.NoError(t, svc.Close(ctx, fixture.Milestone.MID))

	got, err := repository.NewSQLiteMilestoneRepo(database).GetByID(ctx, fixture.Milestone.MID)
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneClosed, got.Status)
}

func TestSweep_ClosesOnlyOverdueOpenMilestones(t *testing.T) {
	database := testutil.NewTestDB(t)
	fixture := testutil.NewFixture(t, database)
	ctx := context.Background()
	now := time.Now().UTC()

	overdue := fixture.AddMilestone(t, database, testutil.WithTargetDate(now.AddDate(0, 0, -3)))
	dueToday := fixture.AddMilestone(t, database, testutil.WithTargetDate(now))
	alreadyClosed := fixture.AddMilestone(t, database,
		testutil.WithTargetDate(now.AddDate(0, 0, -10)),
		testutil.WithMilestoneStatus(domain.MilestoneClosed))

	svc := NewMilestoneService(database, testutil.NewTestUoW(database), testLogger())
	closed, err := svc.Sweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	milestones := repository.NewSQLiteMilestoneRepo(database)
	for _, tc := range []struct {
		mid  int64
		want domain.MilestoneStatus
	}{
		{overdue.MID, domain.MilestoneClosed},
		{dueToday.MID, domain.MilestoneOpen},
		{alreadyClosed.MID, domain.MilestoneClosed},
		{fixture.Milestone.MID, domain.MilestoneOpen},
	} {
		got, err := milestones.GetByID(ctx, tc.mid)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Status, "milestone %d", tc.mid)
	}
}

func TestSweep_NothingToDo(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.NewFixture(t, database)

	svc := NewMilestoneService(database, testutil.NewTestUoW(database), testLogger())
	closed, err := svc.Sweep(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, closed)
}

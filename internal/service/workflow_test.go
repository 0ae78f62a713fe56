package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
	"github.com/tracklab/pmt/internal/testutil"
)

func TestResolve_AppendsSingleResolvedEvent(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)

	require.NoError(t, svc.Resolve(ctx, item.IID, fixture.Caretaker.Username, domain.ResolveFixed, "done"))

	events := repository.NewSQLiteEventRepo(database)
	count, err := events.CountByItemStatus(ctx, item.IID, domain.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Resolving again appends a second event; the log is append-only.
	require.NoError(t, svc.Resolve(ctx, item.IID, fixture.Caretaker.Username, domain.ResolveFixed, ""))
	count, err = events.CountByItemStatus(ctx, item.IID, domain.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestResolve_DefaultsToFixed(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)

	require.NoError(t, svc.Resolve(ctx, item.IID, fixture.Caretaker.Username, "", ""))

	got, err := svc.GetItem(ctx, item.IID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, got.Status)
	assert.Equal(t, domain.ResolveFixed, got.RStatus)
}

func TestResolve_RejectsUnknownResolveStatus(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	item := fixture.AddItem(t, database)

	err := svc.Resolve(context.Background(), item.IID, fixture.Caretaker.Username, "BOGUS", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid resolve status")
}

func TestVerify_ClearsResolveStatus(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)

	require.NoError(t, svc.Resolve(ctx, item.IID, fixture.Caretaker.Username, domain.ResolveWontFix, ""))
	require.NoError(t, svc.Verify(ctx, item.IID, fixture.Caretaker.Username, ""))

	got, err := svc.GetItem(ctx, item.IID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, got.Status)
	assert.Empty(t, got.RStatus)
}

func TestTransition_CommentAttachedToEvent(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)

	require.NoError(t, svc.InProgress(ctx, item.IID, fixture.Caretaker.Username, "starting on this"))

	events, err := repository.NewSQLiteEventRepo(database).ListByItem(ctx, item.IID)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	comment, err := repository.NewSQLiteCommentRepo(database).GetByEvent(ctx, last.EID)
	require.NoError(t, err)
	assert.Equal(t, "starting on this", comment.Body)
	assert.Equal(t, last.EID, comment.EventID)
}

func TestTransition_RollbackLeavesItemUntouched(t *testing.T) {
	database := testutil.NewTestDB(t)
	fixture := testutil.NewFixture(t, database)
	item := fixture.AddItem(t, database)
	ctx := context.Background()

	injected := errors.New("injected write failure")
	svc := &workflowService{
		conn: database,
		// The item update is the first write; failing the second kills
		// the event insert and must roll the update back with it.
		uow:      &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected},
		notifier: &recordingNotifier{},
		logger:   testLogger(),
		observer: NoopOperationObserver{},
		now:      func() time.Time { return time.Now().UTC() },
	}

	err := svc.Resolve(ctx, item.IID, fixture.Caretaker.Username, domain.ResolveFixed, "")
	require.ErrorIs(t, err, injected)

	got, err := repository.NewSQLiteItemRepo(database).GetByID(ctx, item.IID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, got.Status, "status change must not survive the rollback")

	events, err := repository.NewSQLiteEventRepo(database).ListByItem(ctx, item.IID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAddItem_FallsBackToCaretakerAndUpcomingMilestone(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, AddItemRequest{
		ProjectID:     fixture.Project.PID,
		Type:          domain.ItemTypeBug,
		Title:         "external report",
		AssignedTo:    "nobody-with-this-name",
		Owner:         "",
		EstimatedTime: "2 hours",
	})
	require.NoError(t, err)

	assert.Equal(t, fixture.Caretaker.Username, item.Owner)
	assert.Equal(t, fixture.Caretaker.Username, item.AssignedTo)
	assert.Equal(t, fixture.Milestone.MID, item.MilestoneID)
	assert.Equal(t, 2*time.Hour, item.EstimatedTime)
	// The milestone's target date comes back date-only from storage.
	assert.Equal(t, fixture.Milestone.TargetDate.Format("2006-01-02"), item.TargetDate.Format("2006-01-02"))

	// The opening event is on the record.
	count, err := repository.NewSQLiteEventRepo(database).CountByItemStatus(ctx, item.IID, domain.StatusOpen)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The assignee is subscribed to followups.
	watching, err := svc.IsWatching(ctx, item.IID, fixture.Caretaker.Username)
	require.NoError(t, err)
	assert.True(t, watching)
}

func TestAddItem_UnparseableEstimateStoresZero(t *testing.T) {
	svc, _, fixture, _ := newTestWorkflow(t)

	item, err := svc.AddItem(context.Background(), AddItemRequest{
		ProjectID:     fixture.Project.PID,
		Type:          domain.ItemTypeAction,
		Title:         "vague request",
		EstimatedTime: "Invalid Estimated Time",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), item.EstimatedTime)
}

func TestReassign_SubscribesNewAssignee(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)
	assignee := fixture.AddUser(t, database)

	require.NoError(t, svc.Reassign(ctx, item.IID, fixture.Caretaker.Username, assignee.Username, "take this one"))

	got, err := svc.GetItem(ctx, item.IID)
	require.NoError(t, err)
	assert.Equal(t, assignee.Username, got.AssignedTo)

	watching, err := svc.IsWatching(ctx, item.IID, assignee.Username)
	require.NoError(t, err)
	assert.True(t, watching)
}

func TestReassign_UnknownUserFallsBackToCaretaker(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	other := fixture.AddUser(t, database)
	item := fixture.AddItem(t, database)

	require.NoError(t, svc.Reassign(ctx, item.IID, other.Username, "gone-fishing", ""))

	got, err := svc.GetItem(ctx, item.IID)
	require.NoError(t, err)
	assert.Equal(t, fixture.Caretaker.Username, got.AssignedTo)
}

func TestAddResolveTime_PermissiveParsing(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)

	require.NoError(t, svc.AddResolveTime(ctx, item.IID, fixture.Caretaker.Username, "90 minutes", time.Time{}))
	require.NoError(t, svc.AddResolveTime(ctx, item.IID, fixture.Caretaker.Username, "not a duration", time.Time{}))

	total, err := repository.NewSQLiteActualTimeRepo(database).TotalForItem(ctx, item.IID)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, total, "junk input logs zero, not an error")
}

func TestWatch_SkipsInactiveUsers(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)
	inactive := fixture.AddUser(t, database, testutil.WithUserStatus(domain.UserInactive))

	require.NoError(t, svc.Watch(ctx, item.IID, inactive.Username))

	watching, err := svc.IsWatching(ctx, item.IID, inactive.Username)
	require.NoError(t, err)
	assert.False(t, watching)
}

func TestNotifications_SkipActorReachWatchers(t *testing.T) {
	svc, database, fixture, notifier := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)
	watcher := fixture.AddUser(t, database)

	require.NoError(t, svc.Watch(ctx, item.IID, watcher.Username))
	require.NoError(t, svc.Watch(ctx, item.IID, fixture.Caretaker.Username))

	require.NoError(t, svc.Resolve(ctx, item.IID, fixture.Caretaker.Username, domain.ResolveFixed, "all set"))

	sent := notifier.Sent()
	require.Len(t, sent, 1, "the acting user is never notified")
	assert.Equal(t, watcher.Email, sent[0].Recipient)
	assert.Equal(t, fmt.Sprintf("PMT [%s $%d] %s", item.Type, item.IID, item.Title), sent[0].Subject)
	assert.Equal(t, fmt.Sprintf("%s $%d %s updated\nall set\n", item.Type, item.IID, item.Title), sent[0].Body)
}

func TestAddForumPost_ReplyNotifiesParentAuthorOnly(t *testing.T) {
	svc, database, fixture, notifier := newTestWorkflow(t)
	ctx := context.Background()
	other := fixture.AddUser(t, database)

	parent, err := svc.AddForumPost(ctx, fixture.Project.PID, fixture.Caretaker.Username, "release plan", "thoughts?", 0)
	require.NoError(t, err)
	assert.Empty(t, notifier.Sent(), "top-level posts notify nobody")

	_, err = svc.AddForumPost(ctx, fixture.Project.PID, other.Username, "re: release plan", "looks good", parent.NID)
	require.NoError(t, err)
	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, fixture.Caretaker.Email, sent[0].Recipient)
	assert.Equal(t, "Re: release plan", sent[0].Subject)

	// Replying to your own post sends nothing.
	_, err = svc.AddForumPost(ctx, fixture.Project.PID, fixture.Caretaker.Username, "re: release plan", "bump", parent.NID)
	require.NoError(t, err)
	assert.Len(t, notifier.Sent(), 1)
}

func TestAddStatusUpdate(t *testing.T) {
	svc, _, fixture, _ := newTestWorkflow(t)

	update, err := svc.AddStatusUpdate(context.Background(), fixture.Project.PID, fixture.Caretaker.Username, "on track for Friday")
	require.NoError(t, err)
	assert.NotZero(t, update.SID)
	assert.Equal(t, fixture.Project.PID, update.ProjectID)

	_, err = svc.AddStatusUpdate(context.Background(), 99999, fixture.Caretaker.Username, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetPriority_RangeChecked(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)

	require.Error(t, svc.SetPriority(ctx, item.IID, fixture.Caretaker.Username, 5))
	require.NoError(t, svc.SetPriority(ctx, item.IID, fixture.Caretaker.Username, 4))

	got, err := svc.GetItem(ctx, item.IID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Priority)
}

func TestSplit_DividesEstimateAndVerifiesOriginal(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database, testutil.WithEstimatedTime(4*time.Hour))

	pieces, err := svc.Split(ctx, item.IID, fixture.Caretaker.Username, []string{"part one", "part two"})
	require.NoError(t, err)
	require.Len(t, pieces, 2)

	for _, p := range pieces {
		assert.Equal(t, domain.StatusOpen, p.Status)
		assert.Equal(t, item.MilestoneID, p.MilestoneID)
		assert.Equal(t, 2*time.Hour, p.EstimatedTime)
	}

	got, err := svc.GetItem(ctx, item.IID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, got.Status)
}

func TestMoveProject_ReparentsOntoUpcomingMilestone(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)

	other := &domain.Project{Name: "Other Project", Caretaker: fixture.Caretaker.Username, Status: "active"}
	require.NoError(t, repository.NewSQLiteProjectRepo(database).Create(ctx, other))
	milestone := &domain.Milestone{
		ProjectID:  other.PID,
		Name:       "Other 1.0",
		TargetDate: time.Now().UTC().AddDate(0, 1, 0),
		Status:     domain.MilestoneOpen,
	}
	require.NoError(t, repository.NewSQLiteMilestoneRepo(database).Create(ctx, milestone))

	require.NoError(t, svc.MoveProject(ctx, item.IID, fixture.Caretaker.Username, other.PID))

	got, err := svc.GetItem(ctx, item.IID)
	require.NoError(t, err)
	assert.Equal(t, milestone.MID, got.MilestoneID)
}

func TestAttachClients_MatchesByEmailSkippingUnknown(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)
	client := fixture.AddClient(t, database)

	attached, err := svc.AttachClients(ctx, item.IID, []string{client.Email, "nobody@example.com", ""})
	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.Equal(t, client.ClientID, attached[0].ClientID)

	listed, err := svc.ItemClients(ctx, item.IID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, client.Email, listed[0].Email)
}

func TestAttachClients_UnknownItem(t *testing.T) {
	svc, _, _, _ := newTestWorkflow(t)

	_, err := svc.AttachClients(context.Background(), 9999, []string{"x@example.com"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRegisterClient_RequiresEmailAndDefaultsActive(t *testing.T) {
	svc, _, _, _ := newTestWorkflow(t)
	ctx := context.Background()

	err := svc.RegisterClient(ctx, &domain.Client{LastName: "Nomail"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	c := &domain.Client{LastName: "Doe", FirstName: "Jane", Email: "jane@example.com"}
	require.NoError(t, svc.RegisterClient(ctx, c))
	require.NotZero(t, c.ClientID)

	fetched, err := repository.NewSQLiteClientRepo(svc.conn).GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, fetched.Active())
}

func TestSplit_CopiesClientsToPieces(t *testing.T) {
	svc, database, fixture, _ := newTestWorkflow(t)
	ctx := context.Background()
	item := fixture.AddItem(t, database)
	client := fixture.AddClient(t, database)

	_, err := svc.AttachClients(ctx, item.IID, []string{client.Email})
	require.NoError(t, err)

	pieces, err := svc.Split(ctx, item.IID, fixture.Caretaker.Username, []string{"first half", "second half"})
	require.NoError(t, err)
	require.Len(t, pieces, 2)

	for _, piece := range pieces {
		listed, err := svc.ItemClients(ctx, piece.IID)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, client.ClientID, listed[0].ClientID)
	}
}

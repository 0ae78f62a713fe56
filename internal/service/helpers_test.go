package service

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tracklab/pmt/internal/testutil"
)

// recordingNotifier captures every notification instead of delivering it.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	Recipient string
	Subject   string
	Body      string
}

func (n *recordingNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

func (n *recordingNotifier) Sent() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMail(nil), n.sent...)
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestWorkflow wires a workflow service over a fresh in-memory database
// and its seed fixture.
func newTestWorkflow(t *testing.T) (*workflowService, *sql.DB, *testutil.Fixture, *recordingNotifier) {
	t.Helper()
	database := testutil.NewTestDB(t)
	fixture := testutil.NewFixture(t, database)
	notifier := &recordingNotifier{}
	svc := &workflowService{
		conn:     database,
		uow:      testutil.NewTestUoW(database),
		notifier: notifier,
		logger:   testLogger(),
		observer: NoopOperationObserver{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	return svc, database, fixture, notifier
}

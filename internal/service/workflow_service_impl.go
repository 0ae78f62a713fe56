package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
)

type workflowService struct {
	conn     db.DBTX
	uow      db.UnitOfWork
	notifier Notifier
	logger   *log.Logger
	observer OperationObserver
	now      func() time.Time
}

// NewWorkflowService creates the workflow service. conn serves the read
// path; every mutation runs inside uow so an item's state change and its
// audit event land in one commit unit.
func NewWorkflowService(conn db.DBTX, uow db.UnitOfWork, notifier Notifier, logger *log.Logger, observers ...OperationObserver) WorkflowService {
	return &workflowService{
		conn:     conn,
		uow:      uow,
		notifier: notifier,
		logger:   logger,
		observer: operationObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// observe runs one mutating operation and reports its outcome.
func (s *workflowService) observe(ctx context.Context, op string, iid int64, actor string, fn func() error) error {
	started := s.now()
	err := fn()
	s.observer.ObserveOperation(ctx, OperationEvent{
		Op:        op,
		ItemID:    iid,
		Actor:     actor,
		Duration:  s.now().Sub(started),
		Err:       err,
		StartedAt: started,
	})
	return err
}

func (s *workflowService) GetItem(ctx context.Context, iid int64) (*domain.Item, error) {
	return repository.NewSQLiteItemRepo(s.conn).GetByID(ctx, iid)
}

func (s *workflowService) AddItem(ctx context.Context, req AddItemRequest) (*domain.Item, error) {
	project, err := repository.NewSQLiteProjectRepo(s.conn).GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	owner := s.resolveUserOrCaretaker(ctx, req.Owner, project)
	assignee := s.resolveUserOrCaretaker(ctx, req.AssignedTo, project)
	milestone, err := s.resolveMilestone(ctx, req.MilestoneID, project)
	if err != nil {
		return nil, err
	}

	targetDate := req.TargetDate
	if targetDate.IsZero() {
		targetDate = milestone.TargetDate
	}

	item := &domain.Item{
		Type:          req.Type,
		Title:         req.Title,
		Status:        domain.StatusOpen,
		Priority:      req.Priority,
		Owner:         owner.Username,
		AssignedTo:    assignee.Username,
		MilestoneID:   milestone.MID,
		TargetDate:    targetDate,
		EstimatedTime: domain.ParseDuration(req.EstimatedTime),
		Description:   req.Description,
		LastMod:       s.now(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteItemRepo(tx).Create(ctx, item); err != nil {
			return err
		}
		event := &domain.Event{
			ItemID:     item.IID,
			Status:     domain.StatusOpen,
			Username:   owner.Username,
			OccurredAt: s.now(),
		}
		if err := repository.NewSQLiteEventRepo(tx).Create(ctx, event); err != nil {
			return err
		}
		if assignee.Active() {
			if err := repository.NewSQLiteNotifyRepo(tx).Add(ctx, item.IID, assignee.Username); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyWatchers(ctx, item, owner.Username, updateBody(item, req.Description))
	return item, nil
}

func (s *workflowService) Resolve(ctx context.Context, iid int64, actor string, rstatus domain.ResolveStatus, comment string) error {
	if rstatus == "" {
		rstatus = domain.ResolveFixed
	}
	if !domain.ValidResolveStatuses[rstatus] {
		return fmt.Errorf("%w: invalid resolve status %q", ErrInvalidInput, rstatus)
	}
	return s.transition(ctx, iid, actor, domain.StatusResolved, rstatus, comment)
}

func (s *workflowService) InProgress(ctx context.Context, iid int64, actor, comment string) error {
	return s.transition(ctx, iid, actor, domain.StatusInProgress, "", comment)
}

func (s *workflowService) Verify(ctx context.Context, iid int64, actor, comment string) error {
	return s.transition(ctx, iid, actor, domain.StatusVerified, "", comment)
}

func (s *workflowService) Reopen(ctx context.Context, iid int64, actor, comment string) error {
	return s.transition(ctx, iid, actor, domain.StatusReopened, "", comment)
}

// transition applies a status change: the item update, the audit event,
// and the optional comment commit together or not at all.
func (s *workflowService) transition(ctx context.Context, iid int64, actor string, status domain.ItemStatus, rstatus domain.ResolveStatus, comment string) error {
	return s.observe(ctx, "transition:"+string(status), iid, actor, func() error {
		var item *domain.Item
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			items := repository.NewSQLiteItemRepo(tx)
			fetched, err := items.GetByID(ctx, iid)
			if err != nil {
				return err
			}
			fetched.SetStatus(status, rstatus)
			fetched.LastMod = s.now()
			if err := items.Update(ctx, fetched); err != nil {
				return err
			}
			if err := s.appendEvent(ctx, tx, fetched, actor, comment); err != nil {
				return err
			}
			item = fetched
			return nil
		})
		if err != nil {
			return err
		}

		s.notifyWatchers(ctx, item, actor, updateBody(item, comment))
		return nil
	})
}

// appendEvent writes the audit event for the item's current status, plus
// the comment logged with it when one was supplied.
func (s *workflowService) appendEvent(ctx context.Context, tx db.DBTX, item *domain.Item, actor, comment string) error {
	event := &domain.Event{
		ItemID:     item.IID,
		Status:     item.Status,
		Username:   actor,
		OccurredAt: s.now(),
	}
	if err := repository.NewSQLiteEventRepo(tx).Create(ctx, event); err != nil {
		return err
	}
	if comment == "" {
		return nil
	}
	return repository.NewSQLiteCommentRepo(tx).Create(ctx, &domain.Comment{
		ItemID:   item.IID,
		EventID:  event.EID,
		Username: actor,
		Body:     comment,
		AddedAt:  s.now(),
	})
}

func (s *workflowService) Reassign(ctx context.Context, iid int64, actor, assignee, comment string) error {
	var item *domain.Item
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		fetched, err := items.GetByID(ctx, iid)
		if err != nil {
			return err
		}

		target, err := s.resolveAssignee(ctx, tx, fetched, assignee)
		if err != nil {
			return err
		}
		fetched.AssignedTo = target.Username
		fetched.LastMod = s.now()
		if err := items.Update(ctx, fetched); err != nil {
			return err
		}

		note := fmt.Sprintf("Reassigned to %s", target.Username)
		if comment != "" {
			note = note + "\n" + comment
		}
		if err := s.appendEvent(ctx, tx, fetched, actor, note); err != nil {
			return err
		}
		if target.Active() {
			if err := repository.NewSQLiteNotifyRepo(tx).Add(ctx, iid, target.Username); err != nil {
				return err
			}
		}
		item = fetched
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyWatchers(ctx, item, actor, updateBody(item, comment))
	return nil
}

func (s *workflowService) ChangeOwner(ctx context.Context, iid int64, actor, owner, comment string) error {
	var item *domain.Item
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		fetched, err := items.GetByID(ctx, iid)
		if err != nil {
			return err
		}

		target, err := s.resolveAssignee(ctx, tx, fetched, owner)
		if err != nil {
			return err
		}
		fetched.Owner = target.Username
		fetched.LastMod = s.now()
		if err := items.Update(ctx, fetched); err != nil {
			return err
		}

		note := fmt.Sprintf("Owner changed to %s", target.Username)
		if comment != "" {
			note = note + "\n" + comment
		}
		if err := s.appendEvent(ctx, tx, fetched, actor, note); err != nil {
			return err
		}
		item = fetched
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyWatchers(ctx, item, actor, updateBody(item, comment))
	return nil
}

func (s *workflowService) SetPriority(ctx context.Context, iid int64, actor string, priority int) error {
	if priority < 0 || priority > 4 {
		return fmt.Errorf("%w: priority %d out of range 0..4", ErrInvalidInput, priority)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		item, err := items.GetByID(ctx, iid)
		if err != nil {
			return err
		}
		item.Priority = priority
		item.LastMod = s.now()
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		note := fmt.Sprintf("Priority changed to %s", domain.PriorityLabel(priority))
		return s.appendEvent(ctx, tx, item, actor, note)
	})
}

// Split carves an item into new open items under the same milestone and
// verifies the original. The original's estimate is divided evenly among
// the pieces.
func (s *workflowService) Split(ctx context.Context, iid int64, actor string, titles []string) ([]*domain.Item, error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: split requires at least one title", ErrInvalidInput)
	}

	var pieces []*domain.Item
	var original *domain.Item
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		fetched, err := items.GetByID(ctx, iid)
		if err != nil {
			return err
		}

		share := fetched.EstimatedTime / time.Duration(len(titles))
		for _, title := range titles {
			piece := &domain.Item{
				Type:          fetched.Type,
				Title:         title,
				Status:        domain.StatusOpen,
				Priority:      fetched.Priority,
				Owner:         fetched.Owner,
				AssignedTo:    fetched.AssignedTo,
				MilestoneID:   fetched.MilestoneID,
				TargetDate:    fetched.TargetDate,
				EstimatedTime: share,
				LastMod:       s.now(),
			}
			if err := items.Create(ctx, piece); err != nil {
				return err
			}
			event := &domain.Event{
				ItemID:     piece.IID,
				Status:     domain.StatusOpen,
				Username:   actor,
				OccurredAt: s.now(),
			}
			if err := repository.NewSQLiteEventRepo(tx).Create(ctx, event); err != nil {
				return err
			}
			if err := repository.NewSQLiteClientRepo(tx).CopyItemClients(ctx, fetched.IID, piece.IID); err != nil {
				return err
			}
			pieces = append(pieces, piece)
		}

		fetched.SetStatus(domain.StatusVerified, "")
		fetched.LastMod = s.now()
		if err := items.Update(ctx, fetched); err != nil {
			return err
		}
		note := fmt.Sprintf("Split into %d new items", len(titles))
		if err := s.appendEvent(ctx, tx, fetched, actor, note); err != nil {
			return err
		}
		original = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyWatchers(ctx, original, actor, updateBody(original, "split"))
	return pieces, nil
}

// MoveProject reparents an item onto the target project's upcoming
// milestone.
func (s *workflowService) MoveProject(ctx context.Context, iid int64, actor string, targetPID int64) error {
	project, err := repository.NewSQLiteProjectRepo(s.conn).GetByID(ctx, targetPID)
	if err != nil {
		return err
	}
	milestone, err := repository.NewSQLiteMilestoneRepo(s.conn).Upcoming(ctx, project.PID, s.now())
	if err != nil {
		return fmt.Errorf("project %d has no open milestone: %w", targetPID, err)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		item, err := items.GetByID(ctx, iid)
		if err != nil {
			return err
		}
		item.MilestoneID = milestone.MID
		item.LastMod = s.now()
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		note := fmt.Sprintf("Moved to project %s", project.Name)
		return s.appendEvent(ctx, tx, item, actor, note)
	})
}

func (s *workflowService) AddComment(ctx context.Context, iid int64, actor, body string) error {
	item, err := repository.NewSQLiteItemRepo(s.conn).GetByID(ctx, iid)
	if err != nil {
		return err
	}
	err = repository.NewSQLiteCommentRepo(s.conn).Create(ctx, &domain.Comment{
		ItemID:   iid,
		Username: actor,
		Body:     body,
		AddedAt:  s.now(),
	})
	if err != nil {
		return err
	}

	s.notifyWatchers(ctx, item, actor, updateBody(item, body))
	return nil
}

// AddResolveTime appends a logged-time row. The duration string is parsed
// permissively: junk input stores a zero duration rather than failing the
// request. A zero completed time defaults to now.
func (s *workflowService) AddResolveTime(ctx context.Context, iid int64, actor, duration string, completed time.Time) error {
	if _, err := repository.NewSQLiteItemRepo(s.conn).GetByID(ctx, iid); err != nil {
		return err
	}
	if completed.IsZero() {
		completed = s.now()
	}
	return repository.NewSQLiteActualTimeRepo(s.conn).Create(ctx, &domain.ActualTime{
		ItemID:    iid,
		Resolver:  actor,
		Duration:  domain.ParseDuration(duration),
		Completed: completed,
	})
}

func (s *workflowService) AddStatusUpdate(ctx context.Context, pid int64, actor, body string) (*domain.StatusUpdate, error) {
	if _, err := repository.NewSQLiteProjectRepo(s.conn).GetByID(ctx, pid); err != nil {
		return nil, err
	}
	update := &domain.StatusUpdate{
		ProjectID: pid,
		Username:  actor,
		Body:      body,
		AddedAt:   s.now(),
	}
	if err := repository.NewSQLiteStatusUpdateRepo(s.conn).Create(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

// AddForumPost creates a forum post. Replies notify the parent author,
// except when replying to oneself.
func (s *workflowService) AddForumPost(ctx context.Context, pid int64, author, subject, body string, replyTo int64) (*domain.Node, error) {
	if _, err := repository.NewSQLiteProjectRepo(s.conn).GetByID(ctx, pid); err != nil {
		return nil, err
	}
	nodes := repository.NewSQLiteNodeRepo(s.conn)

	var parent *domain.Node
	if replyTo != 0 {
		fetched, err := nodes.GetByID(ctx, replyTo)
		if err != nil {
			return nil, err
		}
		parent = fetched
	}

	post := &domain.Node{
		ProjectID: pid,
		Author:    author,
		Subject:   subject,
		Body:      body,
		ReplyTo:   replyTo,
		AddedAt:   s.now(),
	}
	if err := nodes.Create(ctx, post); err != nil {
		return nil, err
	}

	if s.notifier != nil && parent != nil && parent.Author != author {
		if user, err := repository.NewSQLiteUserRepo(s.conn).GetByUsername(ctx, parent.Author); err == nil && user.Email != "" {
			replySubject := fmt.Sprintf("Re: %s", parent.Subject)
			if err := s.notifier.Send(ctx, user.Email, replySubject, body); err != nil {
				s.logger.Error("sending reply notification", "nid", post.NID, "recipient", user.Email, "error", err)
			}
		}
	}
	return post, nil
}

// Watch subscribes a user to an item. Inactive users are silently skipped.
func (s *workflowService) RegisterClient(ctx context.Context, c *domain.Client) error {
	if c.Email == "" {
		return fmt.Errorf("%w: client email is required", ErrInvalidInput)
	}
	if c.Status == "" {
		c.Status = domain.ClientActive
	}
	return repository.NewSQLiteClientRepo(s.conn).Create(ctx, c)
}

// AttachClients matches each email against the client directory and
// associates the hits with the item. Addresses with no registered client
// are skipped, so callers can pass unvetted input.
func (s *workflowService) AttachClients(ctx context.Context, iid int64, emails []string) ([]*domain.Client, error) {
	clients := repository.NewSQLiteClientRepo(s.conn)
	if _, err := repository.NewSQLiteItemRepo(s.conn).GetByID(ctx, iid); err != nil {
		return nil, err
	}

	var attached []*domain.Client
	for _, email := range emails {
		if email == "" {
			continue
		}
		c, err := clients.GetByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := clients.AttachToItem(ctx, iid, c.ClientID); err != nil {
			return nil, err
		}
		attached = append(attached, c)
	}
	return attached, nil
}

func (s *workflowService) ItemClients(ctx context.Context, iid int64) ([]*domain.Client, error) {
	if _, err := repository.NewSQLiteItemRepo(s.conn).GetByID(ctx, iid); err != nil {
		return nil, err
	}
	return repository.NewSQLiteClientRepo(s.conn).ListByItem(ctx, iid)
}

func (s *workflowService) Watch(ctx context.Context, iid int64, username string) error {
	user, err := repository.NewSQLiteUserRepo(s.conn).GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !user.Active() {
		return nil
	}
	return repository.NewSQLiteNotifyRepo(s.conn).Add(ctx, iid, username)
}

func (s *workflowService) Unwatch(ctx context.Context, iid int64, username string) error {
	return repository.NewSQLiteNotifyRepo(s.conn).Remove(ctx, iid, username)
}

func (s *workflowService) IsWatching(ctx context.Context, iid int64, username string) (bool, error) {
	return repository.NewSQLiteNotifyRepo(s.conn).Exists(ctx, iid, username)
}

// resolveUserOrCaretaker looks a username up, falling back to the
// project's caretaker when the name is empty or unknown.
func (s *workflowService) resolveUserOrCaretaker(ctx context.Context, username string, project *domain.Project) *domain.UserProfile {
	users := repository.NewSQLiteUserRepo(s.conn)
	if username != "" {
		if u, err := users.GetByUsername(ctx, username); err == nil {
			return u
		}
	}
	if u, err := users.GetByUsername(ctx, project.Caretaker); err == nil {
		return u
	}
	// The caretaker row is part of the project's integrity; treat its
	// absence as a plain reference to keep callers moving.
	return &domain.UserProfile{Username: project.Caretaker, Status: domain.UserActive}
}

// resolveAssignee resolves a username within a transaction, falling back
// to the caretaker of the item's project.
func (s *workflowService) resolveAssignee(ctx context.Context, tx db.DBTX, item *domain.Item, username string) (*domain.UserProfile, error) {
	users := repository.NewSQLiteUserRepo(tx)
	if username != "" {
		if u, err := users.GetByUsername(ctx, username); err == nil {
			return u, nil
		}
	}
	milestone, err := repository.NewSQLiteMilestoneRepo(tx).GetByID(ctx, item.MilestoneID)
	if err != nil {
		return nil, err
	}
	project, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, milestone.ProjectID)
	if err != nil {
		return nil, err
	}
	return users.GetByUsername(ctx, project.Caretaker)
}

// resolveMilestone picks the requested milestone, or the project's
// upcoming one when the request is missing or stale.
func (s *workflowService) resolveMilestone(ctx context.Context, mid int64, project *domain.Project) (*domain.Milestone, error) {
	milestones := repository.NewSQLiteMilestoneRepo(s.conn)
	if mid != 0 {
		if m, err := milestones.GetByID(ctx, mid); err == nil {
			return m, nil
		}
	}
	return milestones.Upcoming(ctx, project.PID, s.now())
}

// notifyWatchers emails everyone subscribed to the item except the acting
// user. Delivery failures are logged and never fail the workflow.
func (s *workflowService) notifyWatchers(ctx context.Context, item *domain.Item, actor, body string) {
	if s.notifier == nil {
		return
	}
	watchers, err := repository.NewSQLiteNotifyRepo(s.conn).ListUsernames(ctx, item.IID)
	if err != nil {
		s.logger.Error("listing watchers", "iid", item.IID, "error", err)
		return
	}
	users := repository.NewSQLiteUserRepo(s.conn)
	subject := notifySubject(item)
	for _, username := range watchers {
		if username == actor {
			continue
		}
		user, err := users.GetByUsername(ctx, username)
		if err != nil || user.Email == "" {
			continue
		}
		if err := s.notifier.Send(ctx, user.Email, subject, body); err != nil {
			s.logger.Error("sending notification", "iid", item.IID, "recipient", user.Email, "error", err)
		}
	}
}

func notifySubject(item *domain.Item) string {
	return fmt.Sprintf("PMT [%s $%d] %s", item.Type, item.IID, domain.TruncateString(item.Title, 60))
}

func updateBody(item *domain.Item, comment string) string {
	return fmt.Sprintf("%s $%d %s updated\n%s\n", item.Type, item.IID, item.Title, comment)
}

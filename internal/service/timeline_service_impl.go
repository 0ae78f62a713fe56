package service

import (
	"context"
	"errors"
	"time"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
	"github.com/tracklab/pmt/internal/timeline"
)

type timelineService struct {
	conn db.DBTX
}

func NewTimelineService(conn db.DBTX) TimelineService {
	return &timelineService{conn: conn}
}

// ProjectTimeline assembles the project's feed: status-change events with
// their attached comments, standalone comments, logged time, status
// updates, forum posts, and milestone target dates, merged chronologically.
func (s *timelineService) ProjectTimeline(ctx context.Context, pid int64) ([]timeline.Entry, error) {
	events, err := repository.NewSQLiteEventRepo(s.conn).ListByProject(ctx, pid)
	if err != nil {
		return nil, err
	}
	comments, err := repository.NewSQLiteCommentRepo(s.conn).ListByProject(ctx, pid)
	if err != nil {
		return nil, err
	}
	times, err := repository.NewSQLiteActualTimeRepo(s.conn).ListByProject(ctx, pid)
	if err != nil {
		return nil, err
	}
	updates, err := repository.NewSQLiteStatusUpdateRepo(s.conn).ListByProject(ctx, pid)
	if err != nil {
		return nil, err
	}
	posts, err := repository.NewSQLiteNodeRepo(s.conn).ListByProject(ctx, pid)
	if err != nil {
		return nil, err
	}
	milestones, err := repository.NewSQLiteMilestoneRepo(s.conn).ListByProject(ctx, pid)
	if err != nil {
		return nil, err
	}

	entries, err := s.wrapItemEntries(ctx, events, comments, times)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		entries = append(entries, timeline.StatusUpdateEntry{Update: *u})
	}
	for _, p := range posts {
		entries = append(entries, timeline.PostEntry{Post: *p})
	}
	for _, m := range milestones {
		entries = append(entries, timeline.MilestoneEntry{Milestone: *m})
	}
	return timeline.Merge(entries), nil
}

// UserTimeline assembles one user's activity feed. Milestones carry no
// acting user and are absent here.
func (s *timelineService) UserTimeline(ctx context.Context, username string) ([]timeline.Entry, error) {
	events, err := repository.NewSQLiteEventRepo(s.conn).ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	comments, err := repository.NewSQLiteCommentRepo(s.conn).ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	times, err := repository.NewSQLiteActualTimeRepo(s.conn).ListByUserInterval(ctx, username, time.Time{}, farFuture)
	if err != nil {
		return nil, err
	}
	updates, err := repository.NewSQLiteStatusUpdateRepo(s.conn).ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := repository.NewSQLiteNodeRepo(s.conn).ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}

	entries, err := s.wrapItemEntries(ctx, events, comments, times)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		entries = append(entries, timeline.StatusUpdateEntry{Update: *u})
	}
	for _, p := range posts {
		entries = append(entries, timeline.PostEntry{Post: *p})
	}
	return timeline.Merge(entries), nil
}

// farFuture bounds open-ended interval queries.
var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// wrapItemEntries adapts the item-scoped record kinds, resolving each
// record's item once. Comments attached to an event surface through that
// event's entry rather than on their own.
func (s *timelineService) wrapItemEntries(ctx context.Context, events []*domain.Event, comments []*domain.Comment, times []*domain.ActualTime) ([]timeline.Entry, error) {
	items := repository.NewSQLiteItemRepo(s.conn)
	cache := make(map[int64]*domain.Item)
	lookup := func(iid int64) (*domain.Item, error) {
		if item, ok := cache[iid]; ok {
			return item, nil
		}
		item, err := items.GetByID(ctx, iid)
		if err != nil {
			return nil, err
		}
		cache[iid] = item
		return item, nil
	}

	commentRepo := repository.NewSQLiteCommentRepo(s.conn)
	var entries []timeline.Entry
	for _, e := range events {
		item, err := lookup(e.ItemID)
		if err != nil {
			return nil, err
		}
		entry := timeline.EventEntry{Event: *e, Item: *item}
		attached, err := commentRepo.GetByEvent(ctx, e.EID)
		switch {
		case err == nil:
			entry.Comment = attached
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
		entries = append(entries, entry)
	}
	for _, c := range comments {
		if c.EventID != 0 {
			continue
		}
		item, err := lookup(c.ItemID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, timeline.CommentEntry{Comment: *c, Item: *item})
	}
	for _, a := range times {
		item, err := lookup(a.ItemID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, timeline.ActualTimeEntry{ActualTime: *a, Item: *item})
	}
	return entries, nil
}

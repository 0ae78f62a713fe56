package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteEventRepo implements EventRepo. The events table is append-only:
// there is deliberately no Update or Delete.
type SQLiteEventRepo struct {
	conn db.DBTX
}

func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{conn: conn}
}

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (item_id, status, username, occurred_at) VALUES (?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query,
		e.ItemID, string(e.Status), e.Username, formatTime(e.OccurredAt))
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	eid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading event id: %w", err)
	}
	e.EID = eid
	return nil
}

func (r *SQLiteEventRepo) ListByItem(ctx context.Context, iid int64) ([]*domain.Event, error) {
	query := `SELECT eid, item_id, status, username, occurred_at
		FROM events WHERE item_id = ? ORDER BY occurred_at, eid`
	rows, err := r.conn.QueryContext(ctx, query, iid)
	if err != nil {
		return nil, fmt.Errorf("listing events by item: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) ListByProject(ctx context.Context, pid int64) ([]*domain.Event, error) {
	query := `SELECT e.eid, e.item_id, e.status, e.username, e.occurred_at
		FROM events e
		JOIN items i ON e.item_id = i.iid
		JOIN milestones m ON i.milestone_id = m.mid
		WHERE m.project_id = ?
		ORDER BY e.occurred_at, e.eid`
	rows, err := r.conn.QueryContext(ctx, query, pid)
	if err != nil {
		return nil, fmt.Errorf("listing events by project: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) ListByUser(ctx context.Context, username string) ([]*domain.Event, error) {
	query := `SELECT eid, item_id, status, username, occurred_at
		FROM events WHERE username = ? ORDER BY occurred_at, eid`
	rows, err := r.conn.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("listing events by user: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) CountByItemStatus(ctx context.Context, iid int64, status domain.ItemStatus) (int, error) {
	query := `SELECT COUNT(*) FROM events WHERE item_id = ? AND status = ?`
	var n int
	if err := r.conn.QueryRowContext(ctx, query, iid, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return n, nil
}

func (r *SQLiteEventRepo) scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		var e domain.Event
		var status, occurredAt string
		if err := rows.Scan(&e.EID, &e.ItemID, &status, &e.Username, &occurredAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Status = domain.ItemStatus(status)
		e.OccurredAt = parseTime(occurredAt)
		events = append(events, &e)
	}
	return events, rows.Err()
}

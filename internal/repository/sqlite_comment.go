package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteCommentRepo implements CommentRepo. Comments are append-only.
type SQLiteCommentRepo struct {
	conn db.DBTX
}

func NewSQLiteCommentRepo(conn db.DBTX) *SQLiteCommentRepo {
	return &SQLiteCommentRepo{conn: conn}
}

func (r *SQLiteCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	query := `INSERT INTO comments (item_id, event_id, username, body, added_at)
		VALUES (?, ?, ?, ?, ?)`
	var eventID any
	if c.EventID != 0 {
		eventID = c.EventID
	}
	res, err := r.conn.ExecContext(ctx, query,
		c.ItemID, eventID, c.Username, c.Body, formatTime(c.AddedAt))
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	cid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading comment id: %w", err)
	}
	c.CID = cid
	return nil
}

func (r *SQLiteCommentRepo) GetByEvent(ctx context.Context, eid int64) (*domain.Comment, error) {
	query := `SELECT cid, item_id, COALESCE(event_id, 0), username, body, added_at
		FROM comments WHERE event_id = ? ORDER BY cid LIMIT 1`
	row := r.conn.QueryRowContext(ctx, query, eid)

	var c domain.Comment
	var addedAt string
	err := row.Scan(&c.CID, &c.ItemID, &c.EventID, &c.Username, &c.Body, &addedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("comment for event %d: %w", eid, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning comment: %w", err)
	}
	c.AddedAt = parseTime(addedAt)
	return &c, nil
}

func (r *SQLiteCommentRepo) ListByItem(ctx context.Context, iid int64) ([]*domain.Comment, error) {
	query := `SELECT cid, item_id, COALESCE(event_id, 0), username, body, added_at
		FROM comments WHERE item_id = ? ORDER BY added_at, cid`
	rows, err := r.conn.QueryContext(ctx, query, iid)
	if err != nil {
		return nil, fmt.Errorf("listing comments by item: %w", err)
	}
	defer rows.Close()
	return r.scanComments(rows)
}

func (r *SQLiteCommentRepo) ListByProject(ctx context.Context, pid int64) ([]*domain.Comment, error) {
	query := `SELECT c.cid, c.item_id, COALESCE(c.event_id, 0), c.username, c.body, c.added_at
		FROM comments c
		JOIN items i ON c.item_id = i.iid
		JOIN milestones m ON i.milestone_id = m.mid
		WHERE m.project_id = ?
		ORDER BY c.added_at, c.cid`
	rows, err := r.conn.QueryContext(ctx, query, pid)
	if err != nil {
		return nil, fmt.Errorf("listing comments by project: %w", err)
	}
	defer rows.Close()
	return r.scanComments(rows)
}

func (r *SQLiteCommentRepo) ListByUser(ctx context.Context, username string) ([]*domain.Comment, error) {
	query := `SELECT cid, item_id, COALESCE(event_id, 0), username, body, added_at
		FROM comments WHERE username = ? ORDER BY added_at, cid`
	rows, err := r.conn.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("listing comments by user: %w", err)
	}
	defer rows.Close()
	return r.scanComments(rows)
}

func (r *SQLiteCommentRepo) scanComments(rows *sql.Rows) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		var addedAt string
		if err := rows.Scan(&c.CID, &c.ItemID, &c.EventID, &c.Username, &c.Body, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		c.AddedAt = parseTime(addedAt)
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteStatusUpdateRepo implements StatusUpdateRepo.
type SQLiteStatusUpdateRepo struct {
	conn db.DBTX
}

func NewSQLiteStatusUpdateRepo(conn db.DBTX) *SQLiteStatusUpdateRepo {
	return &SQLiteStatusUpdateRepo{conn: conn}
}

func (r *SQLiteStatusUpdateRepo) Create(ctx context.Context, s *domain.StatusUpdate) error {
	query := `INSERT INTO status_updates (project_id, username, body, added_at) VALUES (?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query,
		s.ProjectID, s.Username, s.Body, formatTime(s.AddedAt))
	if err != nil {
		return fmt.Errorf("inserting status update: %w", err)
	}
	sid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading status update id: %w", err)
	}
	s.SID = sid
	return nil
}

func (r *SQLiteStatusUpdateRepo) ListByProject(ctx context.Context, pid int64) ([]*domain.StatusUpdate, error) {
	query := `SELECT sid, project_id, username, body, added_at
		FROM status_updates WHERE project_id = ? ORDER BY added_at, sid`
	rows, err := r.conn.QueryContext(ctx, query, pid)
	if err != nil {
		return nil, fmt.Errorf("listing status updates by project: %w", err)
	}
	defer rows.Close()
	return r.scanStatusUpdates(rows)
}

func (r *SQLiteStatusUpdateRepo) ListByUser(ctx context.Context, username string) ([]*domain.StatusUpdate, error) {
	query := `SELECT sid, project_id, username, body, added_at
		FROM status_updates WHERE username = ? ORDER BY added_at, sid`
	rows, err := r.conn.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("listing status updates by user: %w", err)
	}
	defer rows.Close()
	return r.scanStatusUpdates(rows)
}

func (r *SQLiteStatusUpdateRepo) scanStatusUpdates(rows *sql.Rows) ([]*domain.StatusUpdate, error) {
	var updates []*domain.StatusUpdate
	for rows.Next() {
		var s domain.StatusUpdate
		var addedAt string
		if err := rows.Scan(&s.SID, &s.ProjectID, &s.Username, &s.Body, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning status update: %w", err)
		}
		s.AddedAt = parseTime(addedAt)
		updates = append(updates, &s)
	}
	return updates, rows.Err()
}

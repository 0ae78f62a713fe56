package repository

import (
	"context"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
)

// SQLiteNotifyRepo implements NotifyRepo, the (item, user) watcher table.
type SQLiteNotifyRepo struct {
	conn db.DBTX
}

func NewSQLiteNotifyRepo(conn db.DBTX) *SQLiteNotifyRepo {
	return &SQLiteNotifyRepo{conn: conn}
}

func (r *SQLiteNotifyRepo) Add(ctx context.Context, iid int64, username string) error {
	query := `INSERT OR IGNORE INTO notify (item_id, username) VALUES (?, ?)`
	if _, err := r.conn.ExecContext(ctx, query, iid, username); err != nil {
		return fmt.Errorf("adding watcher: %w", err)
	}
	return nil
}

func (r *SQLiteNotifyRepo) Remove(ctx context.Context, iid int64, username string) error {
	query := `DELETE FROM notify WHERE item_id = ? AND username = ?`
	if _, err := r.conn.ExecContext(ctx, query, iid, username); err != nil {
		return fmt.Errorf("removing watcher: %w", err)
	}
	return nil
}

func (r *SQLiteNotifyRepo) Exists(ctx context.Context, iid int64, username string) (bool, error) {
	query := `SELECT COUNT(*) FROM notify WHERE item_id = ? AND username = ?`
	var n int
	if err := r.conn.QueryRowContext(ctx, query, iid, username).Scan(&n); err != nil {
		return false, fmt.Errorf("checking watcher: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteNotifyRepo) ListUsernames(ctx context.Context, iid int64) ([]string, error) {
	query := `SELECT username FROM notify WHERE item_id = ? ORDER BY username`
	rows, err := r.conn.QueryContext(ctx, query, iid)
	if err != nil {
		return nil, fmt.Errorf("listing watchers: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scanning watcher: %w", err)
		}
		usernames = append(usernames, u)
	}
	return usernames, rows.Err()
}

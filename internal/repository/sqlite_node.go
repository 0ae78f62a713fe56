package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteNodeRepo implements NodeRepo for forum posts.
type SQLiteNodeRepo struct {
	conn db.DBTX
}

func NewSQLiteNodeRepo(conn db.DBTX) *SQLiteNodeRepo {
	return &SQLiteNodeRepo{conn: conn}
}

const nodeColumns = `nid, project_id, author, subject, body, reply_to, added_at`

func (r *SQLiteNodeRepo) Create(ctx context.Context, n *domain.Node) error {
	query := `INSERT INTO nodes (project_id, author, subject, body, reply_to, added_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query,
		n.ProjectID, n.Author, n.Subject, n.Body, n.ReplyTo, formatTime(n.AddedAt))
	if err != nil {
		return fmt.Errorf("inserting node: %w", err)
	}
	nid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading node id: %w", err)
	}
	n.NID = nid
	return nil
}

func (r *SQLiteNodeRepo) GetByID(ctx context.Context, nid int64) (*domain.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM nodes WHERE nid = ?`
	row := r.conn.QueryRowContext(ctx, query, nid)

	var n domain.Node
	var addedAt string
	err := row.Scan(&n.NID, &n.ProjectID, &n.Author, &n.Subject, &n.Body, &n.ReplyTo, &addedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("node %d: %w", nid, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning node: %w", err)
	}
	n.AddedAt = parseTime(addedAt)
	return &n, nil
}

func (r *SQLiteNodeRepo) ListByProject(ctx context.Context, pid int64) ([]*domain.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM nodes WHERE project_id = ? ORDER BY added_at, nid`
	rows, err := r.conn.QueryContext(ctx, query, pid)
	if err != nil {
		return nil, fmt.Errorf("listing nodes by project: %w", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteNodeRepo) ListByUser(ctx context.Context, username string) ([]*domain.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM nodes WHERE author = ? ORDER BY added_at, nid`
	rows, err := r.conn.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("listing nodes by user: %w", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteNodeRepo) scanNodes(rows *sql.Rows) ([]*domain.Node, error) {
	var nodes []*domain.Node
	for rows.Next() {
		var n domain.Node
		var addedAt string
		if err := rows.Scan(&n.NID, &n.ProjectID, &n.Author, &n.Subject, &n.Body, &n.ReplyTo, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		n.AddedAt = parseTime(addedAt)
		nodes = append(nodes, &n)
	}
	return nodes, rows.Err()
}

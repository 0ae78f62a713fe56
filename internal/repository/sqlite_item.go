package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteItemRepo implements ItemRepo using a SQLite database.
type SQLiteItemRepo struct {
	conn db.DBTX
}

func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{conn: conn}
}

const itemColumns = `iid, type, title, status, r_status, priority, owner,
	assigned_to, milestone_id, target_date, estimated_seconds, description, last_mod`

func (r *SQLiteItemRepo) Create(ctx context.Context, i *domain.Item) error {
	if i.Status == "" {
		i.Status = domain.StatusOpen
	}
	query := `INSERT INTO items (type, title, status, r_status, priority, owner,
		assigned_to, milestone_id, target_date, estimated_seconds, description, last_mod)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query,
		string(i.Type), i.Title, string(i.Status), string(i.RStatus), i.Priority,
		i.Owner, i.AssignedTo, i.MilestoneID, formatDate(i.TargetDate),
		durationToSeconds(i.EstimatedTime), i.Description, formatTime(i.LastMod))
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	iid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading item id: %w", err)
	}
	i.IID = iid
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, iid int64) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE iid = ?`
	return r.scanItem(r.conn.QueryRowContext(ctx, query, iid))
}

func (r *SQLiteItemRepo) ListByMilestone(ctx context.Context, mid int64) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE milestone_id = ? ORDER BY iid`
	rows, err := r.conn.QueryContext(ctx, query, mid)
	if err != nil {
		return nil, fmt.Errorf("listing items by milestone: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteItemRepo) ListByProject(ctx context.Context, pid int64) ([]*domain.Item, error) {
	query := `SELECT i.iid, i.type, i.title, i.status, i.r_status, i.priority, i.owner,
		i.assigned_to, i.milestone_id, i.target_date, i.estimated_seconds, i.description, i.last_mod
		FROM items i
		JOIN milestones m ON i.milestone_id = m.mid
		WHERE m.project_id = ? ORDER BY i.iid`
	rows, err := r.conn.QueryContext(ctx, query, pid)
	if err != nil {
		return nil, fmt.Errorf("listing items by project: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteItemRepo) Update(ctx context.Context, i *domain.Item) error {
	query := `UPDATE items SET type = ?, title = ?, status = ?, r_status = ?, priority = ?,
		owner = ?, assigned_to = ?, milestone_id = ?, target_date = ?,
		estimated_seconds = ?, description = ?, last_mod = ? WHERE iid = ?`
	_, err := r.conn.ExecContext(ctx, query,
		string(i.Type), i.Title, string(i.Status), string(i.RStatus), i.Priority,
		i.Owner, i.AssignedTo, i.MilestoneID, formatDate(i.TargetDate),
		durationToSeconds(i.EstimatedTime), i.Description, formatTime(i.LastMod), i.IID)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) scanItem(row *sql.Row) (*domain.Item, error) {
	var i domain.Item
	var itemType, status, rStatus, targetDate, lastMod string
	var estimatedSeconds int64
	err := row.Scan(&i.IID, &itemType, &i.Title, &status, &rStatus, &i.Priority,
		&i.Owner, &i.AssignedTo, &i.MilestoneID, &targetDate, &estimatedSeconds,
		&i.Description, &lastMod)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	r.populateItem(&i, itemType, status, rStatus, targetDate, lastMod, estimatedSeconds)
	return &i, nil
}

func (r *SQLiteItemRepo) scanItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		var i domain.Item
		var itemType, status, rStatus, targetDate, lastMod string
		var estimatedSeconds int64
		err := rows.Scan(&i.IID, &itemType, &i.Title, &status, &rStatus, &i.Priority,
			&i.Owner, &i.AssignedTo, &i.MilestoneID, &targetDate, &estimatedSeconds,
			&i.Description, &lastMod)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		r.populateItem(&i, itemType, status, rStatus, targetDate, lastMod, estimatedSeconds)
		items = append(items, &i)
	}
	return items, rows.Err()
}

func (r *SQLiteItemRepo) populateItem(i *domain.Item, itemType, status, rStatus, targetDate, lastMod string, estimatedSeconds int64) {
	i.Type = domain.ItemType(itemType)
	i.Status = domain.ItemStatus(status)
	i.RStatus = domain.ResolveStatus(rStatus)
	i.TargetDate = parseTime(targetDate)
	i.LastMod = parseTime(lastMod)
	i.EstimatedTime = secondsToDuration(estimatedSeconds)
}

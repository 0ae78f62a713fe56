package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	conn db.DBTX
}

func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{conn: conn}
}

const milestoneColumns = `mid, project_id, name, target_date, status, description`

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	if m.Status == "" {
		m.Status = domain.MilestoneOpen
	}
	query := `INSERT INTO milestones (project_id, name, target_date, status, description)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query,
		m.ProjectID, m.Name, formatDate(m.TargetDate), string(m.Status), m.Description)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	mid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading milestone id: %w", err)
	}
	m.MID = mid
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, mid int64) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE mid = ?`
	return r.scanMilestone(r.conn.QueryRowContext(ctx, query, mid))
}

func (r *SQLiteMilestoneRepo) ListByProject(ctx context.Context, pid int64) ([]*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE project_id = ? ORDER BY target_date`
	rows, err := r.conn.QueryContext(ctx, query, pid)
	if err != nil {
		return nil, fmt.Errorf("listing milestones by project: %w", err)
	}
	defer rows.Close()
	return r.scanMilestones(rows)
}

func (r *SQLiteMilestoneRepo) ListOpen(ctx context.Context) ([]*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE status = 'OPEN' ORDER BY target_date`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing open milestones: %w", err)
	}
	defer rows.Close()
	return r.scanMilestones(rows)
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	query := `UPDATE milestones SET name = ?, target_date = ?, status = ?, description = ? WHERE mid = ?`
	_, err := r.conn.ExecContext(ctx, query,
		m.Name, formatDate(m.TargetDate), string(m.Status), m.Description, m.MID)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	return nil
}

// Upcoming picks the open milestone with the nearest target date on or
// after today; when every open milestone is already past, the most recent
// one is returned instead. No open milestone at all is ErrNotFound.
func (r *SQLiteMilestoneRepo) Upcoming(ctx context.Context, pid int64, today time.Time) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones
		WHERE project_id = ? AND status = 'OPEN' AND target_date >= ?
		ORDER BY target_date LIMIT 1`
	m, err := r.scanMilestone(r.conn.QueryRowContext(ctx, query, pid, formatDate(today)))
	if err == nil {
		return m, nil
	}

	fallback := `SELECT ` + milestoneColumns + ` FROM milestones
		WHERE project_id = ? AND status = 'OPEN'
		ORDER BY target_date DESC LIMIT 1`
	return r.scanMilestone(r.conn.QueryRowContext(ctx, fallback, pid))
}

func (r *SQLiteMilestoneRepo) UnclosedItemCount(ctx context.Context, mid int64) (int, error) {
	query := `SELECT COUNT(*) FROM items
		WHERE milestone_id = ? AND status NOT IN ('RESOLVED', 'VERIFIED')`
	var n int
	if err := r.conn.QueryRowContext(ctx, query, mid).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting unclosed items: %w", err)
	}
	return n, nil
}

func (r *SQLiteMilestoneRepo) EstimatedTimeRemaining(ctx context.Context, mid int64) (time.Duration, error) {
	query := `SELECT COALESCE(SUM(estimated_seconds), 0) FROM items
		WHERE milestone_id = ? AND status NOT IN ('RESOLVED', 'VERIFIED')`
	var seconds int64
	if err := r.conn.QueryRowContext(ctx, query, mid).Scan(&seconds); err != nil {
		return 0, fmt.Errorf("summing estimated time: %w", err)
	}
	return secondsToDuration(seconds), nil
}

func (r *SQLiteMilestoneRepo) scanMilestone(row *sql.Row) (*domain.Milestone, error) {
	var m domain.Milestone
	var targetDate, status string
	err := row.Scan(&m.MID, &m.ProjectID, &m.Name, &targetDate, &status, &m.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("milestone: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	m.TargetDate = parseTime(targetDate)
	m.Status = domain.MilestoneStatus(status)
	return &m, nil
}

func (r *SQLiteMilestoneRepo) scanMilestones(rows *sql.Rows) ([]*domain.Milestone, error) {
	var milestones []*domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var targetDate, status string
		if err := rows.Scan(&m.MID, &m.ProjectID, &m.Name, &targetDate, &status, &m.Description); err != nil {
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}
		m.TargetDate = parseTime(targetDate)
		m.Status = domain.MilestoneStatus(status)
		milestones = append(milestones, &m)
	}
	return milestones, rows.Err()
}

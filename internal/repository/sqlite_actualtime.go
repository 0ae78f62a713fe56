package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteActualTimeRepo implements ActualTimeRepo. Rows are append-only;
// aggregation happens in SQL over the stored integer seconds, which keeps
// the sums portable across SQLite builds.
type SQLiteActualTimeRepo struct {
	conn db.DBTX
}

func NewSQLiteActualTimeRepo(conn db.DBTX) *SQLiteActualTimeRepo {
	return &SQLiteActualTimeRepo{conn: conn}
}

func (r *SQLiteActualTimeRepo) Create(ctx context.Context, a *domain.ActualTime) error {
	query := `INSERT INTO actual_times (item_id, resolver, actual_seconds, completed)
		VALUES (?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query,
		a.ItemID, a.Resolver, durationToSeconds(a.Duration), formatTime(a.Completed))
	if err != nil {
		return fmt.Errorf("inserting actual time: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading actual time id: %w", err)
	}
	a.ID = id
	return nil
}

func (r *SQLiteActualTimeRepo) ListByItem(ctx context.Context, iid int64) ([]*domain.ActualTime, error) {
	query := `SELECT id, item_id, resolver, actual_seconds, completed
		FROM actual_times WHERE item_id = ? ORDER BY completed, id`
	rows, err := r.conn.QueryContext(ctx, query, iid)
	if err != nil {
		return nil, fmt.Errorf("listing actual times by item: %w", err)
	}
	defer rows.Close()
	return r.scanActualTimes(rows)
}

func (r *SQLiteActualTimeRepo) ListByProject(ctx context.Context, pid int64) ([]*domain.ActualTime, error) {
	query := `SELECT a.id, a.item_id, a.resolver, a.actual_seconds, a.completed
		FROM actual_times a
		JOIN items i ON a.item_id = i.iid
		JOIN milestones m ON i.milestone_id = m.mid
		WHERE m.project_id = ?
		ORDER BY a.completed, a.id`
	rows, err := r.conn.QueryContext(ctx, query, pid)
	if err != nil {
		return nil, fmt.Errorf("listing actual times by project: %w", err)
	}
	defer rows.Close()
	return r.scanActualTimes(rows)
}

func (r *SQLiteActualTimeRepo) ListByUserInterval(ctx context.Context, username string, start, end time.Time) ([]*domain.ActualTime, error) {
	query := `SELECT id, item_id, resolver, actual_seconds, completed
		FROM actual_times
		WHERE resolver = ? AND completed >= ? AND completed < ?
		ORDER BY completed, id`
	rows, err := r.conn.QueryContext(ctx, query, username, formatTime(start), formatTime(end))
	if err != nil {
		return nil, fmt.Errorf("listing actual times by user: %w", err)
	}
	defer rows.Close()
	return r.scanActualTimes(rows)
}

func (r *SQLiteActualTimeRepo) TotalForItem(ctx context.Context, iid int64) (time.Duration, error) {
	query := `SELECT COALESCE(SUM(actual_seconds), 0) FROM actual_times WHERE item_id = ?`
	var seconds int64
	if err := r.conn.QueryRowContext(ctx, query, iid).Scan(&seconds); err != nil {
		return 0, fmt.Errorf("summing actual time for item: %w", err)
	}
	return secondsToDuration(seconds), nil
}

func (r *SQLiteActualTimeRepo) TotalForUserInterval(ctx context.Context, username string, start, end time.Time) (time.Duration, error) {
	query := `SELECT COALESCE(SUM(actual_seconds), 0) FROM actual_times
		WHERE resolver = ? AND completed >= ? AND completed < ?`
	var seconds int64
	if err := r.conn.QueryRowContext(ctx, query, username, formatTime(start), formatTime(end)).Scan(&seconds); err != nil {
		return 0, fmt.Errorf("summing actual time for user: %w", err)
	}
	return secondsToDuration(seconds), nil
}

func (r *SQLiteActualTimeRepo) ProjectHoursForUserInterval(ctx context.Context, username string, start, end time.Time) ([]ProjectHours, error) {
	query := `SELECT p.pid, p.name, SUM(a.actual_seconds)
		FROM actual_times a
		JOIN items i ON a.item_id = i.iid
		JOIN milestones m ON i.milestone_id = m.mid
		JOIN projects p ON m.project_id = p.pid
		WHERE a.resolver = ? AND a.completed >= ? AND a.completed < ?
		GROUP BY p.pid, p.name
		ORDER BY SUM(a.actual_seconds) DESC`
	rows, err := r.conn.QueryContext(ctx, query, username, formatTime(start), formatTime(end))
	if err != nil {
		return nil, fmt.Errorf("aggregating project hours: %w", err)
	}
	defer rows.Close()

	var result []ProjectHours
	for rows.Next() {
		var ph ProjectHours
		var seconds int64
		if err := rows.Scan(&ph.ProjectID, &ph.ProjectName, &seconds); err != nil {
			return nil, fmt.Errorf("scanning project hours: %w", err)
		}
		ph.Total = secondsToDuration(seconds)
		result = append(result, ph)
	}
	return result, rows.Err()
}

func (r *SQLiteActualTimeRepo) scanActualTimes(rows *sql.Rows) ([]*domain.ActualTime, error) {
	var times []*domain.ActualTime
	for rows.Next() {
		var a domain.ActualTime
		var seconds int64
		var completed string
		if err := rows.Scan(&a.ID, &a.ItemID, &a.Resolver, &seconds, &completed); err != nil {
			return nil, fmt.Errorf("scanning actual time: %w", err)
		}
		a.Duration = secondsToDuration(seconds)
		a.Completed = parseTime(completed)
		times = append(times, &a)
	}
	return times, rows.Err()
}

package repository

import (
	"context"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLitePersonnelRepo implements PersonnelRepo, the per-project membership
// roles (manager, developer, guest).
type SQLitePersonnelRepo struct {
	conn db.DBTX
}

func NewSQLitePersonnelRepo(conn db.DBTX) *SQLitePersonnelRepo {
	return &SQLitePersonnelRepo{conn: conn}
}

func (r *SQLitePersonnelRepo) Add(ctx context.Context, pid int64, username string, role domain.ProjectRole) error {
	query := `INSERT OR IGNORE INTO project_personnel (project_id, username, role) VALUES (?, ?, ?)`
	if _, err := r.conn.ExecContext(ctx, query, pid, username, role); err != nil {
		return fmt.Errorf("adding %s: %w", role, err)
	}
	return nil
}

func (r *SQLitePersonnelRepo) Remove(ctx context.Context, pid int64, username string, role domain.ProjectRole) error {
	query := `DELETE FROM project_personnel WHERE project_id = ? AND username = ? AND role = ?`
	if _, err := r.conn.ExecContext(ctx, query, pid, username, role); err != nil {
		return fmt.Errorf("removing %s: %w", role, err)
	}
	return nil
}

func (r *SQLitePersonnelRepo) UsersByRole(ctx context.Context, pid int64, role domain.ProjectRole) ([]*domain.UserProfile, error) {
	query := `SELECT u.username, u.fullname, u.email, u.status
		FROM users u
		JOIN project_personnel pp ON pp.username = u.username
		WHERE pp.project_id = ? AND pp.role = ?
		ORDER BY u.username`
	rows, err := r.conn.QueryContext(ctx, query, pid, role)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", role, err)
	}
	defer rows.Close()

	var users []*domain.UserProfile
	for rows.Next() {
		var u domain.UserProfile
		if err := rows.Scan(&u.Username, &u.Fullname, &u.Email, &u.Status); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *SQLitePersonnelRepo) ProjectsByRole(ctx context.Context, username string, role domain.ProjectRole) ([]*domain.Project, error) {
	query := `SELECT p.pid, p.name, p.caretaker, p.description, p.status
		FROM projects p
		JOIN project_personnel pp ON pp.project_id = p.pid
		WHERE pp.username = ? AND pp.role = ?
		ORDER BY p.name`
	rows, err := r.conn.QueryContext(ctx, query, username, role)
	if err != nil {
		return nil, fmt.Errorf("listing projects by role: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.PID, &p.Name, &p.Caretaker, &p.Description, &p.Status); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

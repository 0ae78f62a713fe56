package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	conn db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{conn: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (name, caretaker, description, status) VALUES (?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query, p.Name, p.Caretaker, p.Description, p.Status)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	pid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading project id: %w", err)
	}
	p.PID = pid
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, pid int64) (*domain.Project, error) {
	query := `SELECT pid, name, caretaker, description, status FROM projects WHERE pid = ?`
	row := r.conn.QueryRowContext(ctx, query, pid)

	var p domain.Project
	if err := row.Scan(&p.PID, &p.Name, &p.Caretaker, &p.Description, &p.Status); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project %d: %w", pid, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT pid, name, caretaker, description, status FROM projects ORDER BY name`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
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

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteUserRepo implements UserRepo over a DBTX, so the same type serves
// both direct reads and tx-scoped writes.
type SQLiteUserRepo struct {
	conn db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{conn: conn}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.UserProfile) error {
	query := `INSERT INTO users (username, fullname, email, status) VALUES (?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query, u.Username, u.Fullname, u.Email, string(u.Status))
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	query := `SELECT username, fullname, email, status FROM users WHERE username = ?`
	return r.scanUser(r.conn.QueryRowContext(ctx, query, username))
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	query := `SELECT username, fullname, email, status FROM users WHERE email = ?`
	return r.scanUser(r.conn.QueryRowContext(ctx, query, email))
}

func (r *SQLiteUserRepo) List(ctx context.Context, activeOnly bool) ([]*domain.UserProfile, error) {
	query := `SELECT username, fullname, email, status FROM users ORDER BY username`
	if activeOnly {
		query = `SELECT username, fullname, email, status FROM users WHERE status = 'active' ORDER BY username`
	}
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.UserProfile
	for rows.Next() {
		var u domain.UserProfile
		var status string
		if err := rows.Scan(&u.Username, &u.Fullname, &u.Email, &status); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.Status = domain.UserStatus(status)
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *SQLiteUserRepo) scanUser(row *sql.Row) (*domain.UserProfile, error) {
	var u domain.UserProfile
	var status string
	if err := row.Scan(&u.Username, &u.Fullname, &u.Email, &status); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Status = domain.UserStatus(status)
	return &u, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/domain"
)

// SQLiteClientRepo implements ClientRepo: the client directory plus the
// (item, client) association table.
type SQLiteClientRepo struct {
	conn db.DBTX
}

func NewSQLiteClientRepo(conn db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{conn: conn}
}

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (lastname, firstname, email, status) VALUES (?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query, c.LastName, c.FirstName, c.Email, c.Status)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading client id: %w", err)
	}
	c.ClientID = id
	return nil
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	query := `SELECT client_id, lastname, firstname, email, status FROM clients WHERE client_id = ?`
	return r.scanOne(r.conn.QueryRowContext(ctx, query, clientID), fmt.Sprintf("client %d", clientID))
}

func (r *SQLiteClientRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := `SELECT client_id, lastname, firstname, email, status FROM clients
		WHERE email = ? ORDER BY client_id LIMIT 1`
	return r.scanOne(r.conn.QueryRowContext(ctx, query, email), fmt.Sprintf("client %q", email))
}

func (r *SQLiteClientRepo) scanOne(row *sql.Row, label string) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ClientID, &c.LastName, &c.FirstName, &c.Email, &c.Status); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", label, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}
	return &c, nil
}

func (r *SQLiteClientRepo) ListByItem(ctx context.Context, iid int64) ([]*domain.Client, error) {
	query := `SELECT c.client_id, c.lastname, c.firstname, c.email, c.status
		FROM clients c
		JOIN item_clients ic ON ic.client_id = c.client_id
		WHERE ic.item_id = ?
		ORDER BY c.lastname, c.firstname`
	rows, err := r.conn.QueryContext(ctx, query, iid)
	if err != nil {
		return nil, fmt.Errorf("listing item clients: %w", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ClientID, &c.LastName, &c.FirstName, &c.Email, &c.Status); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func (r *SQLiteClientRepo) AttachToItem(ctx context.Context, iid, clientID int64) error {
	query := `INSERT OR IGNORE INTO item_clients (item_id, client_id) VALUES (?, ?)`
	if _, err := r.conn.ExecContext(ctx, query, iid, clientID); err != nil {
		return fmt.Errorf("attaching client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) CopyItemClients(ctx context.Context, fromIID, toIID int64) error {
	query := `INSERT OR IGNORE INTO item_clients (item_id, client_id)
		SELECT ?, client_id FROM item_clients WHERE item_id = ?`
	if _, err := r.conn.ExecContext(ctx, query, toIID, fromIID); err != nil {
		return fmt.Errorf("copying item clients: %w", err)
	}
	return nil
}

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE additions that already exist are tolerated so the full list can be
// re-run against older databases.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		fullname TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active'
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		pid INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		caretaker TEXT NOT NULL REFERENCES users(username),
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active'
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		mid INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES projects(pid),
		name TEXT NOT NULL,
		target_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'OPEN',
		description TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		iid INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'OPEN',
		r_status TEXT NOT NULL DEFAULT '',
		priority INTEGER NOT NULL DEFAULT 1,
		owner TEXT NOT NULL REFERENCES users(username),
		assigned_to TEXT NOT NULL REFERENCES users(username),
		milestone_id INTEGER NOT NULL REFERENCES milestones(mid),
		target_date TEXT NOT NULL DEFAULT '',
		estimated_seconds INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		last_mod TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		eid INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL REFERENCES items(iid),
		status TEXT NOT NULL,
		username TEXT NOT NULL REFERENCES users(username),
		occurred_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		cid INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL REFERENCES items(iid),
		event_id INTEGER REFERENCES events(eid),
		username TEXT NOT NULL REFERENCES users(username),
		body TEXT NOT NULL,
		added_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS actual_times (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL REFERENCES items(iid),
		resolver TEXT NOT NULL REFERENCES users(username),
		actual_seconds INTEGER NOT NULL,
		completed TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS status_updates (
		sid INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES projects(pid),
		username TEXT NOT NULL REFERENCES users(username),
		body TEXT NOT NULL,
		added_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS nodes (
		nid INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES projects(pid),
		author TEXT NOT NULL REFERENCES users(username),
		subject TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		reply_to INTEGER NOT NULL DEFAULT 0,
		added_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS clients (
		client_id INTEGER PRIMARY KEY AUTOINCREMENT,
		lastname TEXT NOT NULL DEFAULT '',
		firstname TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active'
	)`,

	`CREATE TABLE IF NOT EXISTS item_clients (
		item_id INTEGER NOT NULL REFERENCES items(iid),
		client_id INTEGER NOT NULL REFERENCES clients(client_id),
		PRIMARY KEY (item_id, client_id)
	)`,

	`CREATE TABLE IF NOT EXISTS project_personnel (
		project_id INTEGER NOT NULL REFERENCES projects(pid),
		username TEXT NOT NULL REFERENCES users(username),
		role TEXT NOT NULL,
		PRIMARY KEY (project_id, username, role)
	)`,

	`CREATE TABLE IF NOT EXISTS notify (
		item_id INTEGER NOT NULL REFERENCES items(iid),
		username TEXT NOT NULL REFERENCES users(username),
		PRIMARY KEY (item_id, username)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_milestone ON items(milestone_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_item ON events(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_item ON comments(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_event ON comments(event_id)`,
	`CREATE INDEX IF NOT EXISTS idx_actual_times_item ON actual_times(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_actual_times_resolver ON actual_times(resolver, completed)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_email ON clients(email)`,
	`CREATE INDEX IF NOT EXISTS idx_personnel_user ON project_personnel(username, role)`,
}

package task

import (
	"context"

	"github.com/eleven-am/taskdeck/internal/db"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id    SERIAL PRIMARY KEY,
		name  VARCHAR(100) NOT NULL,
		color VARCHAR(7) NOT NULL DEFAULT '#667eea'
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          SERIAL PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT,
		status      VARCHAR(20) NOT NULL DEFAULT 'pending',
		priority    VARCHAR(10) NOT NULL DEFAULT 'medium',
		due_date    DATE,
		category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks (due_date)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		name  TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '#667eea'
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL,
		description TEXT,
		status      TEXT NOT NULL DEFAULT 'pending',
		priority    TEXT NOT NULL DEFAULT 'medium',
		due_date    TEXT,
		category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		created_at  TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks (due_date)`,
}

var defaultCategories = []Category{
	{Name: "Work", Color: "#667eea"},
	{Name: "Personal", Color: "#48bb78"},
	{Name: "Shopping", Color: "#ed8936"},
	{Name: "Health", Color: "#e53e3e"},
}

// InstallSchema creates the tasks and categories tables for the active
// driver and seeds the default categories. Safe to run repeatedly:
// tables are created IF NOT EXISTS and seeding only happens while the
// categories table is empty.
func InstallSchema(ctx context.Context, gw *db.Gateway) error {
	schema := postgresSchema
	if gw.Driver() == db.DriverSQLite {
		schema = sqliteSchema
	}

	for _, stmt := range schema {
		if _, err := gw.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	var count int
	if err := gw.Get(ctx, &count, "SELECT COUNT(*) FROM categories"); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, c := range defaultCategories {
		if _, err := gw.Exec(ctx,
			"INSERT INTO categories (name, color) VALUES (?, ?)", c.Name, c.Color); err != nil {
			return err
		}
	}
	return nil
}

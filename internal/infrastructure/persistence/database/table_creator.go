// Package database provides schema bootstrap for the reviews store
package database

import (
	"database/sql"
	"fmt"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		contact_number TEXT NOT NULL,
		user_name TEXT NOT NULL,
		product_name TEXT NOT NULL,
		product_review TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_contact_number ON reviews(contact_number)`,
}

// TableCreator handles the creation of the database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the tables and indexes.
// Every statement is idempotent, so this runs on each startup.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// VerifySchema checks that all expected tables exist, for health reporting.
func (tc *TableCreator) VerifySchema(db *sql.DB) (map[string]bool, bool, error) {
	expected := []string{"reviews"}
	status := make(map[string]bool, len(expected))
	all := true

	for _, table := range expected {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table,
		).Scan(&name)
		switch {
		case err == sql.ErrNoRows:
			status[table] = false
			all = false
		case err != nil:
			return nil, false, fmt.Errorf("failed to verify table %s: %w", table, err)
		default:
			status[table] = true
		}
	}
	return status, all, nil
}

// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"habitboard/internal/domain"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var _ domain.HabitRepository = (*DB)(nil)
var _ domain.ProgressRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id TEXT PRIMARY KEY, email TEXT NOT NULL DEFAULT '', username TEXT NOT NULL DEFAULT '', first_name TEXT NOT NULL DEFAULT '', last_name TEXT NOT NULL DEFAULT '', created_at TIMESTAMPTZ NOT NULL, updated_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS habits (id UUID PRIMARY KEY, user_id TEXT NOT NULL, name TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_habits_user_id ON habits(user_id);",
		"CREATE TABLE IF NOT EXISTS habit_progress (id UUID PRIMARY KEY, habit_id UUID NOT NULL, user_id TEXT NOT NULL, date TIMESTAMPTZ NOT NULL, completed BOOLEAN NOT NULL, notes TEXT, created_at TIMESTAMPTZ NOT NULL, CONSTRAINT uq_habit_progress_habit_date UNIQUE (habit_id, date));",
		"CREATE INDEX IF NOT EXISTS idx_habit_progress_user_id ON habit_progress(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_habit_progress_habit_id ON habit_progress(habit_id);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

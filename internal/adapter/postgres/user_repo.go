package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"habitboard/internal/domain"
)

// UpsertUser writes the identity mirror row keyed by the provider's id.
// Replaying the same event converges on the same single row.
func (d *DB) UpsertUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	updatedAt := u.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO users(id, email, username, first_name, last_name, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id)
		 DO UPDATE SET email = EXCLUDED.email, username = EXCLUDED.username,
		               first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
		               updated_at = EXCLUDED.updated_at;`,
		u.ID, u.Email, u.Username, u.FirstName, u.LastName, now, updatedAt,
	)
	return err
}

// GetUser retrieves a mirrored user by the provider's id.
func (d *DB) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, email, username, first_name, last_name, created_at, updated_at FROM users WHERE id = $1;",
		id,
	).Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

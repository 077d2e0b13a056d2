package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"habitboard/internal/domain"
)

// ListHabits returns all habits for a user, oldest first.
func (d *DB) ListHabits(ctx context.Context, userID string) ([]domain.Habit, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM habits WHERE user_id = $1 ORDER BY created_at;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Habit
	for rows.Next() {
		var h domain.Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// CreateHabit inserts a new habit row and returns it.
func (d *DB) CreateHabit(ctx context.Context, userID, name string) (*domain.Habit, error) {
	var h domain.Habit
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO habits(id, user_id, name, created_at) VALUES($1, $2, $3, $4) RETURNING id, user_id, name, created_at;",
		uuid.NewString(), userID, name, time.Now().UTC(),
	).Scan(&h.ID, &h.UserID, &h.Name, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHabit removes a habit row, scoped to a user.
func (d *DB) DeleteHabit(ctx context.Context, habitID, userID string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM habits WHERE id = $1 AND user_id = $2;", habitID, userID)
	return err
}

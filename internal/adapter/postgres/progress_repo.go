package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"habitboard/internal/domain"
)

// ListProgress returns all progress records for a user.
func (d *DB) ListProgress(ctx context.Context, userID string) ([]domain.ProgressRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, habit_id, date, completed, COALESCE(notes, ''), created_at FROM habit_progress WHERE user_id = $1 ORDER BY date;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.ProgressRecord
	for rows.Next() {
		var r domain.ProgressRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.HabitID, &r.Date, &r.Completed, &r.Notes, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertProgress inserts or overwrites the completion state for one
// (habit, date) key. Notes are only written when non-empty, so an update
// never clobbers an existing note. A unique violation that escapes the ON
// CONFLICT resolution (possible when two inserts race inside concurrent
// transactions) is translated to domain.ErrDuplicateKey.
func (d *DB) UpsertProgress(ctx context.Context, userID, habitID string, date time.Time, completed bool, notes string) error {
	var notesArg any
	if notes != "" {
		notesArg = notes
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO habit_progress(id, user_id, habit_id, date, completed, notes, created_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT ON CONSTRAINT uq_habit_progress_habit_date
		 DO UPDATE SET completed = EXCLUDED.completed, notes = COALESCE(EXCLUDED.notes, habit_progress.notes);`,
		uuid.NewString(), userID, habitID, date.UTC(), completed, notesArg, time.Now().UTC(),
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateKey
	}
	return err
}

// UpdateProgress overwrites the completion state of an existing record,
// reporting whether a row matched the (habit, date) key.
func (d *DB) UpdateProgress(ctx context.Context, habitID string, date time.Time, completed bool) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE habit_progress SET completed = $1 WHERE habit_id = $2 AND date = $3;",
		completed, habitID, date.UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteProgressForHabit removes all progress records for a habit.
func (d *DB) DeleteProgressForHabit(ctx context.Context, habitID string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM habit_progress WHERE habit_id = $1;", habitID)
	return err
}

// ProgressForHabit returns the progress records of a single habit. Used by
// maintenance tooling and tests to verify cascade deletion.
func (d *DB) ProgressForHabit(ctx context.Context, habitID string) ([]domain.ProgressRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, habit_id, date, completed, COALESCE(notes, ''), created_at FROM habit_progress WHERE habit_id = $1 ORDER BY date;", habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.ProgressRecord
	for rows.Next() {
		var r domain.ProgressRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.HabitID, &r.Date, &r.Completed, &r.Notes, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"habitboard/internal/domain"
)

// DB implements in-memory storage guarded by a single mutex. It enforces
// the same (habit_id, date) uniqueness the Postgres schema does.
type DB struct {
	mu       sync.Mutex
	habits   []domain.Habit
	progress []domain.ProgressRecord
	users    map[string]domain.User
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{users: make(map[string]domain.User)}
}

// Ensure interfaces are met.
var _ domain.HabitRepository = (*DB)(nil)
var _ domain.ProgressRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)

// --- HabitRepository ---

// ListHabits returns all habits for a user, oldest first.
func (db *DB) ListHabits(ctx context.Context, userID string) ([]domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Habit
	for _, h := range db.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// CreateHabit inserts a new habit.
func (db *DB) CreateHabit(ctx context.Context, userID, name string) (*domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	h := domain.Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	db.habits = append(db.habits, h)
	return &h, nil
}

// DeleteHabit removes a habit, scoped to a user.
func (db *DB) DeleteHabit(ctx context.Context, habitID, userID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, h := range db.habits {
		if h.ID == habitID && h.UserID == userID {
			db.habits = append(db.habits[:i], db.habits[i+1:]...)
			return nil
		}
	}
	// Deleting an absent habit is a no-op, matching SQL DELETE semantics.
	return nil
}

// --- ProgressRepository ---

// ListProgress returns all progress records for a user in date order.
func (db *DB) ListProgress(ctx context.Context, userID string) ([]domain.ProgressRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.ProgressRecord
	for _, r := range db.progress {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// UpsertProgress inserts or overwrites the record for one (habit, date)
// key. The single lock makes the upsert atomic, so the duplicate-key
// fallback path never triggers against this adapter.
func (db *DB) UpsertProgress(ctx context.Context, userID, habitID string, date time.Time, completed bool, notes string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	day := date.UTC()
	for i := range db.progress {
		r := &db.progress[i]
		if r.HabitID == habitID && r.Date.Equal(day) {
			r.Completed = completed
			if notes != "" {
				r.Notes = notes
			}
			return nil
		}
	}

	db.progress = append(db.progress, domain.ProgressRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		HabitID:   habitID,
		Date:      day,
		Completed: completed,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// UpdateProgress overwrites an existing record's completion state.
func (db *DB) UpdateProgress(ctx context.Context, habitID string, date time.Time, completed bool) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	day := date.UTC()
	for i := range db.progress {
		r := &db.progress[i]
		if r.HabitID == habitID && r.Date.Equal(day) {
			r.Completed = completed
			return true, nil
		}
	}
	return false, nil
}

// DeleteProgressForHabit removes all progress records for a habit.
func (db *DB) DeleteProgressForHabit(ctx context.Context, habitID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.progress[:0]
	for _, r := range db.progress {
		if r.HabitID != habitID {
			kept = append(kept, r)
		}
	}
	db.progress = kept
	return nil
}

// ProgressForHabit returns the records of a single habit.
func (db *DB) ProgressForHabit(ctx context.Context, habitID string) ([]domain.ProgressRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.ProgressRecord
	for _, r := range db.progress {
		if r.HabitID == habitID {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- UserRepository ---

// UpsertUser writes the identity mirror entry keyed by the provider's id.
func (db *DB) UpsertUser(ctx context.Context, u domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if existing, ok := db.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	} else if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	db.users[u.ID] = u
	return nil
}

// GetUser retrieves a mirrored user by id.
func (db *DB) GetUser(ctx context.Context, id string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if u, ok := db.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// UserCount returns the number of mirrored users.
func (db *DB) UserCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users)
}

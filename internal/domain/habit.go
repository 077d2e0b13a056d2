// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Habit is a user-defined recurring activity to be tracked.
type Habit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	// Days is the derived calendar view model: day-of-month -> completed.
	// It is rebuilt on every fetch and never persisted.
	Days map[int]bool `json:"days"`
}

// ProgressRecord is a single day's completion state for one habit.
// At most one record exists per (HabitID, Date) pair; Date is always
// normalised to UTC midnight so the pair forms a stable unique key.
type ProgressRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	HabitID   string    `json:"habitId"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HabitRepository is the port for habit persistence.
type HabitRepository interface {
	ListHabits(ctx context.Context, userID string) ([]Habit, error)
	CreateHabit(ctx context.Context, userID, name string) (*Habit, error)
	DeleteHabit(ctx context.Context, habitID, userID string) error
}

// ProgressRepository is the port for progress persistence. Upsert must
// resolve on the (habitID, date) key; if the backing store reports a
// uniqueness violation instead of resolving atomically it returns
// ErrDuplicateKey so the caller can run the fallback Update. Update
// reports whether a row was matched.
type ProgressRepository interface {
	ListProgress(ctx context.Context, userID string) ([]ProgressRecord, error)
	UpsertProgress(ctx context.Context, userID, habitID string, date time.Time, completed bool, notes string) error
	UpdateProgress(ctx context.Context, habitID string, date time.Time, completed bool) (bool, error)
	DeleteProgressForHabit(ctx context.Context, habitID string) error
}

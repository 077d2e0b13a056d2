package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habitboard/internal/domain"
)

// ProgressService encapsulates the toggle/upsert path for per-day
// completion state. This is the only operation with real concurrency
// concerns: two independent writers can race to create the first record
// for a (habit, date) pair.
type ProgressService struct {
	progress domain.ProgressRepository
}

// NewProgressService creates a ProgressService backed by the given repository.
func NewProgressService(progress domain.ProgressRepository) *ProgressService {
	return &ProgressService{progress: progress}
}

// SetProgress records the completion state for one habit on one day.
//
// The date is normalised to UTC midnight so the (habit_id, date) conflict
// key is canonical on every call. The write is an idempotent upsert; when
// the store reports a uniqueness violation instead of resolving the upsert
// atomically, the losing writer falls back to exactly one plain update
// keyed by (habit_id, date). If that update matches no row the race is
// unresolved and surfaces as ErrConflict, which the caller may retry.
func (s *ProgressService) SetProgress(ctx context.Context, userID, habitID string, date time.Time, completed bool, notes string) error {
	day := domain.NormalizeDate(date)
	today := domain.NormalizeDate(time.Now())
	if day.After(today) {
		return fmt.Errorf("%w: cannot modify future dates", domain.ErrValidation)
	}

	err := s.progress.UpsertProgress(ctx, userID, habitID, day, completed, notes)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrDuplicateKey) {
		return fmt.Errorf("%w: upsert progress: %v", domain.ErrWrite, err)
	}

	// The winning concurrent writer inserted the row; overwrite its value.
	found, err := s.progress.UpdateProgress(ctx, habitID, day, completed)
	if err != nil {
		return fmt.Errorf("%w: fallback update: %v", domain.ErrWrite, err)
	}
	if !found {
		return fmt.Errorf("%w: habit %s date %s", domain.ErrConflict, habitID, day.Format("2006-01-02"))
	}
	return nil
}

// Package app holds the application services and business logic.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"habitboard/internal/domain"
)

// HabitService encapsulates habit use cases: listing with the merged
// calendar, creation and cascading deletion.
type HabitService struct {
	habits   domain.HabitRepository
	progress domain.ProgressRepository
}

// NewHabitService creates a HabitService backed by the given repositories.
func NewHabitService(habits domain.HabitRepository, progress domain.ProgressRepository) *HabitService {
	return &HabitService{habits: habits, progress: progress}
}

// ListHabitsWithProgress returns the user's habits with each habit's
// day-of-month calendar for the given month. Both underlying fetches must
// succeed; a failure on either returns an error so callers can distinguish
// "failed to load" from "legitimately empty".
func (s *HabitService) ListHabitsWithProgress(ctx context.Context, userID string, year int, month time.Month) ([]domain.Habit, error) {
	habits, err := s.habits.ListHabits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list habits: %v", domain.ErrDataFetch, err)
	}
	records, err := s.progress.ListProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list progress: %v", domain.ErrDataFetch, err)
	}

	out := make([]domain.Habit, len(habits))
	for i, h := range habits {
		h.Days = domain.BuildDayMap(records, h.ID, year, month)
		out[i] = h
	}
	return out, nil
}

// CreateHabit inserts a new habit and returns it with an empty calendar.
// The name is assumed pre-validated at the transport boundary; creation is
// deliberately not retried since a retry on an ambiguous failure could
// create a duplicate habit.
func (s *HabitService) CreateHabit(ctx context.Context, userID, name string) (*domain.Habit, error) {
	h, err := s.habits.CreateHabit(ctx, userID, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%w: create habit: %v", domain.ErrWrite, err)
	}
	if h.Days == nil {
		h.Days = make(map[int]bool)
	}
	return h, nil
}

// CreateFromPresets creates one habit per known preset id, in catalog
// order. Unknown ids are rejected before any habit is created; a create
// failure stops the sequence.
func (s *HabitService) CreateFromPresets(ctx context.Context, userID string, presetIDs []string) ([]domain.Habit, error) {
	presets := make([]domain.PresetHabit, 0, len(presetIDs))
	for _, id := range presetIDs {
		p, ok := domain.PresetByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: unknown preset %q", domain.ErrValidation, id)
		}
		presets = append(presets, p)
	}

	created := make([]domain.Habit, 0, len(presets))
	for _, p := range presets {
		h, err := s.CreateHabit(ctx, userID, p.Name)
		if err != nil {
			return created, err
		}
		created = append(created, *h)
	}
	return created, nil
}

// DeleteHabit removes a habit and all its progress records. Progress rows
// are deleted first: a failure between the two steps then leaves a still
// re-deletable habit rather than orphaned progress rows.
func (s *HabitService) DeleteHabit(ctx context.Context, habitID, userID string) error {
	if err := s.progress.DeleteProgressForHabit(ctx, habitID); err != nil {
		return fmt.Errorf("%w: delete progress: %v", domain.ErrWrite, err)
	}
	if err := s.habits.DeleteHabit(ctx, habitID, userID); err != nil {
		return fmt.Errorf("%w: delete habit: %v", domain.ErrWrite, err)
	}
	return nil
}

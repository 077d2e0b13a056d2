package app

import (
	"context"
	"time"

	"habitboard/internal/domain"
)

// StatsService derives monthly statistics from the calendar view model.
type StatsService struct {
	habits *HabitService
}

// NewStatsService creates a StatsService on top of the habit listing path.
func NewStatsService(habits *HabitService) *StatsService {
	return &StatsService{habits: habits}
}

// HabitStats is the per-habit summary returned by Monthly.
type HabitStats struct {
	HabitID        string `json:"habitId"`
	Name           string `json:"name"`
	CompletedDays  int    `json:"completedDays"`
	CompletionRate int    `json:"completionRate"`
	LongestStreak  int    `json:"longestStreak"`
}

// Monthly returns completion rate and longest streak for each of the
// user's habits in the given month.
func (s *StatsService) Monthly(ctx context.Context, userID string, year int, month time.Month) ([]HabitStats, error) {
	habits, err := s.habits.ListHabitsWithProgress(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	daysInMonth := domain.DaysInMonth(year, month)
	out := make([]HabitStats, 0, len(habits))
	for _, h := range habits {
		completed := 0
		for _, done := range h.Days {
			if done {
				completed++
			}
		}
		out = append(out, HabitStats{
			HabitID:        h.ID,
			Name:           h.Name,
			CompletedDays:  completed,
			CompletionRate: domain.CompletionRate(h.Days, daysInMonth),
			LongestStreak:  domain.LongestStreak(h.Days, daysInMonth),
		})
	}
	return out, nil
}

package domain

import "time"

// BuildDayMap folds the progress records belonging to habitID into a
// day-of-month -> completed map for the given month. The calendar is scoped
// to a single month so the day-of-month key cannot collapse records from
// different months. When two records land on the same day the later one in
// slice order wins.
func BuildDayMap(records []ProgressRecord, habitID string, year int, month time.Month) map[int]bool {
	days := make(map[int]bool)
	for _, r := range records {
		if r.HabitID != habitID {
			continue
		}
		d := r.Date.UTC()
		if d.Year() != year || d.Month() != month {
			continue
		}
		days[d.Day()] = r.Completed
	}
	return days
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CompletionRate returns the percentage of days in the month marked
// completed, rounded to the nearest integer.
func CompletionRate(days map[int]bool, daysInMonth int) int {
	if daysInMonth <= 0 {
		return 0
	}
	completed := 0
	for _, done := range days {
		if done {
			completed++
		}
	}
	return int(float64(completed)/float64(daysInMonth)*100 + 0.5)
}

// LongestStreak returns the longest run of consecutive completed days
// within the month.
func LongestStreak(days map[int]bool, daysInMonth int) int {
	current, max := 0, 0
	for i := 1; i <= daysInMonth; i++ {
		if days[i] {
			current++
			if current > max {
				max = current
			}
		} else {
			current = 0
		}
	}
	return max
}

// NormalizeDate truncates t to UTC midnight. Every progress write goes
// through this so the (habit_id, date) conflict key never fragments by
// time-of-day.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

package adapthttp

import (
	"fmt"
	"net/http"

	"habitboard/internal/domain"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		HabitID   string `json:"habitId"`
		Date      string `json:"date"`
		Completed bool   `json:"completed"`
		Notes     string `json:"notes"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.HabitID == "" {
		writeDomainError(w, fmt.Errorf("%w: habitId must not be empty", domain.ErrValidation))
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		writeDomainError(w, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, body.Date))
		return
	}

	err = s.progress.SetProgress(r.Context(), requestUserID(r), body.HabitID, date, body.Completed, body.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleStatsMonthly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	year, month := monthQuery(r)
	stats, err := s.stats.Monthly(r.Context(), requestUserID(r), year, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": stats,
		"year":  year,
		"month": int(month),
	})
}

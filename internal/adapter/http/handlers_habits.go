package adapthttp

import (
	"fmt"
	"net/http"
	"strings"

	"habitboard/internal/domain"
)

func (s *Server) handleHabits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listHabits(w, r)
	case http.MethodPost:
		s.createHabit(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	year, month := monthQuery(r)
	habits, err := s.habits.ListHabitsWithProgress(r.Context(), requestUserID(r), year, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if habits == nil {
		habits = []domain.Habit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"habits": habits,
		"year":   year,
		"month":  int(month),
	})
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	// Name validation is a transport-boundary concern; the service assumes
	// a pre-validated name.
	if strings.TrimSpace(body.Name) == "" {
		writeDomainError(w, fmt.Errorf("%w: name must not be empty", domain.ErrValidation))
		return
	}
	habit, err := s.habits.CreateHabit(r.Context(), requestUserID(r), body.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

func (s *Server) handleHabitDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		ID string `json:"id"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.ID == "" {
		writeDomainError(w, fmt.Errorf("%w: id must not be empty", domain.ErrValidation))
		return
	}
	if err := s.habits.DeleteHabit(r.Context(), body.ID, requestUserID(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"presets": domain.PresetHabits})
	case http.MethodPost:
		var body struct {
			IDs []string `json:"ids"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if len(body.IDs) == 0 {
			writeDomainError(w, fmt.Errorf("%w: ids must not be empty", domain.ErrValidation))
			return
		}
		created, err := s.habits.CreateFromPresets(r.Context(), requestUserID(r), body.IDs)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"habits": created})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

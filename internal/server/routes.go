package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mcrawford/cadence/internal/engine"
	"github.com/mcrawford/cadence/internal/habit"
)

// habitPayload is the wire form of a habit for both requests and
// responses.
type habitPayload struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Comparison  string  `json:"comparison,omitempty"`
	TargetValue float64 `json:"target_value,omitempty"`
	FreqNum     int     `json:"freq_num"`
	FreqDen     int     `json:"freq_den"`
	Archived    bool    `json:"archived,omitempty"`
}

func toPayload(h *habit.Habit) habitPayload {
	return habitPayload{
		ID:          h.ID,
		Name:        h.Name,
		Kind:        string(h.Kind),
		Comparison:  string(h.Comparison),
		TargetValue: h.TargetValue,
		FreqNum:     h.Frequency.Num,
		FreqDen:     h.Frequency.Den,
		Archived:    h.Archived,
	}
}

func (p habitPayload) apply(h *habit.Habit) {
	h.Name = p.Name
	h.Kind = habit.Kind(p.Kind)
	h.Comparison = habit.Comparison(p.Comparison)
	h.TargetValue = p.TargetValue
	h.Frequency = habit.Frequency{Num: p.FreqNum, Den: p.FreqDen}
	h.Archived = p.Archived
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	var h habit.Habit
	req.apply(&h)
	if err := s.db.CreateHabit(&h); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toPayload(&h))
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("archived") == "true"
	habits, err := s.db.ListHabits(includeArchived)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]habitPayload, 0, len(habits))
	for i := range habits {
		out = append(out, toPayload(&habits[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"habits": out})
}

// loadHabit resolves {habitID}; on failure it writes the error response
// and returns nil.
func (s *Server) loadHabit(w http.ResponseWriter, r *http.Request) *habit.Habit {
	id := chi.URLParam(r, "habitID")
	h, err := s.db.GetHabit(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil
	}
	if h == nil {
		writeError(w, http.StatusNotFound, "habit not found")
		return nil
	}
	return h
}

func (s *Server) handleGetHabit(w http.ResponseWriter, r *http.Request) {
	h := s.loadHabit(w, r)
	if h == nil {
		return
	}
	writeJSON(w, http.StatusOK, toPayload(h))
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	h := s.loadHabit(w, r)
	if h == nil {
		return
	}

	var req habitPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	req.apply(h)
	if err := s.db.UpdateHabit(h); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toPayload(h))
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	h := s.loadHabit(w, r)
	if h == nil {
		return
	}
	if err := s.db.DeleteHabit(h.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// parseDayParam accepts either an ISO date (2006-01-02) or a raw day
// index.
func parseDayParam(raw string) (habit.Day, error) {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return habit.Day(n), nil
	}
	return habit.ParseDay(raw)
}

func (s *Server) handleSetCompletion(w http.ResponseWriter, r *http.Request) {
	h := s.loadHabit(w, r)
	if h == nil {
		return
	}

	day, err := parseDayParam(chi.URLParam(r, "day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}

	// Boolean habits default to a single done; numeric habits must
	// send a milli-unit value.
	req := struct {
		Value *int64 `json:"value"`
	}{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}

	value := int64(1)
	if req.Value != nil {
		value = *req.Value
	} else if h.Kind == habit.Numeric {
		writeError(w, http.StatusBadRequest, "numeric habit requires a value")
		return
	}
	if value < 0 {
		writeError(w, http.StatusBadRequest, "value must be non-negative")
		return
	}

	if err := s.db.SetCompletion(h.ID, day, value); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"day": day.String(), "value": value})
}

func (s *Server) handleClearCompletion(w http.ResponseWriter, r *http.Request) {
	h := s.loadHabit(w, r)
	if h == nil {
		return
	}

	day, err := parseDayParam(chi.URLParam(r, "day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}

	if err := s.db.ClearCompletion(h.ID, day); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	h := s.loadHabit(w, r)
	if h == nil {
		return
	}

	days := s.defaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	scores, err := s.engine.ComputeScores(h, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type scorePayload struct {
		Day   string  `json:"day"`
		Value float64 `json:"value"`
	}
	out := make([]scorePayload, 0, len(scores))
	for _, sc := range scores {
		out = append(out, scorePayload{Day: sc.Day.String(), Value: sc.Value})
	}
	writeJSON(w, http.StatusOK, map[string]any{"habit_id": h.ID, "scores": out})
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	h := s.loadHabit(w, r)
	if h == nil {
		return
	}

	back := s.defaultMonthsBack
	if raw := r.URL.Query().Get("back"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "back must be a positive integer")
			return
		}
		back = n
	}

	buckets, err := s.engine.ComputeMonthBuckets(h, back)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type bucketPayload struct {
		Month string `json:"month"`
		Count int    `json:"count"`
	}
	out := make([]bucketPayload, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, bucketPayload{Month: engine.MonthLabel(b.Month), Count: b.Count})
	}
	writeJSON(w, http.StatusOK, map[string]any{"habit_id": h.ID, "months": out})
}

package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req habitPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, validationError("Invalid request body"))
		return
	}
	if apiErr := validateHabitPayload(req); apiErr != nil {
		writeError(w, apiErr)
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		writeError(w, validationError("Invalid userId format."))
		return
	}
	if userID != callerID(r) {
		writeError(w, notFoundError("User not found"))
		return
	}

	days := []string{}
	if req.RepeatMode == RepeatWeekly {
		days = req.Days
	}
	habit := &Habit{
		ID:         primitive.NewObjectID(),
		Title:      req.Title,
		Color:      req.Color,
		RepeatMode: req.RepeatMode,
		Days:       days,
		Reminder:   normalizeReminder(req.Reminder),
		Completed:  map[string]bool{},
		Skipped:    map[string]bool{},
		CreatedAt:  s.now(),
		UserID:     userID,
	}
	if err := s.store.InsertHabit(r.Context(), habit); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("userId")
	if raw == "" {
		writeError(w, validationError("userId is required."))
		return
	}
	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		writeError(w, validationError("Invalid userId format."))
		return
	}
	if userID != callerID(r) {
		writeError(w, notFoundError("User not found"))
		return
	}
	habits, lerr := s.store.ListHabitsByUser(r.Context(), userID)
	if lerr != nil {
		writeError(w, lerr)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	habit, apiErr := s.ownedHabit(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// habitUpdate is the partial-update body. Nil pointers are left untouched on
// the stored record.
type habitUpdate struct {
	Title      *string          `json:"title"`
	Color      *string          `json:"color"`
	RepeatMode *string          `json:"repeatMode"`
	Days       *[]string        `json:"days"`
	Reminder   *Reminder        `json:"reminder"`
	Completed  *map[string]bool `json:"completed"`
	Skipped    *map[string]bool `json:"skipped"`
	UserID     string           `json:"userId"`
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	habit, apiErr := s.ownedHabit(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	var req habitUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, validationError("Invalid request body"))
		return
	}
	// A payload userId re-asserts ownership of the record.
	if req.UserID != "" {
		uid, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil || uid != habit.UserID {
			writeError(w, notFoundError("Habit not found or not yours."))
			return
		}
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if req.RepeatMode != nil {
		if *req.RepeatMode != RepeatDaily && *req.RepeatMode != RepeatWeekly {
			writeError(w, validationError("Invalid repeat mode."))
			return
		}
		fields["repeatMode"] = *req.RepeatMode
		// Switching to weekly without days leaves the selection empty; the
		// client re-submits days on its next edit.
		if *req.RepeatMode == RepeatWeekly && req.Days == nil {
			fields["days"] = []string{}
		}
	}
	if req.Days != nil {
		fields["days"] = *req.Days
	}
	if req.Reminder != nil {
		fields["reminder"] = normalizeReminder(req.Reminder)
	}
	if req.Completed != nil {
		fields["completed"] = *req.Completed
	}
	if req.Skipped != nil {
		fields["skipped"] = *req.Skipped
	}
	if len(fields) == 0 {
		writeJSON(w, http.StatusOK, habit)
		return
	}

	updated, err := s.store.UpdateHabitFields(r.Context(), habit.ID, fields)
	if err == ErrNotFound {
		writeError(w, notFoundError("Habit not found."))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// replaceHabitCompleted is the legacy full-map replace the older client used;
// the general update above covers the same ground.
func (s *Server) replaceHabitCompleted(w http.ResponseWriter, r *http.Request) {
	habit, apiErr := s.ownedHabit(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	var req struct {
		Completed map[string]bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, validationError("Invalid request body"))
		return
	}
	// A null map would persist as BSON null and break later per-day $set
	// updates; store an empty map instead.
	if req.Completed == nil {
		req.Completed = map[string]bool{}
	}
	updated, err := s.store.ReplaceHabitCompleted(r.Context(), habit.ID, req.Completed)
	if err == ErrNotFound {
		writeError(w, notFoundError("Habit not found"))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) markHabitDay(w http.ResponseWriter, r *http.Request) {
	habit, apiErr := s.ownedHabit(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	day := chi.URLParam(r, "day")
	if !isWeekdayKey(day) {
		writeError(w, validationError("Invalid day key."))
		return
	}
	var req struct {
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, validationError("Invalid request body"))
		return
	}
	if req.Kind != MarkCompleted && req.Kind != MarkSkipped {
		writeError(w, validationError("Kind must be \"completed\" or \"skipped\"."))
		return
	}
	updated, err := s.store.MarkHabitDay(r.Context(), habit.ID, day, req.Kind)
	if err == ErrNotFound {
		writeError(w, notFoundError("Habit not found."))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	habit, apiErr := s.ownedHabit(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	if err := s.store.DeleteHabit(r.Context(), habit.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted successfully."})
}

// ownedHabit resolves the {habitId} path segment to a habit owned by the
// caller. Another user's habit reads as not-found.
func (s *Server) ownedHabit(r *http.Request) (*Habit, *apiError) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "habitId"))
	if err != nil {
		return nil, validationError("Invalid habitId format.")
	}
	habit, ferr := s.store.FindHabitByID(r.Context(), id)
	if ferr == ErrNotFound {
		return nil, notFoundError("Habit not found.")
	}
	if ferr != nil {
		return nil, &apiError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Something went wrong"}
	}
	if habit.UserID != callerID(r) {
		return nil, notFoundError("Habit not found.")
	}
	return habit, nil
}

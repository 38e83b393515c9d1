package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createTodoRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
	DueDate  string `json:"dueDate"`
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := requirePathUser(r, "id")
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, validationError("Invalid request body"))
		return
	}
	if req.Title == "" || req.Category == "" {
		writeError(w, validationError("Title and category are required"))
		return
	}
	dueDate, apiErr := normalizeDueDate(req.DueDate)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	if _, err := s.store.FindUserByID(r.Context(), userID); err != nil {
		if err == ErrNotFound {
			writeError(w, notFoundError("User not found"))
			return
		}
		writeError(w, err)
		return
	}
	todo := &Todo{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Status:    StatusPending,
		Category:  req.Category,
		Notes:     req.Notes,
		DueDate:   dueDate,
		CreatedAt: s.now(),
		UserID:    userID,
	}
	if err := s.store.InsertTodo(r.Context(), todo); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Todo added successfully",
		"todo":    todo,
	})
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := requirePathUser(r, "userId")
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	todos, err := s.store.ListTodosByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"todos": todos})
}

func (s *Server) completeTodo(w http.ResponseWriter, r *http.Request) {
	todo, apiErr := s.ownedTodo(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	// Completing twice is a no-op.
	updated, err := s.store.CompleteTodo(r.Context(), todo.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Todo marked as complete",
		"todo":    updated,
	})
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	todo, apiErr := s.ownedTodo(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	if err := s.store.DeleteTodo(r.Context(), todo.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted successfully."})
}

func (s *Server) listUserCompletedOnDate(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := requirePathUser(r, "userId")
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	from, to, apiErr := dayWindowUTC(chi.URLParam(r, "date"))
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	todos, err := s.store.ListCompletedTodosInWindow(r.Context(), &userID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"completedTodos": todos})
}

// listCompletedOnDate is the shared calendar view: completed todos across all
// users for one UTC day.
func (s *Server) listCompletedOnDate(w http.ResponseWriter, r *http.Request) {
	from, to, apiErr := dayWindowUTC(chi.URLParam(r, "date"))
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	todos, err := s.store.ListCompletedTodosInWindow(r.Context(), nil, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"completedTodos": todos})
}

func (s *Server) countTodos(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := requirePathUser(r, "userId")
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	completed, err := s.store.CountTodosByStatus(r.Context(), userID, StatusCompleted)
	if err != nil {
		writeError(w, err)
		return
	}
	pending, err := s.store.CountTodosByStatus(r.Context(), userID, StatusPending)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"totalCompletedTodos": completed,
		"totalPendingTodos":   pending,
	})
}

// ownedTodo resolves the {todoId} path segment to a todo owned by the caller.
// Another user's todo reads as not-found.
func (s *Server) ownedTodo(r *http.Request) (*Todo, *apiError) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return nil, validationError("Invalid todoId format.")
	}
	todo, ferr := s.store.FindTodoByID(r.Context(), id)
	if ferr == ErrNotFound {
		return nil, notFoundError("Todo not found.")
	}
	if ferr != nil {
		return nil, &apiError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Something went wrong"}
	}
	if todo.UserID != callerID(r) {
		return nil, notFoundError("Todo not found.")
	}
	return todo, nil
}

package main

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore keeps everything in process memory. It backs tests and
// STORE_DRIVER=memory development runs; semantics mirror mongoStore, including
// natural insertion order for list operations.
type memStore struct {
	mu         sync.Mutex
	users      map[primitive.ObjectID]*User
	emails     map[string]primitive.ObjectID
	todos      map[primitive.ObjectID]*Todo
	todoOrder  []primitive.ObjectID
	habits     map[primitive.ObjectID]*Habit
	habitOrder []primitive.ObjectID
}

func NewMemStore() Store {
	return &memStore{
		users:  map[primitive.ObjectID]*User{},
		emails: map[string]primitive.ObjectID{},
		todos:  map[primitive.ObjectID]*Todo{},
		habits: map[primitive.ObjectID]*Habit{},
	}
}

func (s *memStore) InsertUser(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[u.Email]; taken {
		return ErrDuplicateEmail
	}
	cp := *u
	s.users[u.ID] = &cp
	s.emails[u.Email] = u.ID
	return nil
}

func (s *memStore) FindUserByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *memStore) FindUserByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) InsertTodo(_ context.Context, t *Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.todos[t.ID] = &cp
	s.todoOrder = append(s.todoOrder, t.ID)
	return nil
}

func (s *memStore) FindTodoByID(_ context.Context, id primitive.ObjectID) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *memStore) ListTodosByUser(_ context.Context, userID primitive.ObjectID) ([]Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todos := []Todo{}
	for _, id := range s.todoOrder {
		if t, ok := s.todos[id]; ok && t.UserID == userID {
			todos = append(todos, *t)
		}
	}
	return todos, nil
}

func (s *memStore) CompleteTodo(_ context.Context, id primitive.ObjectID) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Status = StatusCompleted
	cp := *t
	return &cp, nil
}

func (s *memStore) DeleteTodo(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[id]; !ok {
		return ErrNotFound
	}
	delete(s.todos, id)
	return nil
}

func (s *memStore) ListCompletedTodosInWindow(_ context.Context, userID *primitive.ObjectID, from, to time.Time) ([]Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todos := []Todo{}
	for _, id := range s.todoOrder {
		t, ok := s.todos[id]
		if !ok || t.Status != StatusCompleted {
			continue
		}
		if userID != nil && t.UserID != *userID {
			continue
		}
		if inWindow(t.CreatedAt, from, to) {
			todos = append(todos, *t)
		}
	}
	return todos, nil
}

func (s *memStore) CountTodosByStatus(_ context.Context, userID primitive.ObjectID, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, t := range s.todos {
		if t.UserID == userID && t.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountTodosByStatusInWindow(_ context.Context, userID primitive.ObjectID, status string, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, t := range s.todos {
		if t.UserID == userID && t.Status == status && inWindow(t.CreatedAt, from, to) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) InsertHabit(_ context.Context, h *Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := copyHabit(h)
	s.habits[h.ID] = &cp
	s.habitOrder = append(s.habitOrder, h.ID)
	return nil
}

func (s *memStore) FindHabitByID(_ context.Context, id primitive.ObjectID) (*Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyHabit(h)
	return &cp, nil
}

func (s *memStore) ListHabitsByUser(_ context.Context, userID primitive.ObjectID) ([]Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	habits := []Habit{}
	for _, id := range s.habitOrder {
		if h, ok := s.habits[id]; ok && h.UserID == userID {
			habits = append(habits, copyHabit(h))
		}
	}
	return habits, nil
}

func (s *memStore) UpdateHabitFields(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[id]
	if !ok {
		return nil, ErrNotFound
	}
	for key, v := range fields {
		switch key {
		case "title":
			h.Title = v.(string)
		case "color":
			h.Color = v.(string)
		case "repeatMode":
			h.RepeatMode = v.(string)
		case "days":
			h.Days = append([]string{}, v.([]string)...)
		case "reminder":
			h.Reminder = v.(Reminder)
		case "completed":
			h.Completed = copyDayMap(v.(map[string]bool))
		case "skipped":
			h.Skipped = copyDayMap(v.(map[string]bool))
		}
	}
	cp := copyHabit(h)
	return &cp, nil
}

func (s *memStore) ReplaceHabitCompleted(_ context.Context, id primitive.ObjectID, completed map[string]bool) (*Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[id]
	if !ok {
		return nil, ErrNotFound
	}
	h.Completed = copyDayMap(completed)
	cp := copyHabit(h)
	return &cp, nil
}

func (s *memStore) MarkHabitDay(_ context.Context, id primitive.ObjectID, day, kind string) (*Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[id]
	if !ok {
		return nil, ErrNotFound
	}
	switch kind {
	case MarkCompleted:
		if h.Completed == nil {
			h.Completed = map[string]bool{}
		}
		h.Completed[day] = true
	case MarkSkipped:
		if h.Skipped == nil {
			h.Skipped = map[string]bool{}
		}
		h.Skipped[day] = true
	}
	cp := copyHabit(h)
	return &cp, nil
}

func (s *memStore) DeleteHabit(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.habits[id]; !ok {
		return ErrNotFound
	}
	delete(s.habits, id)
	return nil
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func copyHabit(h *Habit) Habit {
	cp := *h
	cp.Days = append([]string{}, h.Days...)
	cp.Completed = copyDayMap(h.Completed)
	cp.Skipped = copyDayMap(h.Skipped)
	return cp
}

func copyDayMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	cp := make(map[string]bool, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

package main

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel store errors. Handlers translate these into HTTP statuses.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Day-mark kinds for habits.
const (
	MarkCompleted = "completed"
	MarkSkipped   = "skipped"
)

// Store is the persistence boundary. mongoStore backs production; memStore
// backs tests and MONGO-less development runs. All time windows are half-open:
// [from, to).
type Store interface {
	InsertUser(ctx context.Context, u *User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)

	InsertTodo(ctx context.Context, t *Todo) error
	FindTodoByID(ctx context.Context, id primitive.ObjectID) (*Todo, error)
	ListTodosByUser(ctx context.Context, userID primitive.ObjectID) ([]Todo, error)
	CompleteTodo(ctx context.Context, id primitive.ObjectID) (*Todo, error)
	DeleteTodo(ctx context.Context, id primitive.ObjectID) error
	// ListCompletedTodosInWindow returns completed todos created inside the
	// window. A nil userID means all users (the shared calendar view).
	ListCompletedTodosInWindow(ctx context.Context, userID *primitive.ObjectID, from, to time.Time) ([]Todo, error)
	CountTodosByStatus(ctx context.Context, userID primitive.ObjectID, status string) (int64, error)
	CountTodosByStatusInWindow(ctx context.Context, userID primitive.ObjectID, status string, from, to time.Time) (int64, error)

	InsertHabit(ctx context.Context, h *Habit) error
	FindHabitByID(ctx context.Context, id primitive.ObjectID) (*Habit, error)
	ListHabitsByUser(ctx context.Context, userID primitive.ObjectID) ([]Habit, error)
	// UpdateHabitFields merges only the supplied fields onto the stored habit
	// and returns the updated record.
	UpdateHabitFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Habit, error)
	ReplaceHabitCompleted(ctx context.Context, id primitive.ObjectID, completed map[string]bool) (*Habit, error)
	// MarkHabitDay sets {day: true} in the habit's completed or skipped map,
	// leaving other days untouched. Re-marking a day is a no-op.
	MarkHabitDay(ctx context.Context, id primitive.ObjectID, day, kind string) (*Habit, error)
	DeleteHabit(ctx context.Context, id primitive.ObjectID) error
}

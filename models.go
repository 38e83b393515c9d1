package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Todo status values. Transitions are one-way: pending -> completed.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Todo represents a single actionable task owned by a user.
type Todo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Status    string             `bson:"status" json:"status"`
	Category  string             `bson:"category" json:"category"`
	Notes     string             `bson:"notes" json:"notes"`
	DueDate   *string            `bson:"dueDate" json:"dueDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
}

// Habit repeat modes.
const (
	RepeatDaily  = "daily"
	RepeatWeekly = "weekly"
)

// Reminder is a habit's optional time-of-day prompt. Enabled=false implies
// Time=nil.
type Reminder struct {
	Enabled bool    `bson:"enabled" json:"enabled"`
	Time    *string `bson:"time" json:"time"`
}

// Habit represents a recurring task tracked per weekday. Completed and Skipped
// are keyed by the canonical three-letter weekday abbreviation ("Mon".."Sun");
// a true value stands until the client clears or replaces the map.
type Habit struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title      string             `bson:"title" json:"title"`
	Color      string             `bson:"color" json:"color"`
	RepeatMode string             `bson:"repeatMode" json:"repeatMode"`
	Days       []string           `bson:"days" json:"days"`
	Reminder   Reminder           `bson:"reminder" json:"reminder"`
	Completed  map[string]bool    `bson:"completed" json:"completed"`
	Skipped    map[string]bool    `bson:"skipped" json:"skipped"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UserID     primitive.ObjectID `bson:"user" json:"user"`
}

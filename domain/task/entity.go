package task

import (
	"time"
)

// Status is the completion state of a task. Tasks move freely between the
// two states; there is no terminal state.
type Status string

// Task statuses.
const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Priority is the urgency level of a task.
type Priority string

// Task priorities.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is a known priority value.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a task record. Every task belongs to exactly one user,
// fixed at creation; UserID is never reassigned.
type Task struct {
	ID          string     `gorm:"primaryKey;type:text" json:"id"`
	Title       string     `gorm:"not null;type:text" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      Status     `gorm:"not null;default:PENDING;type:text" json:"status"`
	Priority    Priority   `gorm:"not null;default:MEDIUM;type:text" json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      string     `gorm:"index;not null;type:text" json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

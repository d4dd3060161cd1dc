package models

import "time"

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one account.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	// DueDate is a calendar date at UTC midnight, nil when unset.
	DueDate   *time.Time
	Status    TaskStatus
	CreatedAt time.Time
}

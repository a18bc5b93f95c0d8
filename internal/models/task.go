package models

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a single owned task record. ID and CreatedAt are assigned by the
// store at insert time; a task is visible only to its owner.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskFields carries the user-editable fields of a task. Updates overwrite
// all of them in place - last write wins, no merge.
type TaskFields struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      Status
}

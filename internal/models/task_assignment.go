package models

import "time"

// AssignmentStatus is the per-assignee progress state. The expected flow
// is pending -> in_progress -> completed, stepped one state at a time by
// the dashboard; the service only guarantees the value is one of these
// three.
type AssignmentStatus string

const (
	StatusPending    AssignmentStatus = "pending"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
)

// Valid reports whether the status is one of the recognized values.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskAssignment pairs one task with one assignee. At most one row exists
// per (task, user); re-assigning a task replaces its whole set.
type TaskAssignment struct {
	TaskID    string           `gorm:"type:varchar(64);primaryKey" json:"task_id"`
	UserID    string           `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	Status    AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	UpdatedAt time.Time        `json:"updated_at"`
}

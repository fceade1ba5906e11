package models

import "time"

// TaskPriority orders tasks for display; it carries no scheduling weight.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether the priority is one of the recognized values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID           string       `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title        string       `gorm:"type:varchar(255);not null" json:"title"`
	Details      string       `gorm:"type:text" json:"details"`
	DueAt        time.Time    `gorm:"not null" json:"due_at"`
	Priority     TaskPriority `gorm:"type:varchar(20);not null;default:'normal'" json:"priority"`
	DepartmentID *string      `gorm:"type:varchar(64)" json:"department_id"`
	CreatedBy    string       `gorm:"type:varchar(64);not null" json:"created_by"`
	CreatedAt    time.Time    `json:"created_at"`
}

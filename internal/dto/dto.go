package dto

import (
	"time"

	"github.com/studentlife/taskboard/internal/models"
)

// UserDTO represents the signed-in account in API responses
type UserDTO struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	Role         models.Role `json:"role"`
	DepartmentID *string     `json:"department_id"`
}

// ProfileDTO represents a displayable member in API responses
type ProfileDTO struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	Role         models.Role `json:"role"`
	DepartmentID *string     `json:"department_id"`
	AvatarURL    *string     `json:"avatar_url,omitempty"`
}

// DepartmentDTO represents a department in API responses
type DepartmentDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssignmentDTO is an assignment row expanded with its assignee profile.
// User is null when the referenced profile no longer exists.
type AssignmentDTO struct {
	TaskID    string                  `json:"task_id"`
	UserID    string                  `json:"user_id"`
	Status    models.AssignmentStatus `json:"status"`
	UpdatedAt time.Time               `json:"updated_at"`
	User      *ProfileDTO             `json:"user"`
}

// TaskDTO is a task expanded with its creator, department and assignment
// list. Dangling references expand to null rather than failing.
type TaskDTO struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Details    string              `json:"details"`
	DueAt      time.Time           `json:"due_at"`
	Priority   models.TaskPriority `json:"priority"`
	CreatedAt  time.Time           `json:"created_at"`
	CreatedBy  *ProfileDTO         `json:"created_by"`
	Department *DepartmentDTO      `json:"department"`
	Assignees  []AssignmentDTO     `json:"task_assignees"`
}

// MyTaskDTO is one entry of a user's personal task list: the assignment's
// own status paired with the expanded task.
type MyTaskDTO struct {
	Status    models.AssignmentStatus `json:"status"`
	UpdatedAt time.Time               `json:"updated_at"`
	Task      *TaskDTO                `json:"task"`
}

// TaskStats aggregates assignment rows by status. Each assignment
// contributes one counted row; a task with no assignments contributes a
// single pending row, so Total always equals Pending+InProgress+Completed.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}

// ConversationSummaryDTO is one admin-inbox row: a counterparty and the
// most recent message exchanged with them.
type ConversationSummaryDTO struct {
	UserID      string     `json:"user_id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	LastMessage string     `json:"last_message"`
	LastAt      *time.Time `json:"last_at"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
	}
}

// ToProfileDTO converts a Profile model to ProfileDTO
func ToProfileDTO(profile models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:           profile.ID,
		Email:        profile.Email,
		FullName:     profile.FullName,
		Role:         profile.Role,
		DepartmentID: profile.DepartmentID,
		AvatarURL:    profile.AvatarURL,
	}
}

// ToDepartmentDTO converts a Department model to DepartmentDTO
func ToDepartmentDTO(dept models.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:   dept.ID,
		Name: dept.Name,
	}
}

package repository

import (
	"errors"

	"github.com/studentlife/taskboard/internal/models"
)

// ErrNotFound is returned by every repository when a lookup misses,
// regardless of backend.
var ErrNotFound = errors.New("record not found")

// UserRepository defines data access for users and their profile shadows.
// A user and its profile share an ID and are created and deleted together.
type UserRepository interface {
	// CreateWithProfile creates the paired user and profile records.
	CreateWithProfile(user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by exact email as stored
	FindByEmail(email string) (*models.User, error)

	// FindFirstAdmin returns the first user whose role is admin
	FindFirstAdmin() (*models.User, error)

	// EmailTaken reports whether any user other than excludeID owns the
	// email, compared exactly as stored.
	EmailTaken(email, excludeID string) (bool, error)

	// EmailTakenFold reports whether any user owns the email, trimmed and
	// case-insensitive, checked against the freshest available data.
	EmailTakenFold(email string) (bool, error)

	// Update saves a modified user record
	Update(user *models.User) error

	// DeleteWithProfile removes the user, its profile, and the user's
	// task assignments.
	DeleteWithProfile(id string) error

	// FindProfile finds a profile by user ID
	FindProfile(id string) (*models.Profile, error)

	// ListProfiles returns every profile
	ListProfiles() ([]models.Profile, error)

	// UpdateProfile saves a modified profile record
	UpdateProfile(profile *models.Profile) error
}

// DepartmentRepository defines data access for departments.
type DepartmentRepository interface {
	// List returns every department
	List() ([]models.Department, error)

	// FindByID finds a department by ID
	FindByID(id string) (*models.Department, error)

	// Create creates a new department
	Create(dept *models.Department) error
}

// TaskRepository defines data access for tasks and their assignments.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// List returns every task
	List() ([]models.Task, error)

	// Update saves a modified task record
	Update(task *models.Task) error

	// Delete removes the task and all its assignments. Deleting an absent
	// ID is a no-op.
	Delete(id string) error

	// AssignmentsForTask returns the task's assignment rows
	AssignmentsForTask(taskID string) ([]models.TaskAssignment, error)

	// AssignmentsForUser returns the user's assignment rows
	AssignmentsForUser(userID string) ([]models.TaskAssignment, error)

	// FindAssignment finds the row for one (task, user) pair
	FindAssignment(taskID, userID string) (*models.TaskAssignment, error)

	// ReplaceAssignments atomically swaps the task's entire assignment set
	ReplaceAssignments(taskID string, assignments []models.TaskAssignment) error

	// UpdateAssignment saves a modified assignment row
	UpdateAssignment(assignment *models.TaskAssignment) error
}

// MessageRepository defines data access for the append-only message log.
type MessageRepository interface {
	// Append stores a new message
	Append(msg *models.Message) error

	// Between returns all messages exchanged between the two users, in
	// either direction, oldest first.
	Between(userA, userB string) ([]models.Message, error)

	// List returns every message
	List() ([]models.Message, error)
}

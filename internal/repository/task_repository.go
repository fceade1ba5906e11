package repository

import (
	"gorm.io/gorm"

	"github.com/studentlife/taskboard/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new TaskRepository over a relational database
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// List returns every task
func (r *GormTaskRepository) List() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves a modified task record
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes the task and its assignments in one transaction
func (r *GormTaskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
}

// AssignmentsForTask returns the task's assignment rows
func (r *GormTaskRepository) AssignmentsForTask(taskID string) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	if err := r.db.Where("task_id = ?", taskID).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// AssignmentsForUser returns the user's assignment rows
func (r *GormTaskRepository) AssignmentsForUser(userID string) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	if err := r.db.Where("user_id = ?", userID).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindAssignment finds the row for one (task, user) pair
func (r *GormTaskRepository) FindAssignment(taskID, userID string) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		First(&assignment).Error; err != nil {
		return nil, translate(err)
	}
	return &assignment, nil
}

// ReplaceAssignments swaps the task's entire assignment set in one transaction
func (r *GormTaskRepository) ReplaceAssignments(taskID string, assignments []models.TaskAssignment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		return tx.Create(&assignments).Error
	})
}

// UpdateAssignment saves a modified assignment row
func (r *GormTaskRepository) UpdateAssignment(assignment *models.TaskAssignment) error {
	return r.db.Save(assignment).Error
}

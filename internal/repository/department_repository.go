package repository

import (
	"gorm.io/gorm"

	"github.com/studentlife/taskboard/internal/models"
)

// GormDepartmentRepository is a GORM implementation of DepartmentRepository
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new DepartmentRepository over a relational database
func NewGormDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// List returns every department
func (r *GormDepartmentRepository) List() ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(id string) (*models.Department, error) {
	var dept models.Department
	if err := r.db.First(&dept, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &dept, nil
}

// Create creates a new department
func (r *GormDepartmentRepository) Create(dept *models.Department) error {
	return r.db.Create(dept).Error
}

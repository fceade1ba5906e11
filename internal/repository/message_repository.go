package repository

import (
	"gorm.io/gorm"

	"github.com/studentlife/taskboard/internal/models"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new MessageRepository over a relational database
func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Append stores a new message
func (r *GormMessageRepository) Append(msg *models.Message) error {
	return r.db.Create(msg).Error
}

// Between returns the two users' thread oldest first
func (r *GormMessageRepository) Between(userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// List returns every message
func (r *GormMessageRepository) List() ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

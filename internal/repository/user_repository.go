package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/studentlife/taskboard/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new UserRepository over a relational database
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithProfile creates the paired user and profile atomically.
func (r *GormUserRepository) CreateWithProfile(user *models.User, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(profile).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByEmail finds a user by exact email as stored
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindFirstAdmin returns the first user whose role is admin
func (r *GormUserRepository) FindFirstAdmin() (*models.User, error) {
	var user models.User
	if err := r.db.Where("role = ?", models.RoleAdmin).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// EmailTaken reports whether another user owns the email, exactly as stored
func (r *GormUserRepository) EmailTaken(email, excludeID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

// EmailTakenFold reports whether any user owns the email, case-insensitive
func (r *GormUserRepository) EmailTakenFold(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// Update saves a modified user record
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteWithProfile removes the user, profile and assignments in one transaction
func (r *GormUserRepository) DeleteWithProfile(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Profile{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}

// FindProfile finds a profile by user ID
func (r *GormUserRepository) FindProfile(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// ListProfiles returns every profile
func (r *GormUserRepository) ListProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateProfile saves a modified profile record
func (r *GormUserRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// translate maps GORM's not-found error onto the repository sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

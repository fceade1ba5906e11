package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/store"
)

// EnsureSeed gives a fresh relational backend the same starting point the
// local slot gets: one admin account and one default department. Existing
// data is left alone.
func EnsureSeed(db *gorm.DB, seed store.Seed) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := models.User{
		ID:           store.SeedAdminID,
		Email:        seed.AdminEmail,
		PasswordHash: seed.AdminPasswordHash,
		FullName:     seed.AdminFullName,
		Role:         models.RoleAdmin,
	}
	profile := models.Profile{
		ID:       admin.ID,
		Email:    admin.Email,
		FullName: admin.FullName,
		Role:     admin.Role,
	}
	dept := models.Department{ID: store.SeedDepartmentID, Name: seed.DepartmentName}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&dept).Error
	})
}

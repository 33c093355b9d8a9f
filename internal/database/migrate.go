package database

import (
	"mediavault/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the two metadata relations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Folder{},
		&models.Media{},
	)
}

package database

import (
	"fmt"

	"github.com/pateljenish9878/Task-Management/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
// The unique indexes on username and email back up the checks done in
// the credential service.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.OTP{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

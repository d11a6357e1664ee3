package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/turnosapp/backend/models"
)

// Migrate applies the schema for every persisted entity.
func Migrate(handle *gorm.DB) error {
	err := handle.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.ScheduleTemplate{},
		&models.StandingBlock{},
		&models.AvailabilitySlot{},
		&models.Appointment{},
	)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a bookable salon service.
type Service struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string    `json:"nombre" gorm:"column:nombre;not null"`
	DurationMinutes int       `json:"duracion_minutos" gorm:"column:duracion_minutos;not null"`
	Price           float64   `json:"precio" gorm:"column:precio;not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "servicios" }

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

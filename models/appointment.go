package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pendiente"
	StatusConfirmed AppointmentStatus = "confirmado"
	StatusCancelled AppointmentStatus = "cancelado"
)

// Appointment is a booked turno. It shares (empleado_id, fecha, hora) with
// one AvailabilitySlot but the two rows are linked procedurally, not by a
// foreign key: a confirmed appointment is the only legitimate holder of an
// unavailable slot. The only status transition is confirmado -> cancelado;
// rescheduling is create-new then cancel-old.
type Appointment struct {
	ID         uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID         `json:"usuario_id" gorm:"column:usuario_id;type:uuid;index;not null"`
	User       User              `json:"usuario,omitempty" gorm:"foreignKey:UserID"`
	EmployeeID uuid.UUID         `json:"empleado_id" gorm:"column:empleado_id;type:uuid;index;not null"`
	Employee   Employee          `json:"empleado,omitempty" gorm:"foreignKey:EmployeeID"`
	ServiceID  uuid.UUID         `json:"servicio_id" gorm:"column:servicio_id;type:uuid;not null"`
	Service    Service           `json:"servicio,omitempty" gorm:"foreignKey:ServiceID"`
	Date       Date              `json:"fecha" gorm:"column:fecha;type:date;not null"`
	Time       string            `json:"hora" gorm:"column:hora;not null"`
	Status     AppointmentStatus `json:"estado" gorm:"column:estado;not null"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (Appointment) TableName() string { return "turnos" }

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

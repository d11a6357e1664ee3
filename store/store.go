// Package store is the data-access contract the scheduling and booking
// engines depend on, together with its Postgres (GORM) and in-memory
// implementations. Engines never touch *gorm.DB directly; they receive a
// Store and, for multi-step operations, run every step against the
// transactional Store handed to the WithTx callback.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/turnosapp/backend/models"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("store: record not found")

type Store interface {
	// WithTx runs fn inside one transaction. The Store passed to fn is bound
	// to that transaction; any error rolls the whole transaction back.
	WithTx(ctx context.Context, fn func(Store) error) error

	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error)
	ServiceExists(ctx context.Context, id uuid.UUID) (bool, error)

	// Schedule templates.
	ListTemplates(ctx context.Context, employeeID *uuid.UUID, day *models.Weekday) ([]models.ScheduleTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*models.ScheduleTemplate, error)
	CreateTemplate(ctx context.Context, t *models.ScheduleTemplate) error
	UpdateTemplate(ctx context.Context, t *models.ScheduleTemplate) (int64, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) (int64, error)
	// TemplateOverlaps reports whether any template for the employee and
	// weekday intersects [start, end), excluding excludeID when given.
	TemplateOverlaps(ctx context.Context, employeeID uuid.UUID, day models.Weekday, start, end string, excludeID *uuid.UUID) (bool, error)

	// Availability slots.
	CreateSlots(ctx context.Context, slots []models.AvailabilitySlot) (int64, error)
	ApplyStandingBlocks(ctx context.Context) (int64, error)
	SlotsByEmployeeDate(ctx context.Context, employeeID uuid.UUID, date models.Date) ([]models.AvailabilitySlot, error)
	UnavailableSlotsInRange(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string) ([]models.AvailabilitySlot, error)
	BlockSlotsInRange(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string) (int64, error)
	FreeSlotsInRange(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string, exceptTimes []string) (int64, error)
	// SlotAvailable reports whether the slot exists and is free. Inside a
	// transaction the row is read locked so two concurrent bookings of the
	// same slot serialize on it.
	SlotAvailable(ctx context.Context, employeeID uuid.UUID, date models.Date, clock string) (bool, error)
	SetSlotAvailable(ctx context.Context, employeeID uuid.UUID, date models.Date, clock string, available bool) (int64, error)
	AvailableSlots(ctx context.Context, date models.Date, employeeID *uuid.UUID) ([]models.AvailabilitySlot, error)

	// Standing blocks.
	CreateStandingBlock(ctx context.Context, b *models.StandingBlock) error
	StandingBlocksOverlapping(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string) ([]models.StandingBlock, error)
	DeleteStandingBlock(ctx context.Context, id uuid.UUID) (int64, error)

	// Appointments.
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	GetConfirmedAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ConfirmedAppointmentAt(ctx context.Context, employeeID uuid.UUID, date models.Date, clock string) (bool, error)
	ConfirmedTimes(ctx context.Context, employeeID uuid.UUID, date models.Date) ([]string, error)
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) (int64, error)
	AppointmentsByUser(ctx context.Context, userID uuid.UUID, from models.Date) ([]models.Appointment, error)
	ConfirmedByDate(ctx context.Context, date models.Date) ([]models.Appointment, error)
}

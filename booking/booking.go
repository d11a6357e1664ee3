// Package booking creates, cancels and reschedules appointments against the
// availability ledger under at-most-one-holder semantics. Every public
// operation runs in a single transaction; the inner createTx/cancelTx steps
// share that transaction so a reschedule never commits halfway.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/scheduling"
	"github.com/turnosapp/backend/store"
)

type Engine struct {
	Store store.Store
	Now   func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) today() models.Date {
	return models.DateOf(e.now())
}

type CreateRequest struct {
	UserID     uuid.UUID   `json:"usuario_id"`
	EmployeeID uuid.UUID   `json:"empleado_id"`
	ServiceID  uuid.UUID   `json:"servicio_id"`
	Date       models.Date `json:"fecha"`
	Time       string      `json:"hora"`
}

// Create books a slot: it verifies the referenced entities, checks the slot
// under a row lock, inserts the confirmed appointment and consumes the slot,
// all or nothing. Of two concurrent attempts on one slot exactly one wins;
// the loser gets a validation error.
func (e *Engine) Create(ctx context.Context, req CreateRequest) (*models.Appointment, error) {
	var created *models.Appointment
	err := e.Store.WithTx(ctx, func(s store.Store) error {
		appointment, err := e.createTx(ctx, s, req)
		if err != nil {
			return err
		}
		created = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (e *Engine) createTx(ctx context.Context, s store.Store, req CreateRequest) (*models.Appointment, error) {
	if req.Date.Before(e.today()) {
		return nil, apperr.Validation("La fecha del turno no puede ser menor a la actual")
	}
	clock, err := scheduling.ParseClock(req.Time)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}

	if ok, err := s.UserExists(ctx, req.UserID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperr.NotFound("Usuario no encontrado")
	}
	if ok, err := s.EmployeeExists(ctx, req.EmployeeID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperr.NotFound("Empleado no encontrado")
	}
	if ok, err := s.ServiceExists(ctx, req.ServiceID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperr.NotFound("Servicio no encontrado")
	}

	// Check-then-act on the slot; the store locks the row so a concurrent
	// create for the same slot waits here and then sees disponible = false.
	available, err := s.SlotAvailable(ctx, req.EmployeeID, req.Date, clock)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperr.Validation("El horario seleccionado no está disponible")
	}

	appointment := &models.Appointment{
		UserID:     req.UserID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       clock,
		Status:     models.StatusConfirmed,
	}
	if err := s.CreateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	rows, err := s.SetSlotAvailable(ctx, req.EmployeeID, req.Date, clock, false)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperr.Operation("No se pudo reservar el horario seleccionado")
	}
	return appointment, nil
}

// Cancel marks a confirmed appointment cancelled and frees its slot.
// Cancelling twice is a validation error.
func (e *Engine) Cancel(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var cancelled *models.Appointment
	err := e.Store.WithTx(ctx, func(s store.Store) error {
		appointment, err := e.cancelTx(ctx, s, id)
		if err != nil {
			return err
		}
		cancelled = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (e *Engine) cancelTx(ctx context.Context, s store.Store, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.GetAppointment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("Turno no encontrado")
	}
	if err != nil {
		return nil, err
	}
	if appointment.Status == models.StatusCancelled {
		return nil, apperr.Validation("El turno ya fue cancelado")
	}

	rows, err := s.UpdateAppointmentStatus(ctx, id, models.StatusCancelled)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperr.Operation("Error al cancelar el turno")
	}

	if _, err := s.SetSlotAvailable(ctx, appointment.EmployeeID, appointment.Date, appointment.Time, true); err != nil {
		return nil, err
	}
	appointment.Status = models.StatusCancelled
	return appointment, nil
}

// Modify reschedules: it books the new slot first and only then cancels the
// old appointment, inside one transaction. If the new slot cannot be taken
// the old appointment stays confirmed and untouched.
func (e *Engine) Modify(ctx context.Context, id uuid.UUID, req CreateRequest) (*models.Appointment, error) {
	var replacement *models.Appointment
	err := e.Store.WithTx(ctx, func(s store.Store) error {
		if _, err := s.GetConfirmedAppointment(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.NotFound("Turno no encontrado")
			}
			return err
		}

		appointment, err := e.createTx(ctx, s, req)
		if err != nil {
			return err
		}
		if _, err := e.cancelTx(ctx, s, id); err != nil {
			return err
		}
		replacement = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return replacement, nil
}

func (e *Engine) Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := e.Store.GetAppointment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("Turno no encontrado")
	}
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// ListByUser returns the user's upcoming, non-cancelled appointments.
func (e *Engine) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	ok, err := e.Store.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Usuario no encontrado")
	}
	return e.Store.AppointmentsByUser(ctx, userID, e.today())
}

// Available lists the free slots for a date, optionally for one employee.
func (e *Engine) Available(ctx context.Context, date models.Date, employeeID *uuid.UUID) ([]models.AvailabilitySlot, error) {
	if date.Before(e.today()) {
		return nil, apperr.Validation("No se pueden consultar fechas pasadas")
	}
	slots, err := e.Store.AvailableSlots(ctx, date, employeeID)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		if employeeID != nil {
			return nil, apperr.NotFound("No se encontraron turnos disponibles para el %s con este empleado", date)
		}
		return nil, apperr.NotFound("No se encontraron turnos disponibles para el %s", date)
	}
	return slots, nil
}

// ConfirmedByDate returns the day's confirmed appointments with user,
// service and employee detail, ordered by time.
func (e *Engine) ConfirmedByDate(ctx context.Context, date models.Date) ([]models.Appointment, error) {
	if date.Before(e.today()) {
		return nil, apperr.Validation("No se pueden consultar fechas pasadas")
	}
	appointments, err := e.Store.ConfirmedByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, apperr.NotFound("No se encontraron turnos agendados para el %s", date)
	}
	return appointments, nil
}

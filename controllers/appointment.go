package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/booking"
	"github.com/turnosapp/backend/cache"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/utils"
)

// Appointments exposes the booking engine over HTTP. Cache, Mailer and DB are
// optional: without them booking still works, just without the listing cache
// and the confirmation mail.
type Appointments struct {
	Engine *booking.Engine
	Cache  *cache.Availability
	Mailer *utils.Mailer
	DB     *gorm.DB
}

// Create books a turno and answers 201 with the confirmed appointment.
func (a *Appointments) Create(c *fiber.Ctx) error {
	var req booking.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	appointment, err := a.Engine.Create(c.Context(), req)
	if err != nil {
		return err
	}
	a.Cache.Invalidate(c.Context())
	go a.sendConfirmation(appointment.ID)
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// sendConfirmation loads the turno with its associations and mails the user.
// Failures are logged only; the booking already committed.
func (a *Appointments) sendConfirmation(id uuid.UUID) {
	if a.Mailer == nil || a.DB == nil {
		return
	}
	var appointment models.Appointment
	if err := a.DB.Preload("User").Preload("Service").Preload("Employee").
		First(&appointment, "id = ?", id).Error; err != nil {
		log.Printf("confirmación del turno %s: %v", id, err)
		return
	}
	if err := a.Mailer.SendConfirmation(&appointment); err != nil {
		log.Printf("confirmación del turno %s: %v", id, err)
	}
}

// Available lists the free slots for ?fecha= and an optional ?empleado_id=.
func (a *Appointments) Available(c *fiber.Ctx) error {
	date, err := models.ParseDate(c.Query("fecha"))
	if err != nil {
		return apperr.Validation("La fecha debe tener el formato AAAA-MM-DD")
	}
	var employeeID *uuid.UUID
	if raw := c.Query("empleado_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperr.Validation("El id de empleado no es válido")
		}
		employeeID = &id
	}

	if slots, ok := a.Cache.GetSlots(c.Context(), date, employeeID); ok {
		return c.JSON(slots)
	}
	slots, err := a.Engine.Available(c.Context(), date, employeeID)
	if err != nil {
		return err
	}
	a.Cache.SetSlots(c.Context(), date, employeeID, slots)
	return c.JSON(slots)
}

func (a *Appointments) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	appointment, err := a.Engine.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(appointment)
}

// Cancel marks the turno cancelled and frees its slot.
func (a *Appointments) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	appointment, err := a.Engine.Cancel(c.Context(), id)
	if err != nil {
		return err
	}
	a.Cache.Invalidate(c.Context())
	return c.JSON(fiber.Map{
		"detail": "El turno fue cancelado correctamente",
		"turno":  appointment,
	})
}

// Modify reschedules the turno to the slot in the request body.
func (a *Appointments) Modify(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req booking.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	appointment, err := a.Engine.Modify(c.Context(), id, req)
	if err != nil {
		return err
	}
	a.Cache.Invalidate(c.Context())
	return c.JSON(appointment)
}

// ByUser lists a user's upcoming turnos.
func (a *Appointments) ByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "user_id")
	if err != nil {
		return err
	}
	appointments, err := a.Engine.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(appointments)
}

// ConfirmedByDate lists the confirmed turnos of /agendados/:fecha with user,
// service and employee detail.
func (a *Appointments) ConfirmedByDate(c *fiber.Ctx) error {
	date, err := models.ParseDate(c.Params("fecha"))
	if err != nil {
		return apperr.Validation("La fecha debe tener el formato AAAA-MM-DD")
	}
	appointments, err := a.Engine.ConfirmedByDate(c.Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(appointments)
}

package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/cache"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/scheduling"
)

// Schedules exposes slot generation, template programming and blocking.
type Schedules struct {
	Generator *scheduling.Generator
	Templates *scheduling.Templates
	Blocks    *scheduling.Blocks
	Cache     *cache.Availability
}

// Generate materializes slots from the weekly programming.
func (s *Schedules) Generate(c *fiber.Ctx) error {
	result, err := s.Generator.Generate(c.Context())
	if err != nil {
		return err
	}
	s.Cache.Invalidate(c.Context())
	return c.JSON(fiber.Map{
		"detail":              "Horarios generados correctamente",
		"horarios_generados":  result.SlotsCreated,
		"horarios_bloqueados": result.SlotsBlocked,
	})
}

func (s *Schedules) CreateTemplate(c *fiber.Ctx) error {
	var in scheduling.TemplateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	template, err := s.Templates.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// ListTemplates filters by optional ?empleado_id= and ?dia=.
func (s *Schedules) ListTemplates(c *fiber.Ctx) error {
	var employeeID *uuid.UUID
	if raw := c.Query("empleado_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperr.Validation("El id de empleado no es válido")
		}
		employeeID = &id
	}
	var day *models.Weekday
	if raw := c.Query("dia"); raw != "" {
		d := models.Weekday(raw)
		day = &d
	}
	templates, err := s.Templates.List(c.Context(), employeeID, day)
	if err != nil {
		return err
	}
	return c.JSON(templates)
}

func (s *Schedules) UpdateTemplate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in scheduling.TemplateUpdate
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	template, err := s.Templates.Update(c.Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(template)
}

func (s *Schedules) DeleteTemplate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := s.Templates.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"detail": "Programación de horario eliminada correctamente"})
}

type blockBody struct {
	EmployeeID uuid.UUID   `json:"empleado_id"`
	Date       models.Date `json:"fecha"`
	StartTime  string      `json:"hora_inicio"`
	EndTime    string      `json:"hora_fin"`
}

// request fills the full-day defaults when the hours are omitted.
func (b blockBody) request() scheduling.BlockRequest {
	if b.StartTime == "" {
		b.StartTime = "00:00"
	}
	if b.EndTime == "" {
		b.EndTime = "23:59"
	}
	return scheduling.BlockRequest{
		EmployeeID: b.EmployeeID,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
	}
}

// BlockHours marks a range unavailable, or records the intent when the date
// has no generated slots yet.
func (s *Schedules) BlockHours(c *fiber.Ctx) error {
	var body blockBody
	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	result, err := s.Blocks.Block(c.Context(), body.request())
	if err != nil {
		return err
	}
	s.Cache.Invalidate(c.Context())
	if result.Standing {
		return c.JSON(fiber.Map{
			"detail": "El bloqueo fue registrado y se aplicará cuando se generen los horarios",
		})
	}
	return c.JSON(fiber.Map{
		"detail": fmt.Sprintf("Se bloquearon %d horarios correctamente", result.SlotsBlocked),
	})
}

// UnblockHours reverses a block. Slots held by confirmed turnos stay blocked
// and are enumerated in the response.
func (s *Schedules) UnblockHours(c *fiber.Ctx) error {
	var body blockBody
	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	result, err := s.Blocks.Unblock(c.Context(), body.request())
	if err != nil {
		return err
	}
	s.Cache.Invalidate(c.Context())

	switch {
	case result.NothingToUnblock:
		return c.JSON(fiber.Map{"detail": "No hay horarios bloqueados en el rango seleccionado"})
	case result.StandingRemoved > 0:
		return c.JSON(fiber.Map{
			"detail": fmt.Sprintf("Se eliminaron %d bloqueos pendientes de aplicar", result.StandingRemoved),
		})
	case len(result.StillBlocked) > 0:
		return c.JSON(fiber.Map{
			"detail": fmt.Sprintf(
				"Se desbloquearon %d horarios. Los siguientes horarios permanecen bloqueados por tener turnos confirmados: %s",
				result.SlotsFreed, strings.Join(result.StillBlocked, ", ")),
		})
	default:
		return c.JSON(fiber.Map{
			"detail": fmt.Sprintf("Se desbloquearon %d horarios correctamente", result.SlotsFreed),
		})
	}
}

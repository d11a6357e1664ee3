package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/store"
)

// Templates manages the weekly schedule programming the generator reads.
type Templates struct {
	Store store.Store
}

type TemplateInput struct {
	EmployeeID      uuid.UUID      `json:"empleado_id"`
	Weekday         models.Weekday `json:"dia"`
	StartTime       string         `json:"hora_inicio"`
	EndTime         string         `json:"hora_fin"`
	IntervalMinutes int            `json:"intervalo"`
}

type TemplateUpdate struct {
	StartTime       *string `json:"hora_inicio"`
	EndTime         *string `json:"hora_fin"`
	IntervalMinutes *int    `json:"intervalo"`
}

func validateTemplateRange(start, end string, interval int) (string, string, error) {
	from, err := ParseClock(start)
	if err != nil {
		return "", "", apperr.Validation("%v", err)
	}
	to, err := ParseClock(end)
	if err != nil {
		return "", "", apperr.Validation("%v", err)
	}
	if from >= to {
		return "", "", apperr.Validation("La hora de inicio debe ser menor a la hora de fin")
	}
	if interval <= 0 {
		return "", "", apperr.Validation("El intervalo debe ser mayor a 0")
	}
	return from, to, nil
}

func (t *Templates) Create(ctx context.Context, in TemplateInput) (*models.ScheduleTemplate, error) {
	if !in.Weekday.Valid() {
		return nil, apperr.Validation("El día debe ser uno de los siguientes: L, M, X, J, V, S, D")
	}
	start, end, err := validateTemplateRange(in.StartTime, in.EndTime, in.IntervalMinutes)
	if err != nil {
		return nil, err
	}

	template := &models.ScheduleTemplate{
		EmployeeID:      in.EmployeeID,
		Weekday:         in.Weekday,
		StartTime:       start,
		EndTime:         end,
		IntervalMinutes: in.IntervalMinutes,
	}
	err = t.Store.WithTx(ctx, func(s store.Store) error {
		exists, err := s.EmployeeExists(ctx, in.EmployeeID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("No se encontró al empleado")
		}
		overlaps, err := s.TemplateOverlaps(ctx, in.EmployeeID, in.Weekday, start, end, nil)
		if err != nil {
			return err
		}
		if overlaps {
			return apperr.Validation("Ya existe una programación en ese horario, por favor elija otro horario o ajuste la programación existente")
		}
		return s.CreateTemplate(ctx, template)
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (t *Templates) List(ctx context.Context, employeeID *uuid.UUID, day *models.Weekday) ([]models.ScheduleTemplate, error) {
	if employeeID != nil {
		exists, err := t.Store.EmployeeExists(ctx, *employeeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("No se encontró al empleado")
		}
	}
	if day != nil && !day.Valid() {
		return nil, apperr.Validation("El día debe ser uno de los siguientes: L, M, X, J, V, S, D")
	}
	return t.Store.ListTemplates(ctx, employeeID, day)
}

func (t *Templates) Update(ctx context.Context, id uuid.UUID, in TemplateUpdate) (*models.ScheduleTemplate, error) {
	if in.StartTime == nil && in.EndTime == nil && in.IntervalMinutes == nil {
		return nil, apperr.Validation("Debe ingresar al menos un campo para actualizar")
	}

	var updated *models.ScheduleTemplate
	err := t.Store.WithTx(ctx, func(s store.Store) error {
		template, err := s.GetTemplate(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("No se encontró la programación de horarios")
		}
		if err != nil {
			return err
		}

		if in.StartTime != nil {
			template.StartTime = *in.StartTime
		}
		if in.EndTime != nil {
			template.EndTime = *in.EndTime
		}
		if in.IntervalMinutes != nil {
			template.IntervalMinutes = *in.IntervalMinutes
		}

		start, end, err := validateTemplateRange(template.StartTime, template.EndTime, template.IntervalMinutes)
		if err != nil {
			return err
		}
		template.StartTime = start
		template.EndTime = end

		overlaps, err := s.TemplateOverlaps(ctx, template.EmployeeID, template.Weekday, start, end, &id)
		if err != nil {
			return err
		}
		if overlaps {
			return apperr.Validation("Ya existe una programación en ese horario, por favor elija otro horario o ajuste la programación existente")
		}

		rows, err := s.UpdateTemplate(ctx, template)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.Operation("Error al actualizar la programación de horarios")
		}
		updated = template
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (t *Templates) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := t.Store.DeleteTemplate(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("Programación de horario no encontrada")
	}
	return nil
}

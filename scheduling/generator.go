package scheduling

import (
	"context"
	"time"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/store"
)

// Generator expands every schedule template into concrete availability slots
// on its resolved target date, then applies standing blocks in one bulk
// update. The whole run executes in a single transaction and is idempotent:
// slots that already exist are skipped by the conflict-ignoring insert, so it
// is safe to trigger by hand or from cron at any time.
type Generator struct {
	Store    store.Store
	LeadDays int
	Now      func() time.Time
}

type GenerationResult struct {
	SlotsCreated int64 `json:"horarios_generados"`
	SlotsBlocked int64 `json:"horarios_bloqueados"`
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Generator) leadDays() int {
	if g.LeadDays > 0 {
		return g.LeadDays
	}
	return DefaultLeadDays
}

func (g *Generator) Generate(ctx context.Context) (*GenerationResult, error) {
	today := g.now()
	result := &GenerationResult{}

	err := g.Store.WithTx(ctx, func(s store.Store) error {
		templates, err := s.ListTemplates(ctx, nil, nil)
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			return apperr.NotFound("No se encontró la programación de horarios")
		}

		var slots []models.AvailabilitySlot
		for _, t := range templates {
			date := NextTargetDate(today, t.Weekday, g.leadDays())
			steps, err := TimeSteps(t.StartTime, t.EndTime, t.IntervalMinutes)
			if err != nil {
				return apperr.Operation("La programación %s tiene un rango horario inválido", t.ID)
			}
			for _, clock := range steps {
				slots = append(slots, models.AvailabilitySlot{
					EmployeeID: t.EmployeeID,
					Date:       date,
					Time:       clock,
					Available:  true,
				})
			}
		}

		created, err := s.CreateSlots(ctx, slots)
		if err != nil {
			return err
		}
		result.SlotsCreated = created

		blocked, err := s.ApplyStandingBlocks(ctx)
		if err != nil {
			return err
		}
		result.SlotsBlocked = blocked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

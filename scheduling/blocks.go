package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/store"
)

// Blocks marks date/time ranges unavailable for an employee and reverses
// that. A confirmed appointment always outranks a block: blocking refuses the
// whole range when one sits inside it, and unblocking skips the slots that
// hold one.
type Blocks struct {
	Store store.Store
	Now   func() time.Time
}

func (b *Blocks) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

type BlockRequest struct {
	EmployeeID uuid.UUID
	Date       models.Date
	StartTime  string
	EndTime    string
}

type BlockResult struct {
	// Standing is set when no slots exist yet for the date and the block was
	// recorded for the generator to apply later.
	Standing     bool
	SlotsBlocked int64
}

type UnblockResult struct {
	StandingRemoved  int
	SlotsFreed       int64
	StillBlocked     []string
	NothingToUnblock bool
}

func (b *Blocks) validate(ctx context.Context, req *BlockRequest) error {
	exists, err := b.Store.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("No se encontró el empleado con id %s", req.EmployeeID)
	}

	start, err := ParseClock(req.StartTime)
	if err != nil {
		return apperr.Validation("%v", err)
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		return apperr.Validation("%v", err)
	}
	if start >= end {
		return apperr.Validation("La hora de inicio debe ser menor a la hora de fin")
	}
	req.StartTime = start
	req.EndTime = end
	return nil
}

func (b *Blocks) Block(ctx context.Context, req BlockRequest) (*BlockResult, error) {
	if err := b.validate(ctx, &req); err != nil {
		return nil, err
	}
	if req.Date.Before(models.DateOf(b.now())) {
		return nil, apperr.Validation("La fecha no puede ser anterior a la fecha actual")
	}

	result := &BlockResult{}
	err := b.Store.WithTx(ctx, func(s store.Store) error {
		slots, err := s.SlotsByEmployeeDate(ctx, req.EmployeeID, req.Date)
		if err != nil {
			return err
		}

		// Nothing generated yet for this date: record the intent, the
		// generator applies it when the date materializes.
		if len(slots) == 0 {
			result.Standing = true
			return s.CreateStandingBlock(ctx, &models.StandingBlock{
				EmployeeID: req.EmployeeID,
				Date:       req.Date,
				StartTime:  req.StartTime,
				EndTime:    req.EndTime,
			})
		}

		taken, err := b.confirmedInRange(ctx, s, req)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return apperr.Validation(
				"En el rango de horarios seleccionado los siguientes horarios están reservados: %s. Por favor cancelar los turnos antes de bloquear el horario",
				strings.Join(taken, ", "))
		}

		blocked, err := s.BlockSlotsInRange(ctx, req.EmployeeID, req.Date, req.StartTime, req.EndTime)
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

// confirmedInRange lists the times inside the requested range whose slot is
// already unavailable because a confirmed appointment holds it.
func (b *Blocks) confirmedInRange(ctx context.Context, s store.Store, req BlockRequest) ([]string, error) {
	unavailable, err := s.UnavailableSlotsInRange(ctx, req.EmployeeID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	var taken []string
	for _, slot := range unavailable {
		confirmed, err := s.ConfirmedAppointmentAt(ctx, req.EmployeeID, req.Date, slot.Time)
		if err != nil {
			return nil, err
		}
		if confirmed {
			taken = append(taken, slot.Time)
		}
	}
	return taken, nil
}

func (b *Blocks) Unblock(ctx context.Context, req BlockRequest) (*UnblockResult, error) {
	if err := b.validate(ctx, &req); err != nil {
		return nil, err
	}

	result := &UnblockResult{}
	err := b.Store.WithTx(ctx, func(s store.Store) error {
		unavailable, err := s.UnavailableSlotsInRange(ctx, req.EmployeeID, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}

		// No blocked slots: either the date was never generated and a
		// standing block holds the intent, or there is nothing to undo.
		if len(unavailable) == 0 {
			standing, err := s.StandingBlocksOverlapping(ctx, req.EmployeeID, req.Date, req.StartTime, req.EndTime)
			if err != nil {
				return err
			}
			if len(standing) == 0 {
				result.NothingToUnblock = true
				return nil
			}
			for _, sb := range standing {
				if _, err := s.DeleteStandingBlock(ctx, sb.ID); err != nil {
					return err
				}
			}
			result.StandingRemoved = len(standing)
			return nil
		}

		for _, slot := range unavailable {
			confirmed, err := s.ConfirmedAppointmentAt(ctx, req.EmployeeID, req.Date, slot.Time)
			if err != nil {
				return err
			}
			if confirmed {
				result.StillBlocked = append(result.StillBlocked, slot.Time)
			}
		}

		freed, err := s.FreeSlotsInRange(ctx, req.EmployeeID, req.Date, req.StartTime, req.EndTime, result.StillBlocked)
		if err != nil {
			return err
		}
		result.SlotsFreed = freed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

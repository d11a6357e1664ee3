package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/turnosapp/backend/models"
)

// Gorm is the Postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(handle *gorm.DB) *Gorm {
	return &Gorm{db: handle}
}

func (g *Gorm) WithTx(ctx context.Context, fn func(Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}

func (g *Gorm) exists(ctx context.Context, model any, id uuid.UUID) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (g *Gorm) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return g.exists(ctx, &models.User{}, id)
}

func (g *Gorm) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return g.exists(ctx, &models.Employee{}, id)
}

func (g *Gorm) ServiceExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return g.exists(ctx, &models.Service{}, id)
}

const weekdayOrder = "CASE dia WHEN 'L' THEN 1 WHEN 'M' THEN 2 WHEN 'X' THEN 3 WHEN 'J' THEN 4 WHEN 'V' THEN 5 WHEN 'S' THEN 6 WHEN 'D' THEN 7 END"

func (g *Gorm) ListTemplates(ctx context.Context, employeeID *uuid.UUID, day *models.Weekday) ([]models.ScheduleTemplate, error) {
	query := g.db.WithContext(ctx).Preload("Employee").Model(&models.ScheduleTemplate{})
	if employeeID != nil {
		query = query.Where("empleado_id = ?", *employeeID)
	}
	if day != nil {
		query = query.Where("dia = ?", *day)
	}
	var templates []models.ScheduleTemplate
	err := query.Order(weekdayOrder + ", hora_inicio").Find(&templates).Error
	return templates, err
}

func (g *Gorm) GetTemplate(ctx context.Context, id uuid.UUID) (*models.ScheduleTemplate, error) {
	var t models.ScheduleTemplate
	err := g.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (g *Gorm) CreateTemplate(ctx context.Context, t *models.ScheduleTemplate) error {
	return g.db.WithContext(ctx).Create(t).Error
}

func (g *Gorm) UpdateTemplate(ctx context.Context, t *models.ScheduleTemplate) (int64, error) {
	result := g.db.WithContext(ctx).Model(&models.ScheduleTemplate{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"hora_inicio": t.StartTime,
			"hora_fin":    t.EndTime,
			"intervalo":   t.IntervalMinutes,
		})
	return result.RowsAffected, result.Error
}

func (g *Gorm) DeleteTemplate(ctx context.Context, id uuid.UUID) (int64, error) {
	result := g.db.WithContext(ctx).Delete(&models.ScheduleTemplate{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (g *Gorm) TemplateOverlaps(ctx context.Context, employeeID uuid.UUID, day models.Weekday, start, end string, excludeID *uuid.UUID) (bool, error) {
	query := g.db.WithContext(ctx).Model(&models.ScheduleTemplate{}).
		Where("empleado_id = ? AND dia = ? AND hora_inicio < ? AND hora_fin > ?", employeeID, day, end, start)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (g *Gorm) CreateSlots(ctx context.Context, slots []models.AvailabilitySlot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	result := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&slots)
	return result.RowsAffected, result.Error
}

func (g *Gorm) ApplyStandingBlocks(ctx context.Context) (int64, error) {
	result := g.db.WithContext(ctx).Exec(`
		UPDATE horarios_disponibles
		SET disponible = FALSE
		FROM bloqueos_horarios bh
		WHERE horarios_disponibles.empleado_id = bh.empleado_id
		  AND horarios_disponibles.fecha = bh.fecha
		  AND horarios_disponibles.hora >= bh.hora_inicio
		  AND horarios_disponibles.hora < bh.hora_fin`)
	return result.RowsAffected, result.Error
}

func (g *Gorm) SlotsByEmployeeDate(ctx context.Context, employeeID uuid.UUID, date models.Date) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := g.db.WithContext(ctx).
		Where("empleado_id = ? AND fecha = ?", employeeID, date).
		Order("hora").
		Find(&slots).Error
	return slots, err
}

func (g *Gorm) UnavailableSlotsInRange(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := g.db.WithContext(ctx).
		Where("empleado_id = ? AND fecha = ? AND hora >= ? AND hora < ? AND disponible = FALSE",
			employeeID, date, from, to).
		Order("hora").
		Find(&slots).Error
	return slots, err
}

func (g *Gorm) BlockSlotsInRange(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string) (int64, error) {
	result := g.db.WithContext(ctx).Model(&models.AvailabilitySlot{}).
		Where("empleado_id = ? AND fecha = ? AND hora >= ? AND hora < ?", employeeID, date, from, to).
		Update("disponible", false)
	return result.RowsAffected, result.Error
}

func (g *Gorm) FreeSlotsInRange(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string, exceptTimes []string) (int64, error) {
	query := g.db.WithContext(ctx).Model(&models.AvailabilitySlot{}).
		Where("empleado_id = ? AND fecha = ? AND hora >= ? AND hora < ?", employeeID, date, from, to)
	if len(exceptTimes) > 0 {
		query = query.Where("hora NOT IN ?", exceptTimes)
	}
	result := query.Update("disponible", true)
	return result.RowsAffected, result.Error
}

func (g *Gorm) SlotAvailable(ctx context.Context, employeeID uuid.UUID, date models.Date, clock string) (bool, error) {
	var slot models.AvailabilitySlot
	err := g.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("empleado_id = ? AND fecha = ? AND hora = ?", employeeID, date, clock).
		First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return slot.Available, nil
}

func (g *Gorm) SetSlotAvailable(ctx context.Context, employeeID uuid.UUID, date models.Date, clock string, available bool) (int64, error) {
	result := g.db.WithContext(ctx).Model(&models.AvailabilitySlot{}).
		Where("empleado_id = ? AND fecha = ? AND hora = ?", employeeID, date, clock).
		Update("disponible", available)
	return result.RowsAffected, result.Error
}

func (g *Gorm) AvailableSlots(ctx context.Context, date models.Date, employeeID *uuid.UUID) ([]models.AvailabilitySlot, error) {
	query := g.db.WithContext(ctx).Preload("Employee").
		Where("fecha = ? AND disponible = TRUE", date)
	if employeeID != nil {
		query = query.Where("empleado_id = ?", *employeeID)
	}
	var slots []models.AvailabilitySlot
	err := query.Order("hora").Find(&slots).Error
	return slots, err
}

func (g *Gorm) CreateStandingBlock(ctx context.Context, b *models.StandingBlock) error {
	return g.db.WithContext(ctx).Create(b).Error
}

func (g *Gorm) StandingBlocksOverlapping(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string) ([]models.StandingBlock, error) {
	var blocks []models.StandingBlock
	err := g.db.WithContext(ctx).
		Where("empleado_id = ? AND fecha = ? AND hora_inicio < ? AND hora_fin > ?", employeeID, date, to, from).
		Find(&blocks).Error
	return blocks, err
}

func (g *Gorm) DeleteStandingBlock(ctx context.Context, id uuid.UUID) (int64, error) {
	result := g.db.WithContext(ctx).Delete(&models.StandingBlock{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (g *Gorm) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	return g.db.WithContext(ctx).Create(a).Error
}

func (g *Gorm) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var a models.Appointment
	err := g.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (g *Gorm) GetConfirmedAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var a models.Appointment
	err := g.db.WithContext(ctx).
		First(&a, "id = ? AND estado = ?", id, models.StatusConfirmed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (g *Gorm) ConfirmedAppointmentAt(ctx context.Context, employeeID uuid.UUID, date models.Date, clock string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("empleado_id = ? AND fecha = ? AND hora = ? AND estado = ?",
			employeeID, date, clock, models.StatusConfirmed).
		Count(&count).Error
	return count > 0, err
}

func (g *Gorm) ConfirmedTimes(ctx context.Context, employeeID uuid.UUID, date models.Date) ([]string, error) {
	var times []string
	err := g.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("empleado_id = ? AND fecha = ? AND estado = ?", employeeID, date, models.StatusConfirmed).
		Order("hora").
		Pluck("hora", &times).Error
	return times, err
}

func (g *Gorm) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) (int64, error) {
	result := g.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("estado", status)
	return result.RowsAffected, result.Error
}

func (g *Gorm) AppointmentsByUser(ctx context.Context, userID uuid.UUID, from models.Date) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := g.db.WithContext(ctx).
		Where("usuario_id = ? AND fecha >= ? AND estado <> ?", userID, from, models.StatusCancelled).
		Order("fecha, hora").
		Find(&appointments).Error
	return appointments, err
}

func (g *Gorm) ConfirmedByDate(ctx context.Context, date models.Date) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := g.db.WithContext(ctx).
		Preload("User").Preload("Service").Preload("Employee").
		Where("fecha = ? AND estado = ?", date, models.StatusConfirmed).
		Order("hora").
		Find(&appointments).Error
	return appointments, err
}

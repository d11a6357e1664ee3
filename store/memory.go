package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/turnosapp/backend/models"
)

// Memory is an in-memory Store with copy-on-write transactions: WithTx runs
// the callback against a deep copy of the state and swaps it in only on
// success, so a failed operation leaves no partial writes. It backs the
// engine tests; the server always runs on Gorm.
type Memory struct {
	mu    sync.Mutex
	state *memState
	inTx  bool
}

type memState struct {
	users        map[uuid.UUID]models.User
	employees    map[uuid.UUID]models.Employee
	services     map[uuid.UUID]models.Service
	templates    map[uuid.UUID]models.ScheduleTemplate
	blocks       map[uuid.UUID]models.StandingBlock
	slots        map[uuid.UUID]models.AvailabilitySlot
	appointments map[uuid.UUID]models.Appointment
}

func NewMemory() *Memory {
	return &Memory{state: &memState{
		users:        map[uuid.UUID]models.User{},
		employees:    map[uuid.UUID]models.Employee{},
		services:     map[uuid.UUID]models.Service{},
		templates:    map[uuid.UUID]models.ScheduleTemplate{},
		blocks:       map[uuid.UUID]models.StandingBlock{},
		slots:        map[uuid.UUID]models.AvailabilitySlot{},
		appointments: map[uuid.UUID]models.Appointment{},
	}}
}

func (s *memState) clone() *memState {
	next := &memState{
		users:        make(map[uuid.UUID]models.User, len(s.users)),
		employees:    make(map[uuid.UUID]models.Employee, len(s.employees)),
		services:     make(map[uuid.UUID]models.Service, len(s.services)),
		templates:    make(map[uuid.UUID]models.ScheduleTemplate, len(s.templates)),
		blocks:       make(map[uuid.UUID]models.StandingBlock, len(s.blocks)),
		slots:        make(map[uuid.UUID]models.AvailabilitySlot, len(s.slots)),
		appointments: make(map[uuid.UUID]models.Appointment, len(s.appointments)),
	}
	for k, v := range s.users {
		next.users[k] = v
	}
	for k, v := range s.employees {
		next.employees[k] = v
	}
	for k, v := range s.services {
		next.services[k] = v
	}
	for k, v := range s.templates {
		next.templates[k] = v
	}
	for k, v := range s.blocks {
		next.blocks[k] = v
	}
	for k, v := range s.slots {
		next.slots[k] = v
	}
	for k, v := range s.appointments {
		next.appointments[k] = v
	}
	return next
}

// Seed helpers for tests.

func (m *Memory) SeedUser(u models.User) models.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.state.users[u.ID] = u
	return u
}

func (m *Memory) SeedEmployee(e models.Employee) models.Employee {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.state.employees[e.ID] = e
	return e
}

func (m *Memory) SeedService(s models.Service) models.Service {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.state.services[s.ID] = s
	return s
}

func (m *Memory) WithTx(ctx context.Context, fn func(Store) error) error {
	if m.inTx {
		return fn(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &Memory{state: m.state.clone(), inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}

func (m *Memory) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.state.users[id]
	return ok, nil
}

func (m *Memory) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.state.employees[id]
	return ok, nil
}

func (m *Memory) ServiceExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.state.services[id]
	return ok, nil
}

func (m *Memory) ListTemplates(ctx context.Context, employeeID *uuid.UUID, day *models.Weekday) ([]models.ScheduleTemplate, error) {
	var templates []models.ScheduleTemplate
	for _, t := range m.state.templates {
		if employeeID != nil && t.EmployeeID != *employeeID {
			continue
		}
		if day != nil && t.Weekday != *day {
			continue
		}
		if emp, ok := m.state.employees[t.EmployeeID]; ok {
			t.Employee = emp
		}
		templates = append(templates, t)
	}
	sort.Slice(templates, func(i, j int) bool {
		if templates[i].Weekday.Ordinal() != templates[j].Weekday.Ordinal() {
			return templates[i].Weekday.Ordinal() < templates[j].Weekday.Ordinal()
		}
		return templates[i].StartTime < templates[j].StartTime
	})
	return templates, nil
}

func (m *Memory) GetTemplate(ctx context.Context, id uuid.UUID) (*models.ScheduleTemplate, error) {
	t, ok := m.state.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *Memory) CreateTemplate(ctx context.Context, t *models.ScheduleTemplate) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.state.templates[t.ID] = *t
	return nil
}

func (m *Memory) UpdateTemplate(ctx context.Context, t *models.ScheduleTemplate) (int64, error) {
	existing, ok := m.state.templates[t.ID]
	if !ok {
		return 0, nil
	}
	existing.StartTime = t.StartTime
	existing.EndTime = t.EndTime
	existing.IntervalMinutes = t.IntervalMinutes
	m.state.templates[t.ID] = existing
	return 1, nil
}

func (m *Memory) DeleteTemplate(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := m.state.templates[id]; !ok {
		return 0, nil
	}
	delete(m.state.templates, id)
	return 1, nil
}

func (m *Memory) TemplateOverlaps(ctx context.Context, employeeID uuid.UUID, day models.Weekday, start, end string, excludeID *uuid.UUID) (bool, error) {
	for _, t := range m.state.templates {
		if excludeID != nil && t.ID == *excludeID {
			continue
		}
		if t.EmployeeID == employeeID && t.Weekday == day && t.StartTime < end && t.EndTime > start {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) slotAt(employeeID uuid.UUID, date models.Date, clock string) (models.AvailabilitySlot, bool) {
	for _, s := range m.state.slots {
		if s.EmployeeID == employeeID && s.Date.Equal(date) && s.Time == clock {
			return s, true
		}
	}
	return models.AvailabilitySlot{}, false
}

func (m *Memory) CreateSlots(ctx context.Context, slots []models.AvailabilitySlot) (int64, error) {
	var inserted int64
	for _, s := range slots {
		if _, ok := m.slotAt(s.EmployeeID, s.Date, s.Time); ok {
			continue
		}
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		m.state.slots[s.ID] = s
		inserted++
	}
	return inserted, nil
}

func (m *Memory) ApplyStandingBlocks(ctx context.Context) (int64, error) {
	var affected int64
	for id, s := range m.state.slots {
		for _, b := range m.state.blocks {
			if b.EmployeeID == s.EmployeeID && b.Date.Equal(s.Date) &&
				s.Time >= b.StartTime && s.Time < b.EndTime {
				s.Available = false
				m.state.slots[id] = s
				affected++
				break
			}
		}
	}
	return affected, nil
}

func sortSlots(slots []models.AvailabilitySlot) {
	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })
}

func (m *Memory) SlotsByEmployeeDate(ctx context.Context, employeeID uuid.UUID, date models.Date) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	for _, s := range m.state.slots {
		if s.EmployeeID == employeeID && s.Date.Equal(date) {
			slots = append(slots, s)
		}
	}
	sortSlots(slots)
	return slots, nil
}

func (m *Memory) UnavailableSlotsInRange(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	for _, s := range m.state.slots {
		if s.EmployeeID == employeeID && s.Date.Equal(date) &&
			s.Time >= from && s.Time < to && !s.Available {
			slots = append(slots, s)
		}
	}
	sortSlots(slots)
	return slots, nil
}

func (m *Memory) BlockSlotsInRange(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string) (int64, error) {
	var affected int64
	for id, s := range m.state.slots {
		if s.EmployeeID == employeeID && s.Date.Equal(date) && s.Time >= from && s.Time < to {
			s.Available = false
			m.state.slots[id] = s
			affected++
		}
	}
	return affected, nil
}

func (m *Memory) FreeSlotsInRange(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string, exceptTimes []string) (int64, error) {
	excluded := make(map[string]bool, len(exceptTimes))
	for _, t := range exceptTimes {
		excluded[t] = true
	}
	var affected int64
	for id, s := range m.state.slots {
		if s.EmployeeID == employeeID && s.Date.Equal(date) &&
			s.Time >= from && s.Time < to && !excluded[s.Time] {
			s.Available = true
			m.state.slots[id] = s
			affected++
		}
	}
	return affected, nil
}

func (m *Memory) SlotAvailable(ctx context.Context, employeeID uuid.UUID, date models.Date, clock string) (bool, error) {
	s, ok := m.slotAt(employeeID, date, clock)
	if !ok {
		return false, nil
	}
	return s.Available, nil
}

func (m *Memory) SetSlotAvailable(ctx context.Context, employeeID uuid.UUID, date models.Date, clock string, available bool) (int64, error) {
	s, ok := m.slotAt(employeeID, date, clock)
	if !ok {
		return 0, nil
	}
	s.Available = available
	m.state.slots[s.ID] = s
	return 1, nil
}

func (m *Memory) AvailableSlots(ctx context.Context, date models.Date, employeeID *uuid.UUID) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	for _, s := range m.state.slots {
		if !s.Date.Equal(date) || !s.Available {
			continue
		}
		if employeeID != nil && s.EmployeeID != *employeeID {
			continue
		}
		if emp, ok := m.state.employees[s.EmployeeID]; ok {
			s.Employee = emp
		}
		slots = append(slots, s)
	}
	sortSlots(slots)
	return slots, nil
}

func (m *Memory) CreateStandingBlock(ctx context.Context, b *models.StandingBlock) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.state.blocks[b.ID] = *b
	return nil
}

func (m *Memory) StandingBlocksOverlapping(ctx context.Context, employeeID uuid.UUID, date models.Date, from, to string) ([]models.StandingBlock, error) {
	var blocks []models.StandingBlock
	for _, b := range m.state.blocks {
		if b.EmployeeID == employeeID && b.Date.Equal(date) && b.StartTime < to && b.EndTime > from {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

func (m *Memory) DeleteStandingBlock(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := m.state.blocks[id]; !ok {
		return 0, nil
	}
	delete(m.state.blocks, id)
	return 1, nil
}

func (m *Memory) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	m.state.appointments[a.ID] = *a
	return nil
}

func (m *Memory) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	a, ok := m.state.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) GetConfirmedAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	a, ok := m.state.appointments[id]
	if !ok || a.Status != models.StatusConfirmed {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) ConfirmedAppointmentAt(ctx context.Context, employeeID uuid.UUID, date models.Date, clock string) (bool, error) {
	for _, a := range m.state.appointments {
		if a.EmployeeID == employeeID && a.Date.Equal(date) && a.Time == clock && a.Status == models.StatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) ConfirmedTimes(ctx context.Context, employeeID uuid.UUID, date models.Date) ([]string, error) {
	var times []string
	for _, a := range m.state.appointments {
		if a.EmployeeID == employeeID && a.Date.Equal(date) && a.Status == models.StatusConfirmed {
			times = append(times, a.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

func (m *Memory) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) (int64, error) {
	a, ok := m.state.appointments[id]
	if !ok {
		return 0, nil
	}
	a.Status = status
	m.state.appointments[id] = a
	return 1, nil
}

func (m *Memory) AppointmentsByUser(ctx context.Context, userID uuid.UUID, from models.Date) ([]models.Appointment, error) {
	var appointments []models.Appointment
	for _, a := range m.state.appointments {
		if a.UserID == userID && !a.Date.Before(from) && a.Status != models.StatusCancelled {
			appointments = append(appointments, a)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		if !appointments[i].Date.Equal(appointments[j].Date) {
			return appointments[i].Date.Before(appointments[j].Date)
		}
		return appointments[i].Time < appointments[j].Time
	})
	return appointments, nil
}

func (m *Memory) ConfirmedByDate(ctx context.Context, date models.Date) ([]models.Appointment, error) {
	var appointments []models.Appointment
	for _, a := range m.state.appointments {
		if !a.Date.Equal(date) || a.Status != models.StatusConfirmed {
			continue
		}
		if u, ok := m.state.users[a.UserID]; ok {
			a.User = u
		}
		if e, ok := m.state.employees[a.EmployeeID]; ok {
			a.Employee = e
		}
		if s, ok := m.state.services[a.ServiceID]; ok {
			a.Service = s
		}
		appointments = append(appointments, a)
	}
	sort.Slice(appointments, func(i, j int) bool { return appointments[i].Time < appointments[j].Time })
	return appointments, nil
}

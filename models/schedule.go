package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Weekday is the single-letter day code used by the scheduling API:
// L (lunes) through D (domingo).
type Weekday string

const (
	Monday    Weekday = "L"
	Tuesday   Weekday = "M"
	Wednesday Weekday = "X"
	Thursday  Weekday = "J"
	Friday    Weekday = "V"
	Saturday  Weekday = "S"
	Sunday    Weekday = "D"
)

// Weekdays lists the valid codes in calendar order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (w Weekday) Valid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// Time maps the code to the stdlib weekday.
func (w Weekday) Time() time.Weekday {
	switch w {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

// Ordinal returns 1 for Monday through 7 for Sunday, the sort order the
// listing endpoints use.
func (w Weekday) Ordinal() int {
	for i, d := range Weekdays {
		if w == d {
			return i + 1
		}
	}
	return 0
}

// ScheduleTemplate is one recurring weekly availability rule: on a given
// weekday the employee takes appointments from StartTime to EndTime in
// IntervalMinutes steps. Ranges for the same employee and weekday never
// overlap.
type ScheduleTemplate struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID `json:"empleado_id" gorm:"column:empleado_id;type:uuid;index;not null"`
	Employee        Employee  `json:"empleado,omitempty" gorm:"foreignKey:EmployeeID"`
	Weekday         Weekday   `json:"dia" gorm:"column:dia;type:varchar(1);not null"`
	StartTime       string    `json:"hora_inicio" gorm:"column:hora_inicio;not null"`
	EndTime         string    `json:"hora_fin" gorm:"column:hora_fin;not null"`
	IntervalMinutes int       `json:"intervalo" gorm:"column:intervalo;not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (ScheduleTemplate) TableName() string { return "programacion_horarios" }

func (t *ScheduleTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// StandingBlock records blocking intent for a date whose slots have not been
// generated yet. The generator consumes it when it materializes that date.
type StandingBlock struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `json:"empleado_id" gorm:"column:empleado_id;type:uuid;index;not null"`
	Date       Date      `json:"fecha" gorm:"column:fecha;type:date;not null"`
	StartTime  string    `json:"hora_inicio" gorm:"column:hora_inicio;not null"`
	EndTime    string    `json:"hora_fin" gorm:"column:hora_fin;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (StandingBlock) TableName() string { return "bloqueos_horarios" }

func (b *StandingBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// AvailabilitySlot is one discrete bookable (employee, date, time) unit and
// the single source of truth for "is this slot free". Unique on that triple;
// generation re-runs insert-ignore against it.
type AvailabilitySlot struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `json:"empleado_id" gorm:"column:empleado_id;type:uuid;uniqueIndex:idx_horario_unico;not null"`
	Employee   Employee  `json:"empleado,omitempty" gorm:"foreignKey:EmployeeID"`
	Date       Date      `json:"fecha" gorm:"column:fecha;type:date;uniqueIndex:idx_horario_unico;not null"`
	Time       string    `json:"hora" gorm:"column:hora;uniqueIndex:idx_horario_unico;not null"`
	Available  bool      `json:"disponible" gorm:"column:disponible;not null;default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (AvailabilitySlot) TableName() string { return "horarios_disponibles" }

func (s *AvailabilitySlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/store"
)

// 2026-03-04 is a Wednesday; with a 14 day lead the next Monday is 2026-03-23.
var genNow = func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) }

func TestGenerateCreatesSlotsForTemplate(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	if err := mem.CreateTemplate(context.Background(), &models.ScheduleTemplate{
		EmployeeID:      emp.ID,
		Weekday:         models.Monday,
		StartTime:       "09:00",
		EndTime:         "10:00",
		IntervalMinutes: 30,
	}); err != nil {
		t.Fatal(err)
	}

	gen := &Generator{Store: mem, LeadDays: 14, Now: genNow}
	result, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if result.SlotsCreated != 2 {
		t.Fatalf("SlotsCreated = %d, want 2", result.SlotsCreated)
	}

	monday := models.NewDate(2026, time.March, 23)
	slots, err := mem.SlotsByEmployeeDate(context.Background(), emp.ID, monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots for %s, want 2", len(slots), monday)
	}
	for i, want := range []string{"09:00", "09:30"} {
		if slots[i].Time != want {
			t.Errorf("slot %d time = %s, want %s", i, slots[i].Time, want)
		}
		if !slots[i].Available {
			t.Errorf("slot %s should start available", slots[i].Time)
		}
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	if err := mem.CreateTemplate(context.Background(), &models.ScheduleTemplate{
		EmployeeID:      emp.ID,
		Weekday:         models.Friday,
		StartTime:       "14:00",
		EndTime:         "16:00",
		IntervalMinutes: 30,
	}); err != nil {
		t.Fatal(err)
	}

	gen := &Generator{Store: mem, LeadDays: 14, Now: genNow}
	first, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}
	if first.SlotsCreated != 4 {
		t.Fatalf("first run created %d slots, want 4", first.SlotsCreated)
	}

	second, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}
	if second.SlotsCreated != 0 {
		t.Fatalf("second run created %d slots, want 0", second.SlotsCreated)
	}

	friday := NextTargetDate(genNow(), models.Friday, 14)
	slots, _ := mem.SlotsByEmployeeDate(context.Background(), emp.ID, friday)
	if len(slots) != 4 {
		t.Fatalf("got %d slots after two runs, want 4", len(slots))
	}
}

func TestGenerateAppliesStandingBlocks(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	ctx := context.Background()
	if err := mem.CreateTemplate(ctx, &models.ScheduleTemplate{
		EmployeeID:      emp.ID,
		Weekday:         models.Monday,
		StartTime:       "09:00",
		EndTime:         "10:00",
		IntervalMinutes: 30,
	}); err != nil {
		t.Fatal(err)
	}

	monday := models.NewDate(2026, time.March, 23)
	if err := mem.CreateStandingBlock(ctx, &models.StandingBlock{
		EmployeeID: emp.ID,
		Date:       monday,
		StartTime:  "09:00",
		EndTime:    "09:30",
	}); err != nil {
		t.Fatal(err)
	}

	gen := &Generator{Store: mem, LeadDays: 14, Now: genNow}
	result, err := gen.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if result.SlotsBlocked != 1 {
		t.Fatalf("SlotsBlocked = %d, want 1", result.SlotsBlocked)
	}

	slots, _ := mem.SlotsByEmployeeDate(ctx, emp.ID, monday)
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if slots[0].Available {
		t.Error("09:00 falls inside the standing block and should be unavailable")
	}
	if !slots[1].Available {
		t.Error("09:30 is outside the standing block and should stay available")
	}
}

func TestGenerateWithoutTemplatesIsNotFound(t *testing.T) {
	mem := store.NewMemory()
	gen := &Generator{Store: mem, Now: genNow}
	_, err := gen.Generate(context.Background())
	if err == nil {
		t.Fatal("Generate() succeeded with no templates")
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("error kind = %d, want not found (%v)", apperr.KindOf(err), err)
	}
}

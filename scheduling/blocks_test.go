package scheduling

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/store"
)

var blockNow = func() time.Time { return time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC) }

func seedDaySlots(t *testing.T, mem *store.Memory, employeeID uuid.UUID, date models.Date, times []string, available bool) {
	t.Helper()
	slots := make([]models.AvailabilitySlot, 0, len(times))
	for _, clock := range times {
		slots = append(slots, models.AvailabilitySlot{
			EmployeeID: employeeID,
			Date:       date,
			Time:       clock,
			Available:  available,
		})
	}
	if _, err := mem.CreateSlots(context.Background(), slots); err != nil {
		t.Fatal(err)
	}
}

func TestBlockFlipsSlotsInRange(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	date := models.NewDate(2026, time.March, 10)
	seedDaySlots(t, mem, emp.ID, date, []string{"09:00", "09:30", "10:00"}, true)

	blocks := &Blocks{Store: mem, Now: blockNow}
	result, err := blocks.Block(context.Background(), BlockRequest{
		EmployeeID: emp.ID, Date: date, StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Block() error: %v", err)
	}
	if result.Standing {
		t.Fatal("Block() recorded a standing block although slots exist")
	}
	if result.SlotsBlocked != 2 {
		t.Fatalf("SlotsBlocked = %d, want 2", result.SlotsBlocked)
	}

	slots, _ := mem.SlotsByEmployeeDate(context.Background(), emp.ID, date)
	wantAvailable := map[string]bool{"09:00": false, "09:30": false, "10:00": true}
	for _, s := range slots {
		if s.Available != wantAvailable[s.Time] {
			t.Errorf("slot %s available = %v, want %v", s.Time, s.Available, wantAvailable[s.Time])
		}
	}
}

func TestBlockRefusesRangeWithConfirmedAppointment(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	user := mem.SeedUser(models.User{Name: "Marta", Phone: "1155550000"})
	svc := mem.SeedService(models.Service{Name: "Corte", DurationMinutes: 30, Price: 9000})
	date := models.NewDate(2026, time.March, 10)
	ctx := context.Background()

	seedDaySlots(t, mem, emp.ID, date, []string{"09:00", "10:00"}, true)
	seedDaySlots(t, mem, emp.ID, date, []string{"09:30"}, false)
	if err := mem.CreateAppointment(ctx, &models.Appointment{
		UserID: user.ID, EmployeeID: emp.ID, ServiceID: svc.ID,
		Date: date, Time: "09:30", Status: models.StatusConfirmed,
	}); err != nil {
		t.Fatal(err)
	}

	blocks := &Blocks{Store: mem, Now: blockNow}
	_, err := blocks.Block(ctx, BlockRequest{
		EmployeeID: emp.ID, Date: date, StartTime: "09:00", EndTime: "10:30",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("Block() over a booked slot: err = %v, want validation", err)
	}

	// All or nothing: the free slots in the range must stay untouched.
	slots, _ := mem.SlotsByEmployeeDate(ctx, emp.ID, date)
	for _, s := range slots {
		if s.Time != "09:30" && !s.Available {
			t.Errorf("slot %s was blocked despite the refused operation", s.Time)
		}
	}
}

func TestBlockBeforeGenerationRecordsStandingBlock(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	date := models.NewDate(2026, time.April, 1)
	ctx := context.Background()

	blocks := &Blocks{Store: mem, Now: blockNow}
	result, err := blocks.Block(ctx, BlockRequest{
		EmployeeID: emp.ID, Date: date, StartTime: "09:00", EndTime: "12:00",
	})
	if err != nil {
		t.Fatalf("Block() error: %v", err)
	}
	if !result.Standing {
		t.Fatal("Block() did not record a standing block for an ungenerated date")
	}

	standing, _ := mem.StandingBlocksOverlapping(ctx, emp.ID, date, "00:00", "23:59")
	if len(standing) != 1 {
		t.Fatalf("got %d standing blocks, want 1", len(standing))
	}
}

func TestBlockValidations(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	blocks := &Blocks{Store: mem, Now: blockNow}
	ctx := context.Background()

	_, err := blocks.Block(ctx, BlockRequest{
		EmployeeID: uuid.New(), Date: models.NewDate(2026, time.March, 10),
		StartTime: "09:00", EndTime: "10:00",
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("unknown employee: err = %v, want not found", err)
	}

	_, err = blocks.Block(ctx, BlockRequest{
		EmployeeID: emp.ID, Date: models.NewDate(2026, time.March, 10),
		StartTime: "10:00", EndTime: "09:00",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("inverted range: err = %v, want validation", err)
	}

	_, err = blocks.Block(ctx, BlockRequest{
		EmployeeID: emp.ID, Date: models.NewDate(2026, time.March, 3),
		StartTime: "09:00", EndTime: "10:00",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("past date: err = %v, want validation", err)
	}
}

func TestUnblockFreesOnlySlotsWithoutAppointments(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	user := mem.SeedUser(models.User{Name: "Marta", Phone: "1155550000"})
	svc := mem.SeedService(models.Service{Name: "Corte", DurationMinutes: 30, Price: 9000})
	date := models.NewDate(2026, time.March, 10)
	ctx := context.Background()

	seedDaySlots(t, mem, emp.ID, date, []string{"09:00", "09:30", "10:00"}, false)
	if err := mem.CreateAppointment(ctx, &models.Appointment{
		UserID: user.ID, EmployeeID: emp.ID, ServiceID: svc.ID,
		Date: date, Time: "09:30", Status: models.StatusConfirmed,
	}); err != nil {
		t.Fatal(err)
	}

	blocks := &Blocks{Store: mem, Now: blockNow}
	result, err := blocks.Unblock(ctx, BlockRequest{
		EmployeeID: emp.ID, Date: date, StartTime: "09:00", EndTime: "10:30",
	})
	if err != nil {
		t.Fatalf("Unblock() error: %v", err)
	}
	if result.SlotsFreed != 2 {
		t.Errorf("SlotsFreed = %d, want 2", result.SlotsFreed)
	}
	if !reflect.DeepEqual(result.StillBlocked, []string{"09:30"}) {
		t.Errorf("StillBlocked = %v, want [09:30]", result.StillBlocked)
	}

	slots, _ := mem.SlotsByEmployeeDate(ctx, emp.ID, date)
	wantAvailable := map[string]bool{"09:00": true, "09:30": false, "10:00": true}
	for _, s := range slots {
		if s.Available != wantAvailable[s.Time] {
			t.Errorf("slot %s available = %v, want %v", s.Time, s.Available, wantAvailable[s.Time])
		}
	}
}

func TestUnblockRemovesStandingBlockWhenNothingGenerated(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	date := models.NewDate(2026, time.April, 1)
	ctx := context.Background()

	if err := mem.CreateStandingBlock(ctx, &models.StandingBlock{
		EmployeeID: emp.ID, Date: date, StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Fatal(err)
	}

	blocks := &Blocks{Store: mem, Now: blockNow}
	result, err := blocks.Unblock(ctx, BlockRequest{
		EmployeeID: emp.ID, Date: date, StartTime: "09:00", EndTime: "12:00",
	})
	if err != nil {
		t.Fatalf("Unblock() error: %v", err)
	}
	if result.StandingRemoved != 1 {
		t.Fatalf("StandingRemoved = %d, want 1", result.StandingRemoved)
	}

	standing, _ := mem.StandingBlocksOverlapping(ctx, emp.ID, date, "00:00", "23:59")
	if len(standing) != 0 {
		t.Fatalf("standing block survived unblock: %v", standing)
	}
}

func TestUnblockWithNothingToDo(t *testing.T) {
	mem := store.NewMemory()
	emp := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	date := models.NewDate(2026, time.March, 10)
	seedDaySlots(t, mem, emp.ID, date, []string{"09:00"}, true)

	blocks := &Blocks{Store: mem, Now: blockNow}
	result, err := blocks.Unblock(context.Background(), BlockRequest{
		EmployeeID: emp.ID, Date: date, StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Unblock() error: %v", err)
	}
	if !result.NothingToUnblock {
		t.Fatal("expected NothingToUnblock")
	}
}

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/turnosapp/backend/booking"
	"github.com/turnosapp/backend/models"
	"github.com/turnosapp/backend/store"
)

func newBookingApp(t *testing.T) (*fiber.App, *store.Memory, models.User, models.Employee, models.Service) {
	t.Helper()
	mem := store.NewMemory()
	user := mem.SeedUser(models.User{Name: "Marta", Phone: "1155550000"})
	employee := mem.SeedEmployee(models.Employee{Name: "Lucía"})
	service := mem.SeedService(models.Service{Name: "Corte", DurationMinutes: 30, Price: 9000})

	engine := &booking.Engine{
		Store: mem,
		Now:   func() time.Time { return time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC) },
	}
	ctrl := &Appointments{Engine: engine}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	turnos := app.Group("/turnos")
	turnos.Get("/disponibles", ctrl.Available)
	turnos.Post("/", ctrl.Create)
	turnos.Get("/:id", ctrl.Get)
	turnos.Put("/:id", ctrl.Cancel)
	return app, mem, user, employee, service
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestCreateTurnoOverHTTP(t *testing.T) {
	app, mem, user, employee, service := newBookingApp(t)
	date := models.NewDate(2026, time.March, 10)
	if _, err := mem.CreateSlots(context.Background(), []models.AvailabilitySlot{
		{EmployeeID: employee.ID, Date: date, Time: "09:00", Available: true},
	}); err != nil {
		t.Fatal(err)
	}

	body := map[string]string{
		"usuario_id":  user.ID.String(),
		"empleado_id": employee.ID.String(),
		"servicio_id": service.ID.String(),
		"fecha":       "2026-03-10",
		"hora":        "09:00",
	}
	res := postJSON(t, app, "/turnos/", body)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", res.StatusCode)
	}
	var created models.Appointment
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Status != models.StatusConfirmed || created.Time != "09:00" {
		t.Fatalf("created = %+v, want confirmado 09:00", created)
	}

	// The slot is gone, so the same request now fails with 400.
	res = postJSON(t, app, "/turnos/", body)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("rebooking status = %d, want 400", res.StatusCode)
	}
	if got := detailOf(t, res); got != "El horario seleccionado no está disponible" {
		t.Fatalf("detail = %q", got)
	}
}

func TestAvailableTurnosOverHTTP(t *testing.T) {
	app, mem, _, employee, _ := newBookingApp(t)
	date := models.NewDate(2026, time.March, 10)
	if _, err := mem.CreateSlots(context.Background(), []models.AvailabilitySlot{
		{EmployeeID: employee.ID, Date: date, Time: "09:00", Available: true},
		{EmployeeID: employee.ID, Date: date, Time: "09:30", Available: false},
	}); err != nil {
		t.Fatal(err)
	}

	path := fmt.Sprintf("/turnos/disponibles?fecha=2026-03-10&empleado_id=%s", employee.ID)
	res, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	var slots []models.AvailabilitySlot
	if err := json.NewDecoder(res.Body).Decode(&slots); err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 || slots[0].Time != "09:00" {
		t.Fatalf("slots = %+v, want only 09:00", slots)
	}

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/turnos/disponibles?fecha=ayer", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad date status = %d, want 400", res.StatusCode)
	}

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/turnos/disponibles?fecha=2026-06-01", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("empty date status = %d, want 404", res.StatusCode)
	}
}

func TestCancelTurnoOverHTTP(t *testing.T) {
	app, mem, user, employee, service := newBookingApp(t)
	date := models.NewDate(2026, time.March, 10)
	ctx := context.Background()
	if _, err := mem.CreateSlots(ctx, []models.AvailabilitySlot{
		{EmployeeID: employee.ID, Date: date, Time: "09:00", Available: true},
	}); err != nil {
		t.Fatal(err)
	}

	res := postJSON(t, app, "/turnos/", map[string]string{
		"usuario_id":  user.ID.String(),
		"empleado_id": employee.ID.String(),
		"servicio_id": service.ID.String(),
		"fecha":       "2026-03-10",
		"hora":        "09:00",
	})
	var created models.Appointment
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPut, "/turnos/"+created.ID.String(), nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("cancel status = %d, want 200", res.StatusCode)
	}
	available, err := mem.SlotAvailable(ctx, employee.ID, date, "09:00")
	if err != nil {
		t.Fatal(err)
	}
	if !available {
		t.Fatal("cancel over HTTP did not free the slot")
	}

	req = httptest.NewRequest(http.MethodPut, "/turnos/no-es-un-uuid", nil)
	res, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id status = %d, want 400", res.StatusCode)
	}
}

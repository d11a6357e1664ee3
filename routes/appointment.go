package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turnosapp/backend/controllers"
)

// SetupAppointmentRoutes configures the /turnos group. The fixed paths come
// before /:id so "disponibles" is never read as an id.
func SetupAppointmentRoutes(app *fiber.App, ctrl *controllers.Appointments) {
	turnos := app.Group("/turnos")
	turnos.Get("/disponibles", ctrl.Available)
	turnos.Get("/user/:user_id", ctrl.ByUser)
	turnos.Get("/agendados/:fecha", ctrl.ConfirmedByDate)
	turnos.Put("/edit/:id", ctrl.Modify)
	turnos.Post("/", ctrl.Create)
	turnos.Get("/:id", ctrl.Get)
	turnos.Put("/:id", ctrl.Cancel)
}

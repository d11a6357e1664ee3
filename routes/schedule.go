package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turnosapp/backend/controllers"
)

// SetupScheduleRoutes configures the /horarios group: generation, the weekly
// programming CRUD and blocking.
func SetupScheduleRoutes(app *fiber.App, ctrl *controllers.Schedules) {
	horarios := app.Group("/horarios")
	horarios.Post("/generar_horarios", ctrl.Generate)
	horarios.Post("/bloquear", ctrl.BlockHours)
	horarios.Post("/desbloquear", ctrl.UnblockHours)
	horarios.Post("/", ctrl.CreateTemplate)
	horarios.Get("/", ctrl.ListTemplates)
	horarios.Put("/:id", ctrl.UpdateTemplate)
	horarios.Delete("/:id", ctrl.DeleteTemplate)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turnosapp/backend/controllers"
)

// SetupServiceRoutes configures the /servicios CRUD.
func SetupServiceRoutes(app *fiber.App, ctrl *controllers.Services) {
	servicios := app.Group("/servicios")
	servicios.Post("/", ctrl.Create)
	servicios.Get("/", ctrl.List)
	servicios.Get("/:id", ctrl.Get)
	servicios.Put("/:id", ctrl.Update)
	servicios.Delete("/:id", ctrl.Delete)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turnosapp/backend/controllers"
)

// SetupUserRoutes configures the /usuarios CRUD.
func SetupUserRoutes(app *fiber.App, ctrl *controllers.Users) {
	usuarios := app.Group("/usuarios")
	usuarios.Post("/", ctrl.Create)
	usuarios.Get("/", ctrl.List)
	usuarios.Get("/:id", ctrl.Get)
	usuarios.Put("/:id", ctrl.Update)
	usuarios.Delete("/:id", ctrl.Delete)
}

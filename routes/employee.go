package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turnosapp/backend/controllers"
)

// SetupEmployeeRoutes configures the /empleados CRUD.
func SetupEmployeeRoutes(app *fiber.App, ctrl *controllers.Employees) {
	empleados := app.Group("/empleados")
	empleados.Post("/", ctrl.Create)
	empleados.Get("/", ctrl.List)
	empleados.Get("/:id", ctrl.Get)
	empleados.Put("/:id", ctrl.Update)
	empleados.Delete("/:id", ctrl.Delete)
}

package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/models"
)

// Employees is the staff CRUD.
type Employees struct {
	DB *gorm.DB
}

type employeeInput struct {
	Name      *string `json:"nombre"`
	Specialty *string `json:"especialidad"`
}

func (e *Employees) Create(c *fiber.Ctx) error {
	var in employeeInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	if in.Name == nil || *in.Name == "" {
		return apperr.Validation("El nombre es obligatorio")
	}
	employee := models.Employee{Name: *in.Name, Specialty: in.Specialty}
	if err := e.DB.Create(&employee).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func (e *Employees) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var employee models.Employee
	if err := e.DB.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("No se encontró el empleado con id %s", id)
		}
		return apperr.Internal(err)
	}
	return c.JSON(employee)
}

func (e *Employees) List(c *fiber.Ctx) error {
	var employees []models.Employee
	if err := e.DB.Order("nombre").Find(&employees).Error; err != nil {
		return apperr.Internal(err)
	}
	if len(employees) == 0 {
		return apperr.NotFound("No se encontraron empleados")
	}
	return c.JSON(employees)
}

func (e *Employees) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in employeeInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	if in.Name == nil && in.Specialty == nil {
		return apperr.Validation("Debe ingresar al menos un campo para actualizar")
	}

	var employee models.Employee
	if err := e.DB.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("No se encontró el empleado con id %s", id)
		}
		return apperr.Internal(err)
	}
	if in.Name != nil {
		if *in.Name == "" {
			return apperr.Validation("El nombre es obligatorio")
		}
		employee.Name = *in.Name
	}
	if in.Specialty != nil {
		employee.Specialty = in.Specialty
	}
	if err := e.DB.Save(&employee).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(employee)
}

func (e *Employees) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	result := e.DB.Delete(&models.Employee{}, "id = ?", id)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("No se encontró el empleado con id %s", id)
	}
	return c.JSON(fiber.Map{"detail": "Empleado eliminado correctamente"})
}

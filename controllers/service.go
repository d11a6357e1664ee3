package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/models"
)

// Services is the catalog CRUD.
type Services struct {
	DB *gorm.DB
}

type serviceInput struct {
	Name            *string  `json:"nombre"`
	DurationMinutes *int     `json:"duracion_minutos"`
	Price           *float64 `json:"precio"`
}

func (s *Services) Create(c *fiber.Ctx) error {
	var in serviceInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	if in.Name == nil || *in.Name == "" {
		return apperr.Validation("El nombre es obligatorio")
	}
	if in.DurationMinutes == nil || *in.DurationMinutes <= 0 {
		return apperr.Validation("La duración debe ser mayor a 0")
	}
	if in.Price == nil || *in.Price < 0 {
		return apperr.Validation("El precio no puede ser negativo")
	}

	service := models.Service{
		Name:            *in.Name,
		DurationMinutes: *in.DurationMinutes,
		Price:           *in.Price,
	}
	if err := s.DB.Create(&service).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

func (s *Services) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var service models.Service
	if err := s.DB.First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Servicio no encontrado")
		}
		return apperr.Internal(err)
	}
	return c.JSON(service)
}

func (s *Services) List(c *fiber.Ctx) error {
	var services []models.Service
	if err := s.DB.Order("nombre").Find(&services).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(services)
}

func (s *Services) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in serviceInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	if in.Name == nil && in.DurationMinutes == nil && in.Price == nil {
		return apperr.Validation("Debe ingresar al menos un campo para actualizar")
	}

	var service models.Service
	if err := s.DB.First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Servicio no encontrado")
		}
		return apperr.Internal(err)
	}
	if in.Name != nil {
		if *in.Name == "" {
			return apperr.Validation("El nombre es obligatorio")
		}
		service.Name = *in.Name
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return apperr.Validation("La duración debe ser mayor a 0")
		}
		service.DurationMinutes = *in.DurationMinutes
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return apperr.Validation("El precio no puede ser negativo")
		}
		service.Price = *in.Price
	}
	if err := s.DB.Save(&service).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(service)
}

func (s *Services) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	result := s.DB.Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Servicio no encontrado")
	}
	return c.JSON(fiber.Map{"detail": "Servicio eliminado correctamente"})
}

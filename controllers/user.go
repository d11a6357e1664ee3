package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turnosapp/backend/apperr"
	"github.com/turnosapp/backend/models"
)

// Users is the customer CRUD. It talks to the database directly; the booking
// engine only ever checks that a user exists.
type Users struct {
	DB *gorm.DB
}

type userInput struct {
	Name  *string `json:"nombre"`
	Phone *string `json:"telefono"`
	Email *string `json:"email"`
}

func (u *Users) phoneTaken(phone string, exclude *uuid.UUID) (bool, error) {
	query := u.DB.Model(&models.User{}).Where("telefono = ?", phone)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

func (u *Users) emailTaken(email string, exclude *uuid.UUID) (bool, error) {
	query := u.DB.Model(&models.User{}).Where("email = ?", email)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

func (u *Users) Create(c *fiber.Ctx) error {
	var in userInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	if in.Name == nil || *in.Name == "" {
		return apperr.Validation("El nombre es obligatorio")
	}
	if in.Phone == nil || *in.Phone == "" {
		return apperr.Validation("El teléfono es obligatorio")
	}
	if taken, err := u.phoneTaken(*in.Phone, nil); err != nil {
		return err
	} else if taken {
		return apperr.Validation("Ya existe un usuario con ese teléfono")
	}
	if in.Email != nil && *in.Email != "" {
		if taken, err := u.emailTaken(*in.Email, nil); err != nil {
			return err
		} else if taken {
			return apperr.Validation("Ya existe un usuario con ese email")
		}
	}

	user := models.User{Name: *in.Name, Phone: *in.Phone, Email: in.Email}
	if err := u.DB.Create(&user).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (u *Users) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var user models.User
	if err := u.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Usuario no encontrado")
		}
		return apperr.Internal(err)
	}
	return c.JSON(user)
}

func (u *Users) List(c *fiber.Ctx) error {
	var users []models.User
	if err := u.DB.Order("nombre").Find(&users).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(users)
}

func (u *Users) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in userInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("El cuerpo de la solicitud no es válido")
	}
	if in.Name == nil && in.Phone == nil && in.Email == nil {
		return apperr.Validation("Debe ingresar al menos un campo para actualizar")
	}

	var user models.User
	if err := u.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Usuario no encontrado")
		}
		return apperr.Internal(err)
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		if taken, err := u.phoneTaken(*in.Phone, &id); err != nil {
			return err
		} else if taken {
			return apperr.Validation("Ya existe un usuario con ese teléfono")
		}
		user.Phone = *in.Phone
	}
	if in.Email != nil {
		if *in.Email != "" {
			if taken, err := u.emailTaken(*in.Email, &id); err != nil {
				return err
			} else if taken {
				return apperr.Validation("Ya existe un usuario con ese email")
			}
		}
		user.Email = in.Email
	}

	if err := u.DB.Save(&user).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(user)
}

func (u *Users) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	result := u.DB.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Usuario no encontrado")
	}
	return c.JSON(fiber.Map{"detail": "Usuario eliminado correctamente"})
}

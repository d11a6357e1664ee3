package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/turnosapp/backend/apperr"
)

// ErrorHandler is the single place domain errors become HTTP responses.
// Handlers return errors as-is; this maps the kind to a status and answers
// with a {"detail": message} body. Internal causes are logged and replaced by
// a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
	}
	if apperr.KindOf(err) == apperr.KindInternal {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"detail": apperr.Detail(err)})
}

func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Validation("El id proporcionado no es válido")
	}
	return id, nil
}

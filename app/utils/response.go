package utils

import (
	"github.com/gofiber/fiber/v2"

	"edupro-lms/app/models"
)

// Success wraps data in the standard API envelope.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// Error translates a finance error into the matching HTTP response. Conflict
// carries 409 and is the only category a client should retry automatically.
func Error(c *fiber.Ctx, err error) error {
	kind, ok := models.ErrorKindOf(err)
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	status := fiber.StatusInternalServerError
	switch kind {
	case models.ErrInvalidInput:
		status = fiber.StatusBadRequest
	case models.ErrNotFound:
		status = fiber.StatusNotFound
	case models.ErrInvalidState, models.ErrOverpayment, models.ErrAlreadyPaid:
		status = fiber.StatusUnprocessableEntity
	case models.ErrConflict:
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"kind":    string(kind),
	})
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y código de error.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrMissingReason):
		return fiber.StatusBadRequest, "MISSING_REASON"
	case errors.Is(err, domain.ErrUnknownReference):
		return fiber.StatusBadRequest, "UNKNOWN_REFERENCE"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return fiber.StatusBadRequest, "INSUFFICIENT_BALANCE"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateCode):
		return fiber.StatusConflict, "DUPLICATE_CODE"
	case errors.Is(err, domain.ErrInUse):
		return fiber.StatusConflict, "IN_USE"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

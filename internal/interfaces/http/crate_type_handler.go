package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajas-api/internal/application/catalog"
	"github.com/jhoicas/cajas-api/internal/application/dto"
)

// CrateTypeHandler maneja las peticiones HTTP de tipos de caja.
type CrateTypeHandler struct {
	uc *catalog.CrateTypeUseCase
}

// NewCrateTypeHandler construye el handler.
func NewCrateTypeHandler(uc *catalog.CrateTypeUseCase) *CrateTypeHandler {
	return &CrateTypeHandler{uc: uc}
}

// List godoc
// @Summary      Listar tipos de caja
// @Tags         tipos-cajas
// @Produce      json
// @Success      200  {array}   dto.CrateTypeResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/tipos-cajas [get]
func (h *CrateTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de caja por ID
// @Tags         tipos-cajas
// @Produce      json
// @Param        id   path      string  true  "ID del tipo de caja"
// @Success      200  {object}  dto.CrateTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tipos-cajas/{id} [get]
func (h *CrateTypeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tipo de caja
// @Description  El código es único sin distinguir mayúsculas.
// @Tags         tipos-cajas
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CrateTypeRequest  true  "Datos del tipo de caja"
// @Success      201   {object}  dto.CrateTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tipos-cajas [post]
func (h *CrateTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CrateTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar tipo de caja
// @Tags         tipos-cajas
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "ID del tipo de caja"
// @Param        body  body      dto.CrateTypeRequest  true  "Datos del tipo de caja"
// @Success      200   {object}  dto.CrateTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tipos-cajas/{id} [put]
func (h *CrateTypeHandler) Update(c *fiber.Ctx) error {
	var in dto.CrateTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tipo de caja
// @Description  Con movimientos registrados responde 409; desactivar en su lugar.
// @Tags         tipos-cajas
// @Param        id   path  string  true  "ID del tipo de caja"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tipos-cajas/{id} [delete]
func (h *CrateTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/application/ledger"
)

// MovementHandler maneja el registro y la consulta de movimientos de cajas.
type MovementHandler struct {
	register *ledger.RegisterMovementUseCase
	query    *ledger.QueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *ledger.RegisterMovementUseCase, query *ledger.QueryUseCase) *MovementHandler {
	return &MovementHandler{register: register, query: query}
}

// Register godoc
// @Summary      Registrar movimiento
// @Description  entrega suma, devolucion y retiro restan, ajuste fija el saldo. retiro y ajuste exigen motivo.
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.register.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero; máximo 100.
// @Tags         movimientos
// @Produce      json
// @Param        tipo          query     string  false  "entrega, devolucion, retiro o ajuste"
// @Param        cliente_id    query     string  false  "Cliente"
// @Param        tipo_caja_id  query     string  false  "Tipo de caja"
// @Param        fecha_desde   query     string  false  "YYYY-MM-DD"
// @Param        fecha_hasta   query     string  false  "YYYY-MM-DD"
// @Param        limit         query     int     false  "Límite"  default(100)
// @Success      200           {array}   dto.MovementResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementFilterQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.query.ListMovements(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movimientos
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen del tablero
// @Tags         movimientos
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/movimientos/resumen [get]
func (h *MovementHandler) Summary(c *fiber.Ctx) error {
	out, err := h.query.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajas-api/internal/application/ledger"
)

// BalanceHandler consultas de saldos, recálculo y reporte PDF.
type BalanceHandler struct {
	query   *ledger.QueryUseCase
	rebuild *ledger.RebuildUseCase
	report  *ledger.ReportUseCase
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(query *ledger.QueryUseCase, rebuild *ledger.RebuildUseCase, report *ledger.ReportUseCase) *BalanceHandler {
	return &BalanceHandler{query: query, rebuild: rebuild, report: report}
}

// List godoc
// @Summary      Listar saldos
// @Tags         saldos
// @Produce      json
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/saldos [get]
func (h *BalanceHandler) List(c *fiber.Ctx) error {
	out, err := h.query.ListBalances(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByClient godoc
// @Summary      Saldos de un cliente
// @Tags         saldos
// @Produce      json
// @Param        clienteId  path      string  true  "ID del cliente"
// @Success      200        {array}   dto.BalanceResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/saldos/cliente/{clienteId} [get]
func (h *BalanceHandler) ListByClient(c *fiber.Ctx) error {
	out, err := h.query.ListClientBalances(c.UserContext(), c.Params("clienteId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPair godoc
// @Summary      Saldo de un par cliente / tipo de caja
// @Description  0 si el par nunca tuvo movimientos.
// @Tags         saldos
// @Produce      json
// @Param        clienteId   path      string  true  "ID del cliente"
// @Param        tipoCajaId  path      string  true  "ID del tipo de caja"
// @Success      200         {object}  dto.PairBalanceResponse
// @Router       /api/saldos/cliente/{clienteId}/tipo/{tipoCajaId} [get]
func (h *BalanceHandler) GetPair(c *fiber.Ctx) error {
	out, err := h.query.GetBalance(c.UserContext(), c.Params("clienteId"), c.Params("tipoCajaId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Rebuild godoc
// @Summary      Recalcular saldos desde el historial
// @Description  Con dry_run=true solo informa los pares desviados.
// @Tags         saldos
// @Produce      json
// @Param        dry_run  query     bool  false  "Solo verificar"
// @Success      200      {object}  dto.RebuildResponse
// @Router       /api/saldos/recalcular [post]
func (h *BalanceHandler) Rebuild(c *fiber.Ctx) error {
	run := h.rebuild.Rebuild
	if c.QueryBool("dry_run", false) {
		run = h.rebuild.Verify
	}
	out, err := run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de saldos por cliente
// @Tags         saldos
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/saldos/reporte [get]
func (h *BalanceHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.report.Generate(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="saldos-cajas.pdf"`)
	return c.Send(pdf)
}

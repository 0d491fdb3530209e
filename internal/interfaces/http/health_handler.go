package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

// HealthHandler reporta el estado del servicio y la conectividad del almacén.
type HealthHandler struct {
	store  repository.HealthChecker
	driver string
}

// NewHealthHandler construye el handler.
func NewHealthHandler(store repository.HealthChecker, driver string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.store.Ping(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Driver: h.driver, Store: err.Error()})
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Driver: h.driver, Store: "ok"})
}

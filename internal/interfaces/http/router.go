package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/cajas-api/internal/application/catalog"
	"github.com/jhoicas/cajas-api/internal/application/ledger"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CrateTypeUC      *catalog.CrateTypeUseCase
	ClientUC         *catalog.ClientUseCase
	RegisterMovement *ledger.RegisterMovementUseCase
	Queries          *ledger.QueryUseCase
	Rebuild          *ledger.RebuildUseCase
	Report           *ledger.ReportUseCase
	Health           repository.HealthChecker
	Driver           string
	Log              zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	healthHandler := NewHealthHandler(deps.Health, deps.Driver)
	api.Get("/health", healthHandler.Check)

	// Tipos de caja
	crateTypes := api.Group("/tipos-cajas")
	crateTypeHandler := NewCrateTypeHandler(deps.CrateTypeUC)
	crateTypes.Get("/", crateTypeHandler.List)
	crateTypes.Post("/", crateTypeHandler.Create)
	crateTypes.Get("/:id", crateTypeHandler.GetByID)
	crateTypes.Put("/:id", crateTypeHandler.Update)
	crateTypes.Delete("/:id", crateTypeHandler.Delete)

	// Clientes
	clients := api.Group("/clientes")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Movimientos: /resumen antes de /:id
	movements := api.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.Queries)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Register)
	movements.Get("/resumen", movementHandler.Summary)
	movements.Get("/:id", movementHandler.GetByID)

	// Saldos
	balances := api.Group("/saldos")
	balanceHandler := NewBalanceHandler(deps.Queries, deps.Rebuild, deps.Report)
	balances.Get("/", balanceHandler.List)
	balances.Get("/reporte", balanceHandler.Report)
	balances.Post("/recalcular", balanceHandler.Rebuild)
	balances.Get("/cliente/:clienteId", balanceHandler.ListByClient)
	balances.Get("/cliente/:clienteId/tipo/:tipoCajaId", balanceHandler.GetPair)
}

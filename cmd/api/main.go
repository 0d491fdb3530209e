// @title        Cajas API
// @version      1.0
// @description  Control de préstamo de cajas retornables: movimientos, saldos por cliente y tipo de caja.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/cajas-api/docs"
	"github.com/jhoicas/cajas-api/internal/application/catalog"
	"github.com/jhoicas/cajas-api/internal/application/ledger"
	"github.com/jhoicas/cajas-api/internal/application/ports"
	"github.com/jhoicas/cajas-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/cajas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cajas-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/cajas-api/internal/interfaces/http"
	"github.com/jhoicas/cajas-api/pkg/config"
	"github.com/jhoicas/cajas-api/pkg/ids"
	"github.com/jhoicas/cajas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	gen := ids.UUIDv7{}
	crateTypeUC := catalog.NewCrateTypeUseCase(backend.Repos.CrateTypes, backend.Runner, gen, nil)
	if _, err := crateTypeUC.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("sembrar tipos de caja por defecto")
	}

	var publisher ports.EventPublisher = ports.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("eventos de movimientos hacia Kafka")
	}
	defer publisher.Close()

	ledgerLog := log.Component("ledger")
	registerMovementUC := ledger.NewRegisterMovementUseCase(backend.Runner, gen, nil, publisher, ledgerLog)
	queryUC := ledger.NewQueryUseCase(backend.Repos)
	rebuildUC := ledger.NewRebuildUseCase(backend.Runner, ledgerLog)
	reportUC := ledger.NewReportUseCase(backend.Repos, infrapdf.NewMarotoPDFGenerator(), nil)
	clientUC := catalog.NewClientUseCase(backend.Repos.Clients, backend.Runner, gen, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, UI deshabilitada")
	}
	app.Get("/docs.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CrateTypeUC:      crateTypeUC,
		ClientUC:         clientUC,
		RegisterMovement: registerMovementUC,
		Queries:          queryUC,
		Rebuild:          rebuildUC,
		Report:           reportUC,
		Health:           backend.Health,
		Driver:           backend.Driver,
		Log:              log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

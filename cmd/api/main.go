package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	appbilling "github.com/jhoicas/invoice-studio/internal/application/billing"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/backend"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/export"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/history"
	infrapdf "github.com/jhoicas/invoice-studio/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/invoice-studio/internal/interfaces/http"
	"github.com/jhoicas/invoice-studio/pkg/clock"
	"github.com/jhoicas/invoice-studio/pkg/config"
	"github.com/jhoicas/invoice-studio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Colaborador de persistencia según la variante de despliegue.
	var store appbilling.InvoiceStore
	switch cfg.Store.Driver {
	case config.StoreBackend:
		store = backend.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.Timeout)*time.Second)
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewInvoiceStore(pool)
	}

	// Historial local (opcional, Redis).
	var historyStore appbilling.HistoryStore
	if cfg.Redis.Addr != "" {
		redisStore, err := history.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		historyStore = redisStore
	}

	generateUC := appbilling.NewGenerateInvoiceUseCase(
		store,
		historyStore,
		infrapdf.NewMarotoEncoder(),
		export.NewFileExporter(cfg.Export.Dir),
		clock.System{},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Generate: generateUC,
		Clock:    clock.System{},
		NewID:    uuid.NewString,
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

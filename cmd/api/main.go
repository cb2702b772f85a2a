package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/coffee-stock-api/docs"
	appanalytics "github.com/jhoicas/coffee-stock-api/internal/application/analytics"
	"github.com/jhoicas/coffee-stock-api/internal/application/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/coffee-stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/storage"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/ws"
	httpRouter "github.com/jhoicas/coffee-stock-api/internal/interfaces/http"
	"github.com/jhoicas/coffee-stock-api/pkg/config"
	"github.com/jhoicas/coffee-stock-api/pkg/logger"
)

// @title          Coffee Stock API
// @version        1.0
// @description    Inventario de granos y postres: catálogo, ajustes de stock con ledger y reportes.
// @BasePath       /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	backend, err := storage.Open(ctx, cfg, true)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Backend).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	productUC := usecase.NewProductUseCase(backend.Products)
	adjustStockUC := inventory.NewAdjustStockUseCase(backend.TxRunner, inventory.RetryConfig{
		MaxRetries: cfg.Inventory.MaxRetries,
		Backoff:    cfg.Inventory.RetryBackoff(),
	})
	queryUC := inventory.NewQueryUseCase(backend.TxRunner, backend.Products)
	replenishmentUC := inventory.NewReplenishmentUseCase(backend.Products, cfg.Inventory.LowStockThreshold)
	dashboardUC := appanalytics.NewDashboardUseCase(backend.Analytics, cfg.Inventory.LowStockThreshold)

	// PDF: kardex por producto
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	stockCardUC := inventory.NewStockCardUseCase(backend.TxRunner, pdfGenerator)

	// Notificaciones push de ajustes confirmados
	hub := ws.NewHub(256)
	go hub.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": backend.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		AdjustStock:   adjustStockUC,
		Query:         queryUC,
		StockCard:     stockCardUC,
		Replenishment: replenishmentUC,
		DashboardUC:   dashboardUC,
		Hub:           hub,
		JWTSecret:     cfg.JWT.Secret,
	})
	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

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
	cancelRun()

	log.Info().Msg("aplicación detenida")
}

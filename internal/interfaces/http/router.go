package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/coffee-stock-api/internal/application/analytics"
	"github.com/jhoicas/coffee-stock-api/internal/application/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/application/usecase"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/ws"
	"github.com/jhoicas/coffee-stock-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	AdjustStock   *inventory.AdjustStockUseCase
	Query         *inventory.QueryUseCase
	StockCard     *inventory.StockCardUseCase
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Hub           *ws.Hub // opcional
	JWTSecret     string  // vacío = escrituras sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	var notifier StockNotifier
	if deps.Hub != nil {
		notifier = deps.Hub
		registerWebSocket(app, deps.Hub)
	}

	// Escrituras: JWT + rol admin o clerk cuando hay secret configurado.
	write := []fiber.Handler{}
	if deps.JWTSecret != "" {
		write = append(write, AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin, jwt.RoleClerk))
	}
	guard := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, write...), h)
	}

	api := app.Group("/api/v1")

	productHandler := NewProductHandler(deps.ProductUC, deps.Query)
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.Query, deps.StockCard, deps.Replenishment, notifier)

	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", guard(productHandler.Create)...)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/stock/in", guard(inventoryHandler.StockIn)...)
	products.Post("/:id/stock/out", guard(inventoryHandler.StockOut)...)
	products.Get("/:id/transactions", inventoryHandler.History)
	products.Get("/:id/stock-card", inventoryHandler.StockCardPDF)

	api.Get("/inventory/replenishment-list", inventoryHandler.GetReplenishmentList)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}

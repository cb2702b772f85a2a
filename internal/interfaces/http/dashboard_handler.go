package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/coffee-stock-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del inventario.
// GET /api/v1/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_products, total_units, low_stock_count,
// low_stock_threshold, inventory_value, units_by_type).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, msgQuerySucceeded, summary)
}

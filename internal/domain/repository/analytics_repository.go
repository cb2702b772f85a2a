package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// InventorySummary agregados crudos del inventario; el use case los convierte en DTO.
type InventorySummary struct {
	TotalProducts  int
	TotalUnits     int64
	LowStockCount  int
	InventoryValue decimal.Decimal // Σ price * stock, sin desbordar int64
	UnitsByType    map[string]int64
}

// AnalyticsRepository consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetInventorySummary agrega el catálogo; LowStockCount cuenta productos con stock <= lowStockThreshold.
	GetInventorySummary(ctx context.Context, lowStockThreshold int64) (*InventorySummary, error)
}

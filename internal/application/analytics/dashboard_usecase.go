// Package analytics contiene los casos de uso de reportes sobre el inventario.
package analytics

import (
	"context"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/coffee-stock-api/internal/domain/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	lowStockThreshold int64
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, lowStockThreshold int64) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, lowStockThreshold: lowStockThreshold}
}

// GetSummary construye el DashboardSummaryDTO. Todos los tipos de producto aparecen
// en UnitsByType, con 0 si no hay unidades.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	s, err := uc.analyticsRepo.GetInventorySummary(ctx, uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	byType := make(map[string]int64, len(entity.ProductTypes))
	for _, t := range entity.ProductTypes {
		byType[t.String()] = s.UnitsByType[t.String()]
	}
	return &dto.DashboardSummaryDTO{
		TotalProducts:     s.TotalProducts,
		TotalUnits:        s.TotalUnits,
		LowStockCount:     s.LowStockCount,
		LowStockThreshold: uc.lowStockThreshold,
		InventoryValue:    s.InventoryValue.String(),
		AverageUnitPrice:  domaininv.WeightedAveragePrice(s.InventoryValue, s.TotalUnits).StringFixed(2),
		UnitsByType:       byType,
	}, nil
}

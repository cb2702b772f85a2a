package memory

import (
	"context"

	"github.com/shopspring/decimal"

	domaininv "github.com/jhoicas/coffee-stock-api/internal/domain/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados del inventario en memoria.
type AnalyticsRepo struct {
	store *Store
}

// NewAnalyticsRepository construye el repositorio sobre el Store.
func NewAnalyticsRepository(store *Store) *AnalyticsRepo {
	return &AnalyticsRepo{store: store}
}

// GetInventorySummary recorre el catálogo leyendo cada producto bajo su lock compartido.
func (r *AnalyticsRepo) GetInventorySummary(_ context.Context, lowStockThreshold int64) (*repository.InventorySummary, error) {
	s := &repository.InventorySummary{InventoryValue: decimal.Zero, UnitsByType: make(map[string]int64)}
	for _, st := range r.store.states() {
		p := st.current()
		s.TotalProducts++
		s.TotalUnits += p.Stock
		s.InventoryValue = s.InventoryValue.Add(domaininv.LineValue(p.Price, p.Stock))
		s.UnitsByType[p.Type.String()] += p.Stock
		if p.Stock <= lowStockThreshold {
			s.LowStockCount++
		}
	}
	return s, nil
}

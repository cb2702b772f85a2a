package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de inventario.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetInventorySummary agrega el catálogo por tipo en una sola consulta;
// los totales globales se suman en Go a partir de los grupos.
// SUM sobre BIGINT devuelve NUMERIC, que se lee como decimal.Decimal.
func (r *AnalyticsRepo) GetInventorySummary(ctx context.Context, lowStockThreshold int64) (*repository.InventorySummary, error) {
	const query = `
	SELECT
	    type,
	    COUNT(*)                                        AS products,
	    COALESCE(SUM(stock), 0)                         AS units,
	    COUNT(*) FILTER (WHERE stock <= $1)             AS low_stock,
	    COALESCE(SUM(price::numeric * stock), 0)        AS value
	FROM products
	GROUP BY type`

	rows, err := r.pool.Query(ctx, query, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	defer rows.Close()

	s := &repository.InventorySummary{InventoryValue: decimal.Zero, UnitsByType: make(map[string]int64)}
	for rows.Next() {
		var (
			productType   string
			products, low int
			units, value  decimal.Decimal
		)
		if err := rows.Scan(&productType, &products, &units, &low, &value); err != nil {
			return nil, fmt.Errorf("scan inventory summary: %w", err)
		}
		s.TotalProducts += products
		s.TotalUnits += units.IntPart()
		s.LowStockCount += low
		s.InventoryValue = s.InventoryValue.Add(value)
		s.UnitsByType[productType] = units.IntPart()
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory summary rows: %w", err)
	}
	return s, nil
}

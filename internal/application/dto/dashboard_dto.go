package dto

// DashboardSummaryDTO respuesta de GET /api/v1/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts     int              `json:"total_products"`
	TotalUnits        int64            `json:"total_units"`
	LowStockCount     int              `json:"low_stock_count"`
	LowStockThreshold int64            `json:"low_stock_threshold"`
	InventoryValue    string           `json:"inventory_value"`    // Σ price * stock, decimal exacto
	AverageUnitPrice  string           `json:"average_unit_price"` // inventory_value / total_units, 2 decimales
	UnitsByType       map[string]int64 `json:"units_by_type"`
}

// Package inventory servicios de dominio puros sobre cantidades y valores de stock.
package inventory

import (
	"math"

	"github.com/shopspring/decimal"
)

// IdealStockFactor el stock ideal tras reponer es umbral * IdealStockFactor.
const IdealStockFactor = 3

// StockOverflows indica si current + delta no cabe en int64. Solo aplica a entradas.
func StockOverflows(current, delta int64) bool {
	return delta > 0 && current > math.MaxInt64-delta
}

// LineValue valor de un producto en inventario (precio * stock) sin desbordar.
func LineValue(price, stock int64) decimal.Decimal {
	return decimal.NewFromInt(price).Mul(decimal.NewFromInt(stock))
}

// WeightedAveragePrice precio promedio ponderado por unidades en stock.
// Promedio = Σ(precio * stock) / Σ stock, redondeado a 2 decimales. Cero si no hay unidades.
func WeightedAveragePrice(inventoryValue decimal.Decimal, totalUnits int64) decimal.Decimal {
	if totalUnits <= 0 {
		return decimal.Zero
	}
	return inventoryValue.
		Div(decimal.NewFromInt(totalUnits)).
		Round(2)
}

// ReorderQuantity stock ideal y cantidad a pedir para un producto en o bajo el umbral.
func ReorderQuantity(stock, threshold int64) (ideal, qty int64) {
	ideal = threshold * IdealStockFactor
	qty = ideal - stock
	if qty < 0 {
		qty = 0
	}
	return ideal, qty
}

package dto

import (
	"time"

	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
)

// StockAdjustRequest body para POST /api/v1/products/{id}/stock/in|out.
type StockAdjustRequest struct {
	Quantity *int64 `json:"quantity" validate:"required"`
}

// StockAdjustResponse stock resultante tras un ajuste.
type StockAdjustResponse struct {
	ProductID int64 `json:"product_id"`
	Stock     int64 `json:"stock"`
}

// TransactionResponse entrada del ledger.
type TransactionResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionFromEntity convierte la entidad en su DTO de respuesta.
func TransactionFromEntity(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		ProductID: t.ProductID,
		Type:      t.Type.String(),
		Quantity:  t.Quantity,
		Timestamp: t.Timestamp,
	}
}

// StockEvent notificación push tras un ajuste confirmado.
type StockEvent struct {
	Type      string `json:"type"` // "stock_update"
	ProductID int64  `json:"product_id"`
	Direction string `json:"direction"`
	Quantity  int64  `json:"quantity"`
	Stock     int64  `json:"stock"`
}

// ReplenishmentSuggestionDTO producto en o bajo el umbral de stock bajo.
type ReplenishmentSuggestionDTO struct {
	ProductID         int64  `json:"product_id"`
	ProductName       string `json:"product_name"`
	Type              string `json:"type"`
	CurrentStock      int64  `json:"current_stock"`
	Threshold         int64  `json:"threshold"`
	IdealStock        int64  `json:"ideal_stock"`         // Threshold * 3
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // IdealStock - CurrentStock
	EstimatedCost     int64  `json:"estimated_cost"`      // SuggestedOrderQty * Price
	Priority          int    `json:"priority"`            // 1 = más urgente
}

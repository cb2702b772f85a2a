package repository

import (
	"context"

	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
)

// TransactionRepository ledger append-only de movimientos. No existe Update ni Delete.
type TransactionRepository interface {
	// Append registra un movimiento asignando ID y timestamp.
	Append(ctx context.Context, productID int64, direction entity.TransactionType, quantity int64) (*entity.Transaction, error)
	// FindByProduct devuelve los movimientos del producto, más recientes primero
	// (timestamp desc, empates por orden de inserción desc).
	FindByProduct(ctx context.Context, productID int64) ([]*entity.Transaction, error)
}

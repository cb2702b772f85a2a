package repository

import (
	"context"

	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	// Create valida y persiste el producto, asignándole ID y marcas de tiempo.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// List devuelve productos en orden de creación; limit <= 0 significa todos.
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)
	// GetForUpdate lee el producto y lo bloquea hasta el fin de la unidad de trabajo.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// ApplyStockDelta suma delta al stock y devuelve el nuevo valor.
	// Falla con NotFoundError o InsufficientStockError sin aplicar nada.
	ApplyStockDelta(ctx context.Context, id int64, delta int64) (int64, error)
}

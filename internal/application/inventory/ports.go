package inventory

import (
	"context"

	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad de trabajo, pasando repositorios atados a ella.
// Garantiza atomicidad para el motor de inventario: todo lo escrito en fn se confirma junto o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error

	// ReadOnly ejecuta fn sobre una instantánea consistente (sin escrituras).
	ReadOnly(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// StockCardPDFGenerator genera la representación PDF de un kardex.
type StockCardPDFGenerator interface {
	GenerateStockCardPDF(ctx context.Context, card *StockCard) ([]byte, error)
}

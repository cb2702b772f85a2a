package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

// StockCard kardex de un producto: movimientos con el saldo después de cada uno.
type StockCard struct {
	Product        entity.Product
	OpeningBalance int64 // stock previo al primer movimiento registrado
	Lines          []StockCardLine
	GeneratedAt    time.Time
}

// StockCardLine un movimiento del kardex en orden cronológico.
type StockCardLine struct {
	TransactionID int64
	Timestamp     time.Time
	Type          entity.TransactionType
	Quantity      int64
	Balance       int64
}

// StockCardUseCase arma el kardex y su PDF a partir de una instantánea consistente.
type StockCardUseCase struct {
	txRunner  TxRunner
	generator StockCardPDFGenerator
}

// NewStockCardUseCase construye el caso de uso.
func NewStockCardUseCase(txRunner TxRunner, generator StockCardPDFGenerator) *StockCardUseCase {
	return &StockCardUseCase{txRunner: txRunner, generator: generator}
}

// Build lee producto y ledger en la misma instantánea y calcula los saldos.
func (uc *StockCardUseCase) Build(ctx context.Context, productID int64) (*StockCard, error) {
	var card *StockCard
	err := uc.txRunner.ReadOnly(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		p, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.NotFoundError{ProductID: productID}
		}
		history, err := txRepo.FindByProduct(ctx, productID)
		if err != nil {
			return err
		}
		card = buildStockCard(p, history)
		return nil
	})
	if err != nil {
		return nil, err
	}
	card.GeneratedAt = time.Now()
	return card, nil
}

// DownloadPDF genera el kardex en PDF.
func (uc *StockCardUseCase) DownloadPDF(ctx context.Context, productID int64) ([]byte, error) {
	card, err := uc.Build(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateStockCardPDF(ctx, card)
}

// buildStockCard recorre el historial (más reciente primero) desde el stock actual hacia atrás.
func buildStockCard(p *entity.Product, history []*entity.Transaction) *StockCard {
	lines := make([]StockCardLine, len(history))
	balance := p.Stock
	for i, t := range history {
		lines[len(history)-1-i] = StockCardLine{
			TransactionID: t.ID,
			Timestamp:     t.Timestamp,
			Type:          t.Type,
			Quantity:      t.Quantity,
			Balance:       balance,
		}
		balance -= t.Type.Delta(t.Quantity)
	}
	return &StockCard{Product: *p, OpeningBalance: balance, Lines: lines}
}

package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/coffee-stock-api/internal/domain/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

// RetryConfig reintentos ante conflictos de concurrencia del almacenamiento.
type RetryConfig struct {
	MaxRetries int
	Backoff    time.Duration
}

// AdjustStockUseCase motor de ajustes: única vía de escritura del stock.
// Cada ajuste corre en una unidad de trabajo con el producto bloqueado (SELECT FOR UPDATE o
// mutex por producto), de modo que validación, actualización y asiento en el ledger son atómicos
// y los ajustes concurrentes sobre el mismo producto se serializan.
type AdjustStockUseCase struct {
	txRunner TxRunner
	retry    RetryConfig
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, retry RetryConfig) *AdjustStockUseCase {
	if retry.MaxRetries < 0 {
		retry.MaxRetries = 0
	}
	return &AdjustStockUseCase{txRunner: txRunner, retry: retry}
}

// StockIn registra una entrada de quantity unidades.
func (uc *AdjustStockUseCase) StockIn(ctx context.Context, productID, quantity int64) (int64, error) {
	return uc.Adjust(ctx, productID, entity.TransactionIn, quantity)
}

// StockOut registra una salida de quantity unidades.
func (uc *AdjustStockUseCase) StockOut(ctx context.Context, productID, quantity int64) (int64, error) {
	return uc.Adjust(ctx, productID, entity.TransactionOut, quantity)
}

// Adjust valida y aplica un movimiento y devuelve el stock resultante.
// Orden de validación: cantidad (ValidationError), existencia (NotFoundError),
// stock suficiente en OUT (InsufficientStockError) o capacidad en IN (ValidationError).
// Ante un error no queda ningún efecto.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, productID int64, direction entity.TransactionType, quantity int64) (int64, error) {
	if err := entity.ValidateMovement(direction, quantity); err != nil {
		return 0, err
	}

	attempts := uc.retry.MaxRetries + 1
	for attempt := 1; ; attempt++ {
		var newStock int64
		err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
			var err error
			newStock, err = applyMovement(ctx, productRepo, txRepo, productID, direction, quantity)
			return err
		})
		if err == nil {
			return newStock, nil
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return 0, err
		}
		if attempt >= attempts {
			// Se devuelve un error genérico: el conflicto no sale del motor como tipo propio.
			return 0, fmt.Errorf("adjust stock of product %d: gave up after %d attempts due to concurrent updates", productID, attempts)
		}
		log.Warn().
			Int64("product_id", productID).
			Str("direction", direction.String()).
			Int("attempt", attempt).
			Msg("conflicto de concurrencia, reintentando ajuste")
		if err := sleepContext(ctx, uc.retry.Backoff*time.Duration(attempt)); err != nil {
			return 0, err
		}
	}
}

// applyMovement ejecuta el ajuste con los repositorios de la unidad de trabajo.
func applyMovement(
	ctx context.Context,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	productID int64,
	direction entity.TransactionType,
	quantity int64,
) (int64, error) {
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, &domain.NotFoundError{ProductID: productID}
	}
	if direction == entity.TransactionOut && product.Stock < quantity {
		return 0, &domain.InsufficientStockError{ProductID: productID, Current: product.Stock}
	}
	if domaininv.StockOverflows(product.Stock, direction.Delta(quantity)) {
		return 0, domain.NewStockOverflowError(product.Stock)
	}

	newStock, err := productRepo.ApplyStockDelta(ctx, productID, direction.Delta(quantity))
	if err != nil {
		return 0, err
	}
	if _, err := txRepo.Append(ctx, productID, direction, quantity); err != nil {
		return 0, err
	}
	return newStock, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package memory

import (
	"context"

	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger fuera de una unidad de trabajo.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepository construye el repositorio sobre el Store.
func NewTransactionRepository(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Append registra el movimiento al final del ledger del producto.
func (r *TransactionRepo) Append(_ context.Context, productID int64, direction entity.TransactionType, quantity int64) (*entity.Transaction, error) {
	if err := entity.ValidateMovement(direction, quantity); err != nil {
		return nil, err
	}
	st := r.store.state(productID)
	if st == nil {
		return nil, &domain.NotFoundError{ProductID: productID}
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	t := r.store.nextTransaction(productID, direction, quantity)
	st.ledger = append(st.ledger, t)
	return &t, nil
}

// FindByProduct movimientos más recientes primero; vacío si no hay o el producto no existe.
func (r *TransactionRepo) FindByProduct(_ context.Context, productID int64) ([]*entity.Transaction, error) {
	st := r.store.state(productID)
	if st == nil {
		return []*entity.Transaction{}, nil
	}
	_, ledger := st.snapshot()
	return newestFirst(ledger), nil
}

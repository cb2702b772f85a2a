package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger append-only sobre la tabla transactions (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Append inserta el movimiento; id y created_at los asigna la base.
func (r *TransactionRepo) Append(ctx context.Context, productID int64, direction entity.TransactionType, quantity int64) (*entity.Transaction, error) {
	if err := entity.ValidateMovement(direction, quantity); err != nil {
		return nil, err
	}
	query := `
		INSERT INTO transactions (product_id, type, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	t := entity.Transaction{ProductID: productID, Type: direction, Quantity: quantity}
	err := r.q.QueryRow(ctx, query, productID, direction.String(), quantity).Scan(&t.ID, &t.Timestamp)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, &domain.NotFoundError{ProductID: productID}
		}
		return nil, classify("insert transaction", err)
	}
	return &t, nil
}

// FindByProduct movimientos del producto, más recientes primero (created_at DESC, id DESC).
func (r *TransactionRepo) FindByProduct(ctx context.Context, productID int64) ([]*entity.Transaction, error) {
	query := `
		SELECT id, product_id, type, quantity, created_at
		FROM transactions
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, classify("list transactions", err)
	}
	defer rows.Close()

	list := []*entity.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions rows: %w", err)
	}
	return list, nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var (
		t       entity.Transaction
		rawType string
	)
	if err := row.Scan(&t.ID, &t.ProductID, &rawType, &t.Quantity, &t.Timestamp); err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	direction, err := entity.ParseTransactionType(rawType)
	if err != nil {
		return nil, fmt.Errorf("decode transaction %d: %w", t.ID, err)
	}
	t.Type = direction
	return &t, nil
}

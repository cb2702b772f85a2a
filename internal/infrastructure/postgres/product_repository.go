package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, type, price, stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create valida y persiste el producto; ID y marcas de tiempo los asigna la base.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO products (name, type, price, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Type.String(), product.Price, product.Stock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("product", "product violates catalogue constraints")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get product", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get product for update", err)
	}
	return p, nil
}

// List productos en orden de creación con paginación; limit <= 0 devuelve todos.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id ASC OFFSET $1`
	args := []any{offset}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products rows: %w", err)
	}
	return list, nil
}

// Count número total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ApplyStockDelta actualización condicional: la fila solo cambia si el resultado no es negativo.
// Si no se actualiza nada se distingue entre producto inexistente y stock insuficiente.
func (r *ProductRepo) ApplyStockDelta(ctx context.Context, id int64, delta int64) (int64, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock`
	var stock int64
	err := r.q.QueryRow(ctx, query, id, delta).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if isCheckViolation(err) {
		return 0, r.insufficient(ctx, id)
	}
	if isNumericOutOfRange(err) {
		return 0, r.overflow(ctx, id)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, classify("apply stock delta", err)
	}
	return 0, r.insufficient(ctx, id)
}

// insufficient construye el error de dominio según el estado actual de la fila.
func (r *ProductRepo) insufficient(ctx context.Context, id int64) error {
	var current int64
	err := r.q.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.NotFoundError{ProductID: id}
		}
		return classify("read stock", err)
	}
	return &domain.InsufficientStockError{ProductID: id, Current: current}
}

// overflow construye el error de validación con el stock vigente.
func (r *ProductRepo) overflow(ctx context.Context, id int64) error {
	var current int64
	if err := r.q.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&current); err != nil {
		return classify("read stock", err)
	}
	return domain.NewStockOverflowError(current)
}

// scanProduct decodifica una fila; un tipo desconocido en la base es un error explícito.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p       entity.Product
		rawType string
	)
	if err := row.Scan(&p.ID, &p.Name, &rawType, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	t, err := entity.ParseProductType(rawType)
	if err != nil {
		return nil, fmt.Errorf("decode product %d: %w", p.ID, err)
	}
	p.Type = t
	return &p, nil
}

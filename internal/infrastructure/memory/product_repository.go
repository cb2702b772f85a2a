package memory

import (
	"context"

	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/coffee-stock-api/internal/domain/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo acceso a productos fuera de una unidad de trabajo.
// Cada operación es atómica por sí sola; GetForUpdate no retiene el lock tras retornar.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el repositorio sobre el Store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create valida y publica el producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	r.store.nextProduct(product)
	r.store.publish(*product, nil)
	return nil
}

// GetByID devuelve una copia del producto o nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	st := r.store.state(id)
	if st == nil {
		return nil, nil
	}
	p := st.current()
	return &p, nil
}

// List productos en orden de creación; limit <= 0 devuelve todos desde offset.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	return listStates(r.store.states(), limit, offset), nil
}

// Count número de productos.
func (r *ProductRepo) Count(_ context.Context) (int64, error) {
	return r.store.count(), nil
}

// GetForUpdate fuera de una unidad de trabajo equivale a GetByID.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// ApplyStockDelta aplica delta bajo el lock exclusivo del producto.
func (r *ProductRepo) ApplyStockDelta(_ context.Context, id int64, delta int64) (int64, error) {
	st := r.store.state(id)
	if st == nil {
		return 0, &domain.NotFoundError{ProductID: id}
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if domaininv.StockOverflows(st.product.Stock, delta) {
		return 0, domain.NewStockOverflowError(st.product.Stock)
	}
	next := st.product.Stock + delta
	if next < 0 {
		return 0, &domain.InsufficientStockError{ProductID: id, Current: st.product.Stock}
	}
	st.product.Stock = next
	st.product.UpdatedAt = r.store.now()
	return next, nil
}

func listStates(states []*productState, limit, offset int) []*entity.Product {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(states) {
		return []*entity.Product{}
	}
	states = states[offset:]
	if limit > 0 && limit < len(states) {
		states = states[:limit]
	}
	out := make([]*entity.Product, 0, len(states))
	for _, st := range states {
		p := st.current()
		out = append(out, &p)
	}
	return out
}

package memory_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/memory"
)

func newProduct(t *testing.T, name string, stock int64) *entity.Product {
	t.Helper()
	p, err := entity.NewProduct(name, entity.ProductTypeBean, 1000, stock)
	require.NoError(t, err)
	return p
}

func TestProductRepo_CreateAsignaIDsEnOrden(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store := memory.NewStore(memory.WithClock(func() time.Time { return fixed }))
	repo := memory.NewProductRepository(store)
	ctx := context.Background()

	a := newProduct(t, "A", 1)
	b := newProduct(t, "B", 2)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.Equal(t, fixed, a.CreatedAt)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepo_CreateRechazaInvalidos(t *testing.T) {
	repo := memory.NewProductRepository(memory.NewStore())
	err := repo.Create(context.Background(), &entity.Product{Name: "x", Type: entity.ProductTypeBean, Price: 0})
	assert.True(t, domain.IsValidation(err))

	n, _ := repo.Count(context.Background())
	assert.Zero(t, n)
}

func TestProductRepo_ListPaginado(t *testing.T) {
	repo := memory.NewProductRepository(memory.NewStore())
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C", "D"} {
		require.NoError(t, repo.Create(ctx, newProduct(t, name, 1)))
	}

	all, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page, err := repo.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "B", page[0].Name)
	assert.Equal(t, "C", page[1].Name)

	beyond, err := repo.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestProductRepo_ApplyStockDelta(t *testing.T) {
	repo := memory.NewProductRepository(memory.NewStore())
	ctx := context.Background()
	p := newProduct(t, "A", 10)
	require.NoError(t, repo.Create(ctx, p))

	stock, err := repo.ApplyStockDelta(ctx, p.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stock)

	_, err = repo.ApplyStockDelta(ctx, p.ID, -7)
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(6), insufficient.Current)

	_, err = repo.ApplyStockDelta(ctx, 99, 1)
	assert.True(t, domain.IsNotFound(err))

	_, err = repo.ApplyStockDelta(ctx, p.ID, math.MaxInt64)
	assert.True(t, domain.IsValidation(err), "una entrada que desborda no es stock insuficiente")
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Stock)
}

func TestTransactionRepo_AppendYOrden(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store := memory.NewStore(memory.WithClock(func() time.Time { return fixed }))
	products := memory.NewProductRepository(store)
	ledger := memory.NewTransactionRepository(store)
	ctx := context.Background()
	p := newProduct(t, "A", 10)
	require.NoError(t, products.Create(ctx, p))

	_, err := ledger.Append(ctx, p.ID, entity.TransactionIn, 5)
	require.NoError(t, err)
	_, err = ledger.Append(ctx, p.ID, entity.TransactionOut, 2)
	require.NoError(t, err)

	list, err := ledger.FindByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.TransactionOut, list[0].Type, "a igual timestamp gana el último insertado")

	_, err = ledger.Append(ctx, 99, entity.TransactionIn, 1)
	assert.True(t, domain.IsNotFound(err))
	_, err = ledger.Append(ctx, p.ID, entity.TransactionIn, 0)
	assert.True(t, domain.IsValidation(err))

	missing, err := ledger.FindByProduct(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestTxRunner_RollbackDescartaEscrituras(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	ledger := memory.NewTransactionRepository(store)
	runner := memory.NewTxRunner(store)
	ctx := context.Background()
	p := newProduct(t, "A", 10)
	require.NoError(t, products.Create(ctx, p))

	boom := errors.New("boom")
	err := runner.Run(ctx, func(pr repository.ProductRepository, tr repository.TransactionRepository) error {
		stock, err := pr.ApplyStockDelta(ctx, p.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(15), stock)

		seen, err := pr.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(15), seen.Stock, "la unidad de trabajo ve sus propias escrituras")

		_, err = tr.Append(ctx, p.ID, entity.TransactionIn, 5)
		require.NoError(t, err)

		extra := newProduct(t, "B", 1)
		require.NoError(t, pr.Create(ctx, extra))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _ := products.GetByID(ctx, p.ID)
	assert.Equal(t, int64(10), got.Stock)
	h, _ := ledger.FindByProduct(ctx, p.ID)
	assert.Empty(t, h)
	n, _ := products.Count(ctx)
	assert.Equal(t, int64(1), n)
}

func TestTxRunner_ApplyStockDeltaDesbordeEsValidacion(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	runner := memory.NewTxRunner(store)
	ctx := context.Background()
	p := newProduct(t, "A", 10)
	require.NoError(t, products.Create(ctx, p))

	err := runner.Run(ctx, func(pr repository.ProductRepository, _ repository.TransactionRepository) error {
		_, err := pr.ApplyStockDelta(ctx, p.ID, math.MaxInt64)
		return err
	})
	assert.True(t, domain.IsValidation(err))

	got, _ := products.GetByID(ctx, p.ID)
	assert.Equal(t, int64(10), got.Stock)
}

func TestTxRunner_CommitPublica(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	ledger := memory.NewTransactionRepository(store)
	runner := memory.NewTxRunner(store)
	ctx := context.Background()
	p := newProduct(t, "A", 10)
	require.NoError(t, products.Create(ctx, p))

	var created *entity.Product
	err := runner.Run(ctx, func(pr repository.ProductRepository, tr repository.TransactionRepository) error {
		locked, err := pr.GetForUpdate(ctx, p.ID)
		if err != nil {
			return err
		}
		if _, err := pr.ApplyStockDelta(ctx, locked.ID, -3); err != nil {
			return err
		}
		if _, err := tr.Append(ctx, locked.ID, entity.TransactionOut, 3); err != nil {
			return err
		}
		created = newProduct(t, "B", 4)
		if err := pr.Create(ctx, created); err != nil {
			return err
		}
		list, err := pr.List(ctx, 0, 0)
		if err != nil {
			return err
		}
		assert.Len(t, list, 2)
		return nil
	})
	require.NoError(t, err)

	got, _ := products.GetByID(ctx, p.ID)
	assert.Equal(t, int64(7), got.Stock)
	h, _ := ledger.FindByProduct(ctx, p.ID)
	require.Len(t, h, 1)
	assert.Equal(t, int64(3), h[0].Quantity)

	b, _ := products.GetByID(ctx, created.ID)
	require.NotNil(t, b)
	assert.Equal(t, "B", b.Name)
}

func TestTxRunner_ReadOnlyRechazaEscrituras(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	runner := memory.NewTxRunner(store)
	ctx := context.Background()
	p := newProduct(t, "A", 10)
	require.NoError(t, products.Create(ctx, p))

	err := runner.ReadOnly(ctx, func(pr repository.ProductRepository, tr repository.TransactionRepository) error {
		got, err := pr.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.Stock)

		_, err = pr.ApplyStockDelta(ctx, p.ID, 1)
		assert.Error(t, err)
		_, err = tr.Append(ctx, p.ID, entity.TransactionIn, 1)
		assert.Error(t, err)
		return nil
	})
	require.NoError(t, err)

	got, _ := products.GetByID(ctx, p.ID)
	assert.Equal(t, int64(10), got.Stock)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	runner := memory.NewTxRunner(memory.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := runner.Run(ctx, func(repository.ProductRepository, repository.TransactionRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	"github.com/jhoicas/coffee-stock-api/internal/application/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/memory"
)

func TestQuery_ListarEnOrdenDeCreacion(t *testing.T) {
	f := newFixture(t)
	query := inventory.NewQueryUseCase(f.runner, f.products)

	empty, err := query.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	f.seed(t, "Kenya AA", entity.ProductTypeBean, 18000, 10)
	f.seed(t, "Brownie", entity.ProductTypeDessert, 4000, 3)
	f.seed(t, "Huila", entity.ProductTypeBean, 16000, 0)

	list, err := query.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Kenya AA", list[0].Name)
	assert.Equal(t, "Brownie", list[1].Name)
	assert.Equal(t, "Huila", list[2].Name)

	page, err := query.ListProductsPage(context.Background(), dto.PageRequest{Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Huila", page.Items[0].Name)
	require.NotNil(t, page.PageInfo)
	assert.Equal(t, 2, page.PageInfo.TotalPage)
	assert.Equal(t, int64(3), page.PageInfo.TotalDataCount)

	all, err := query.ListProductsPage(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Nil(t, all.PageInfo)
}

func TestQuery_GetProduct(t *testing.T) {
	f := newFixture(t)
	query := inventory.NewQueryUseCase(f.runner, f.products)
	p := f.seed(t, "Kenya AA", entity.ProductTypeBean, 18000, 10)

	got, err := query.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "BEAN", got.Type)
	assert.Equal(t, int64(18000), got.Price)

	_, err = query.GetProduct(context.Background(), 9999)
	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(9999), notFound.ProductID)
}

func TestQuery_HistorialMasRecientePrimero(t *testing.T) {
	// Reloj fijo: todos los movimientos comparten timestamp y el desempate es por inserción.
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	store := memory.NewStore(memory.WithClock(func() time.Time { return fixed }))
	runner := memory.NewTxRunner(store)
	products := memory.NewProductRepository(store)
	adjust := inventory.NewAdjustStockUseCase(runner, inventory.RetryConfig{})
	query := inventory.NewQueryUseCase(runner, products)

	p, err := entity.NewProduct("Guatemala", entity.ProductTypeBean, 17000, 100)
	require.NoError(t, err)
	require.NoError(t, products.Create(context.Background(), p))

	empty, err := query.GetTransactionHistory(context.Background(), p.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = adjust.StockIn(context.Background(), p.ID, 50)
	require.NoError(t, err)
	_, err = adjust.StockOut(context.Background(), p.ID, 30)
	require.NoError(t, err)

	history, err := query.GetTransactionHistory(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "OUT", history[0].Type)
	assert.Equal(t, int64(30), history[0].Quantity)
	assert.Equal(t, "IN", history[1].Type)
	assert.Equal(t, int64(50), history[1].Quantity)
	assert.Greater(t, history[0].ID, history[1].ID)
	assert.True(t, history[0].Timestamp.Equal(fixed))

	_, err = query.GetTransactionHistory(context.Background(), 9999)
	assert.True(t, domain.IsNotFound(err))
}

package inventory

import (
	"context"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	"github.com/jhoicas/coffee-stock-api/internal/domain"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

// QueryUseCase vistas de solo lectura sobre productos y ledger.
type QueryUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{txRunner: txRunner, productRepo: productRepo}
}

// ListProducts todos los productos en orden de creación.
func (uc *QueryUseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductFromEntity(p))
	}
	return out, nil
}

// ListProductsPage una página de productos y sus metadatos; sin paginación equivale a ListProducts.
func (uc *QueryUseCase) ListProductsPage(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if !page.Enabled() {
		items, err := uc.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.ProductListResponse{Items: items}, nil
	}
	total, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	list, err := uc.productRepo.List(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductFromEntity(p))
	}
	return &dto.ProductListResponse{Items: items, PageInfo: dto.NewPageInfo(total, page.Size)}, nil
}

// GetProduct devuelve el producto o NotFoundError.
func (uc *QueryUseCase) GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{ProductID: id}
	}
	out := dto.ProductFromEntity(p)
	return &out, nil
}

// GetTransactionHistory movimientos del producto, más recientes primero.
// La existencia del producto y el ledger se leen en la misma instantánea.
func (uc *QueryUseCase) GetTransactionHistory(ctx context.Context, productID int64) ([]dto.TransactionResponse, error) {
	var out []dto.TransactionResponse
	err := uc.txRunner.ReadOnly(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		p, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.NotFoundError{ProductID: productID}
		}
		list, err := txRepo.FindByProduct(ctx, productID)
		if err != nil {
			return err
		}
		out = make([]dto.TransactionResponse, 0, len(list))
		for _, t := range list {
			out = append(out, dto.TransactionFromEntity(t))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

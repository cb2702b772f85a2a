package usecase

import (
	"context"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

// ProductUseCase alta de productos. El stock posterior solo cambia vía el motor de ajustes.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create valida y crea un producto con su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	productType, err := entity.ParseProductType(in.Type)
	if err != nil {
		return nil, err
	}
	var price, stock int64
	if in.Price != nil {
		price = *in.Price
	}
	if in.Stock != nil {
		stock = *in.Stock
	}
	product, err := entity.NewProduct(in.Name, productType, price, stock)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ProductFromEntity(product)
	return &out, nil
}

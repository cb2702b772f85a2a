package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	domaininv "github.com/jhoicas/coffee-stock-api/internal/domain/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo el umbral de stock bajo,
// priorizados por stock relativo al umbral.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	threshold   int64
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository, threshold int64) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo, threshold: threshold}
}

// GenerateReplenishmentList devuelve las sugerencias ordenadas por prioridad (1 = más urgente).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	out := []dto.ReplenishmentSuggestionDTO{}
	for _, p := range products {
		if p.Stock > uc.threshold {
			continue
		}
		ideal, qty := domaininv.ReorderQuantity(p.Stock, uc.threshold)
		out = append(out, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			ProductName:       p.Name,
			Type:              p.Type.String(),
			CurrentStock:      p.Stock,
			Threshold:         uc.threshold,
			IdealStock:        ideal,
			SuggestedOrderQty: qty,
			EstimatedCost:     qty * p.Price,
		})
	}

	// Menor stock primero; a igual stock, el de mayor costo de reposición.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CurrentStock != out[j].CurrentStock {
			return out[i].CurrentStock < out[j].CurrentStock
		}
		return out[i].EstimatedCost > out[j].EstimatedCost
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}

package dto

import (
	"time"

	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/v1/products.
// Price y Stock son punteros para distinguir "ausente" de cero.
type CreateProductRequest struct {
	Name  string `json:"name" validate:"required"`
	Type  string `json:"type" validate:"required"`
	Price *int64 `json:"price" validate:"required"`
	Stock *int64 `json:"stock" validate:"required"`
}

// ProductResponse respuesta de producto.
type ProductResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Price     int64     `json:"price"`
	Stock     int64     `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductListResponse listado de productos con paginación opcional.
type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	PageInfo *PageInfo         `json:"page_info,omitempty"`
}

// ProductFromEntity convierte la entidad en su DTO de respuesta.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type.String(),
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
	}
}

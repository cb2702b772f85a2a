package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/coffee-stock-api/internal/domain"
)

// ProductType categoría cerrada de producto.
type ProductType string

const (
	ProductTypeBean    ProductType = "BEAN"
	ProductTypeDessert ProductType = "DESSERT"
)

// ProductTypes lista los valores válidos en orden estable.
var ProductTypes = []ProductType{ProductTypeBean, ProductTypeDessert}

// ParseProductType decodifica s; cualquier valor fuera del conjunto es un error, nunca un default.
func ParseProductType(s string) (ProductType, error) {
	switch t := ProductType(strings.TrimSpace(s)); t {
	case ProductTypeBean, ProductTypeDessert:
		return t, nil
	default:
		return "", domain.NewValidationError("type", "invalid product type: "+s)
	}
}

func (t ProductType) String() string { return string(t) }

// Product registro de catálogo con su contador de stock.
// Stock solo lo modifica el motor de ajustes; el resto de campos es inmutable tras la creación.
type Product struct {
	ID        int64
	Name      string
	Type      ProductType
	Price     int64
	Stock     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct construye y valida un producto aún no persistido.
func NewProduct(name string, productType ProductType, price, stock int64) (*Product, error) {
	p := &Product{
		Name:  strings.TrimSpace(name),
		Type:  productType,
		Price: price,
		Stock: stock,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate aplica las reglas de creación: nombre, tipo, price > 0, stock >= 0.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.NewValidationError("name", "name is required")
	}
	if _, err := ParseProductType(string(p.Type)); err != nil {
		return err
	}
	if p.Price <= 0 {
		return domain.NewValidationError("price", "price must be greater than 0")
	}
	if p.Stock < 0 {
		return domain.NewValidationError("stock", "stock must not be negative")
	}
	return nil
}

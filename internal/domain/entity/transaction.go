package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/coffee-stock-api/internal/domain"
)

// TransactionType dirección de un movimiento de stock.
type TransactionType string

const (
	TransactionIn  TransactionType = "IN"
	TransactionOut TransactionType = "OUT"
)

// ParseTransactionType decodifica s a IN u OUT; el resto falla explícitamente.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.TrimSpace(s)); t {
	case TransactionIn, TransactionOut:
		return t, nil
	default:
		return "", domain.NewValidationError("direction", "invalid transaction type: "+s)
	}
}

func (t TransactionType) String() string { return string(t) }

// Delta devuelve la variación firmada de stock que produce quantity en esta dirección.
func (t TransactionType) Delta(quantity int64) int64 {
	if t == TransactionOut {
		return -quantity
	}
	return quantity
}

// Transaction entrada inmutable del ledger. Se crea una sola vez y nunca se modifica ni borra.
type Transaction struct {
	ID        int64
	ProductID int64
	Type      TransactionType
	Quantity  int64
	Timestamp time.Time
}

// ValidateMovement reglas comunes a cualquier movimiento: cantidad positiva y dirección conocida.
func ValidateMovement(direction TransactionType, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "quantity must be greater than 0")
	}
	if _, err := ParseTransactionType(string(direction)); err != nil {
		return err
	}
	return nil
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los tipos concretos de abajo responden a errors.Is con estos sentinels.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("product does not exist")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")

	// ErrConcurrencyConflict es interno: el motor lo reintenta y nunca lo expone como tipo propio.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")
)

// ValidationError entrada rechazada antes de cualquier efecto.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un ValidationError para el campo dado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewStockOverflowError una entrada que llevaría el stock más allá del máximo representable.
func NewStockOverflowError(current int64) *ValidationError {
	return NewValidationError("quantity", fmt.Sprintf("quantity exceeds the maximum storable stock, current stock: %d", current))
}

// NotFoundError el producto referenciado no existe.
type NotFoundError struct {
	ProductID int64
}

func (e *NotFoundError) Error() string { return ErrNotFound.Error() }

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError una salida pide más unidades de las disponibles.
type InsufficientStockError struct {
	ProductID int64
	Current   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock, current stock: %d", e.Current)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// IsValidation, IsNotFound e IsInsufficientStock atajos para las capas externas.
func IsValidation(err error) bool        { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool          { return errors.Is(err, ErrNotFound) }
func IsInsufficientStock(err error) bool { return errors.Is(err, ErrInsufficientStock) }

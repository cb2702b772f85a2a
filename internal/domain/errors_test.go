package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErroresTipados_IsYMensajes(t *testing.T) {
	v := NewValidationError("quantity", "quantity must be greater than 0")
	assert.True(t, errors.Is(v, ErrValidation))
	assert.Equal(t, "quantity must be greater than 0", v.Error())

	nf := &NotFoundError{ProductID: 7}
	assert.True(t, IsNotFound(nf))
	assert.Equal(t, "product does not exist", nf.Error())

	ins := &InsufficientStockError{ProductID: 7, Current: 10}
	assert.True(t, IsInsufficientStock(ins))
	assert.Equal(t, "insufficient stock, current stock: 10", ins.Error())

	wrapped := fmt.Errorf("adjust: %w", ins)
	assert.True(t, IsInsufficientStock(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, errors.Is(wrapped, ErrConcurrencyConflict))
}

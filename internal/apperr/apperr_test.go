package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("product", 42)

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "product not found with id: 42", err.Error())

	// Still recognized through wrapping.
	wrapped := fmt.Errorf("loading product: %w", err)
	assert.True(t, IsNotFound(wrapped))

	var nf *NotFoundError
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, int64(42), nf.ID)
}

func TestInsufficientStock(t *testing.T) {
	err := InsufficientStock(7, 50, 10)

	assert.True(t, IsInsufficientStock(err))
	assert.False(t, IsNotFound(err))

	var is *InsufficientStockError
	assert.True(t, errors.As(err, &is))
	assert.Equal(t, int64(7), is.ProductID)
	assert.Equal(t, 50, is.Requested)
	assert.Equal(t, 10, is.Available)
}

func TestInvalidState(t *testing.T) {
	err := InvalidState("cannot modify a finalized order", "COMPLETED", "PENDING")

	assert.True(t, IsInvalidState(err))
	assert.Equal(t, "cannot modify a finalized order", err.Error())

	var is *InvalidStateError
	assert.True(t, errors.As(err, &is))
	assert.Equal(t, "COMPLETED", is.Current)
	assert.Equal(t, "PENDING", is.Required)
}

func TestConflict(t *testing.T) {
	err := Conflict("product", 3, "cannot delete product because it is used in existing orders")

	assert.True(t, IsConflict(err))
	assert.Equal(t, "cannot delete product because it is used in existing orders", err.Error())
}

func TestValidation(t *testing.T) {
	err := Validation("customer_name", "must be between 2 and 100 characters")

	assert.True(t, IsValidation(err))
	assert.Equal(t, "customer_name: must be between 2 and 100 characters", err.Error())
	assert.False(t, IsConflict(err))
}

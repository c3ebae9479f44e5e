package order

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront-be/internal/apperr"
)

func TestTotalAmount(t *testing.T) {
	t.Run("Sum of item subtotals", func(t *testing.T) {
		o := Order{
			Items: []OrderItem{
				{Subtotal: decimal.RequireFromString("1299.99")},
				{Subtotal: decimal.RequireFromString("199.98")},
				{Subtotal: decimal.RequireFromString("149.99")},
			},
		}

		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("1649.96")))
	})

	t.Run("Empty order totals zero", func(t *testing.T) {
		o := Order{}
		assert.True(t, o.TotalAmount().Equal(decimal.Zero))
	})
}

func TestSubtotal(t *testing.T) {
	unitPrice := decimal.RequireFromString("50.00")

	assert.True(t, Subtotal(unitPrice, 3).Equal(decimal.RequireFromString("150.00")))
	assert.True(t, Subtotal(unitPrice, 5).Equal(decimal.RequireFromString("250.00")))

	// No rounding drift on awkward prices.
	assert.True(t, Subtotal(decimal.RequireFromString("0.01"), 7).Equal(decimal.RequireFromString("0.07")))
	assert.True(t, Subtotal(decimal.RequireFromString("19.99"), 3).Equal(decimal.RequireFromString("59.97")))
}

func TestCustomerInputValidate(t *testing.T) {
	valid := CustomerInput{CustomerName: "John Doe", CustomerEmail: "john.doe@example.com"}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("Name too short", func(t *testing.T) {
		in := valid
		in.CustomerName = "J"
		assert.True(t, apperr.IsValidation(in.Validate()))
	})

	t.Run("Name too long", func(t *testing.T) {
		in := valid
		in.CustomerName = strings.Repeat("x", 101)
		assert.True(t, apperr.IsValidation(in.Validate()))
	})

	t.Run("Single multibyte rune too short", func(t *testing.T) {
		in := valid
		in.CustomerName = "李"
		assert.True(t, apperr.IsValidation(in.Validate()))
	})

	t.Run("Multibyte names measure in runes", func(t *testing.T) {
		in := valid
		in.CustomerName = strings.Repeat("李", 100)
		assert.NoError(t, in.Validate())

		in.CustomerName = strings.Repeat("李", 101)
		assert.True(t, apperr.IsValidation(in.Validate()))
	})

	t.Run("Missing email", func(t *testing.T) {
		in := valid
		in.CustomerEmail = ""
		assert.True(t, apperr.IsValidation(in.Validate()))
	})

	t.Run("Malformed email", func(t *testing.T) {
		in := valid
		in.CustomerEmail = "not-an-email"
		assert.True(t, apperr.IsValidation(in.Validate()))
	})
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, ValidateQuantity(1))
	assert.NoError(t, ValidateQuantity(100))
	assert.True(t, apperr.IsValidation(ValidateQuantity(0)))
	assert.True(t, apperr.IsValidation(ValidateQuantity(-3)))
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{
		StatusPending, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusCompleted,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, Status("UNKNOWN").Valid())
}

package product

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront-be/internal/apperr"
)

func TestInputValidate(t *testing.T) {
	valid := Input{
		Name:          "Laptop Dell XPS 15",
		Description:   "High-performance laptop with Intel i7",
		Price:         decimal.RequireFromString("1299.99"),
		StockQuantity: 50,
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("Missing name", func(t *testing.T) {
		in := valid
		in.Name = ""
		assert.True(t, apperr.IsValidation(in.Validate()))
	})

	t.Run("Name too long", func(t *testing.T) {
		in := valid
		in.Name = strings.Repeat("x", 101)
		assert.True(t, apperr.IsValidation(in.Validate()))
	})

	t.Run("Name limit counts runes", func(t *testing.T) {
		in := valid
		in.Name = strings.Repeat("李", 100)
		assert.NoError(t, in.Validate())
	})

	t.Run("Price below minimum", func(t *testing.T) {
		in := valid
		in.Price = decimal.RequireFromString("0.00")
		assert.True(t, apperr.IsValidation(in.Validate()))
	})

	t.Run("Price at minimum", func(t *testing.T) {
		in := valid
		in.Price = decimal.RequireFromString("0.01")
		assert.NoError(t, in.Validate())
	})

	t.Run("Negative stock", func(t *testing.T) {
		in := valid
		in.StockQuantity = -1
		assert.True(t, apperr.IsValidation(in.Validate()))
	})
}

func TestPatchApply(t *testing.T) {
	base := Product{
		ID:            1,
		Name:          "X",
		Description:   "original",
		Price:         decimal.RequireFromString("99.99"),
		StockQuantity: 10,
	}

	t.Run("Only provided fields overwrite", func(t *testing.T) {
		p := base
		newPrice := decimal.RequireFromString("149.99")

		Patch{Price: &newPrice}.Apply(&p)

		assert.True(t, p.Price.Equal(newPrice))
		assert.Equal(t, "X", p.Name)
		assert.Equal(t, 10, p.StockQuantity)
		assert.Equal(t, "original", p.Description)
	})

	t.Run("All fields", func(t *testing.T) {
		p := base
		name := "Y"
		desc := "patched"
		price := decimal.RequireFromString("1.00")
		stock := 3

		Patch{Name: &name, Description: &desc, Price: &price, StockQuantity: &stock}.Apply(&p)

		assert.Equal(t, "Y", p.Name)
		assert.Equal(t, "patched", p.Description)
		assert.True(t, p.Price.Equal(price))
		assert.Equal(t, 3, p.StockQuantity)
	})

	t.Run("Empty patch changes nothing", func(t *testing.T) {
		p := base
		Patch{}.Apply(&p)
		assert.Equal(t, base, p)
	})
}

func TestPatchValidate(t *testing.T) {
	t.Run("Empty name rejected", func(t *testing.T) {
		name := ""
		assert.True(t, apperr.IsValidation(Patch{Name: &name}.Validate()))
	})

	t.Run("Negative stock rejected", func(t *testing.T) {
		stock := -5
		assert.True(t, apperr.IsValidation(Patch{StockQuantity: &stock}.Validate()))
	})

	t.Run("Zero price rejected", func(t *testing.T) {
		price := decimal.Zero
		assert.True(t, apperr.IsValidation(Patch{Price: &price}.Validate()))
	})

	t.Run("Nil fields pass", func(t *testing.T) {
		assert.NoError(t, Patch{}.Validate())
	})
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())

	name := "x"
	assert.False(t, Patch{Name: &name}.IsEmpty())
}

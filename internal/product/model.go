package product

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"storefront-be/internal/apperr"
)

var minPrice = decimal.RequireFromString("0.01")

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Input carries the full field set for create and full-overwrite update.
type Input struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
}

func (in Input) Validate() error {
	if in.Name == "" {
		return apperr.Validation("name", "name is required")
	}
	if utf8.RuneCountInString(in.Name) > 100 {
		return apperr.Validation("name", "must be at most 100 characters")
	}
	if in.Price.LessThan(minPrice) {
		return apperr.Validation("price", "must be at least 0.01")
	}
	if in.StockQuantity < 0 {
		return apperr.Validation("stock_quantity", "must not be negative")
	}
	return nil
}

// Patch is a partial representation: nil fields are left unchanged by Apply.
// One explicit merge per field, checked at compile time.
type Patch struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.StockQuantity == nil
}

func (p Patch) Validate() error {
	if p.Name != nil {
		if *p.Name == "" {
			return apperr.Validation("name", "name cannot be empty")
		}
		if utf8.RuneCountInString(*p.Name) > 100 {
			return apperr.Validation("name", "must be at most 100 characters")
		}
	}
	if p.Price != nil && p.Price.LessThan(minPrice) {
		return apperr.Validation("price", "must be at least 0.01")
	}
	if p.StockQuantity != nil && *p.StockQuantity < 0 {
		return apperr.Validation("stock_quantity", "must not be negative")
	}
	return nil
}

func (p Patch) Apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.StockQuantity != nil {
		dst.StockQuantity = *p.StockQuantity
	}
}

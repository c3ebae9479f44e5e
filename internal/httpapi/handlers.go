package httpapi

import (
	"storefront-be/internal/order"
	"storefront-be/internal/product"
)

type handlers struct {
	products product.Service
	orders   order.Service
}

package httpapi

import (
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
)

// NewRouter builds the full API surface and wraps it with the shared
// middleware chain: request id first, then access logging, then rate
// limiting.
func NewRouter(products product.Service, orders order.Service) http.Handler {
	h := &handlers{products: products, orders: orders}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.root)

	mux.HandleFunc("GET /api/v1/products", h.listProducts)
	mux.HandleFunc("POST /api/v1/products", h.createProduct)
	mux.HandleFunc("GET /api/v1/products/{id}", h.getProduct)
	mux.HandleFunc("PUT /api/v1/products/{id}", h.updateProduct)
	mux.HandleFunc("PATCH /api/v1/products/{id}", h.patchProduct)
	mux.HandleFunc("DELETE /api/v1/products/{id}", h.deleteProduct)

	mux.HandleFunc("GET /api/v1/orders", h.listOrders)
	mux.HandleFunc("POST /api/v1/orders", h.createOrder)
	mux.HandleFunc("GET /api/v1/orders/{id}", h.getOrder)
	mux.HandleFunc("PUT /api/v1/orders/{id}", h.updateOrder)
	mux.HandleFunc("DELETE /api/v1/orders/{id}", h.deleteOrder)

	mux.HandleFunc("GET /api/v1/orders/{id}/items", h.listOrderItems)
	mux.HandleFunc("POST /api/v1/orders/{orderId}/items", h.addOrderItem)
	mux.HandleFunc("PUT /api/v1/orders/{orderId}/items/{itemId}", h.updateOrderItem)
	mux.HandleFunc("DELETE /api/v1/orders/{orderId}/items/{itemId}", h.removeOrderItem)

	mux.HandleFunc("GET /api/v1/order-items", h.listAllItems)
	mux.HandleFunc("GET /api/v1/order-items/{id}", h.getItem)
	mux.HandleFunc("PUT /api/v1/order-items/{id}", h.updateItem)
	mux.HandleFunc("DELETE /api/v1/order-items/{id}", h.removeItem)

	var handler http.Handler = mux
	handler = countRequests(handler)
	handler = middleware.RateLimitMiddleware(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)
	return handler
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsServed.Inc()
		next.ServeHTTP(w, r)
	})
}

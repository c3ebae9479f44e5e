package httpapi

import (
	"net/http"

	"storefront-be/internal/metrics"
)

type rootResponse struct {
	Service string            `json:"service"`
	Version string            `json:"version"`
	Status  string            `json:"status"`
	Links   map[string]string `json:"_links"`
	Metrics metrics.Snapshot  `json:"metrics"`
}

func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Service: "storefront-be",
		Version: "1.0.0",
		Status:  "ok",
		Links: map[string]string{
			"products":    "/api/v1/products",
			"orders":      "/api/v1/orders",
			"order-items": "/api/v1/order-items",
		},
		Metrics: metrics.Current(),
	})
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"storefront-be/internal/order"
)

// Order items are reachable two ways: scoped under their order
// (/orders/{orderId}/items/{itemId}) and globally (/order-items/{id}).
// Scoped routes carry the order id into the ItemRef so a mismatched pair
// comes back as not found.

func (h *handlers) listOrderItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeBadID(w, "id")
		return
	}

	items, err := h.orders.GetItems(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (h *handlers) addOrderItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "orderId")
	if !ok {
		writeBadID(w, "orderId")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	it, err := h.orders.AddItem(r.Context(), orderID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(*it))
}

func (h *handlers) updateOrderItem(w http.ResponseWriter, r *http.Request) {
	ref, ok := scopedItemRef(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	it, err := h.orders.UpdateItemQuantity(r.Context(), ref, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(*it))
}

func (h *handlers) removeOrderItem(w http.ResponseWriter, r *http.Request) {
	ref, ok := scopedItemRef(w, r)
	if !ok {
		return
	}

	if err := h.orders.RemoveItem(r.Context(), ref); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listAllItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.orders.GetAllItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (h *handlers) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadID(w, "id")
		return
	}

	it, err := h.orders.GetItem(r.Context(), order.ItemRef{ItemID: id})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(*it))
}

func (h *handlers) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadID(w, "id")
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	it, err := h.orders.UpdateItemQuantity(r.Context(), order.ItemRef{ItemID: id}, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(*it))
}

func (h *handlers) removeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadID(w, "id")
		return
	}

	if err := h.orders.RemoveItem(r.Context(), order.ItemRef{ItemID: id}); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func scopedItemRef(w http.ResponseWriter, r *http.Request) (order.ItemRef, bool) {
	orderID, ok := pathID(r, "orderId")
	if !ok {
		writeBadID(w, "orderId")
		return order.ItemRef{}, false
	}
	itemID, ok := pathID(r, "itemId")
	if !ok {
		writeBadID(w, "itemId")
		return order.ItemRef{}, false
	}
	return order.ItemRef{ItemID: itemID, OrderID: &orderID}, true
}

package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-be/internal/order"
	"storefront-be/internal/product"
)

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

func (req productRequest) toInput() product.Input {
	return product.Input{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}
}

type productPatchRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
}

func (req productPatchRequest) toPatch() product.Patch {
	return product.Patch{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}
}

type orderRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

func (req orderRequest) toInput() order.CustomerInput {
	return order.CustomerInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	}
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type orderItemResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// orderResponse carries total_amount, derived from the current item set at
// render time.
type orderResponse struct {
	ID            int64               `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	Status        string              `json:"status"`
	Items         []orderItemResponse `json:"items"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func toItemResponse(it order.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:        it.ID,
		OrderID:   it.OrderID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Subtotal:  it.Subtotal,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func toItemResponses(items []order.OrderItem) []orderItemResponse {
	out := make([]orderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

func toOrderResponse(o *order.Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        string(o.Status),
		Items:         toItemResponses(o.Items),
		TotalAmount:   o.TotalAmount(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderResponses(orders []order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}

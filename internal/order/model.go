package order

import (
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"storefront-be/internal/apperr"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusCompleted  Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type Order struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	Status        Status
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TotalAmount is derived from the current item set and never stored.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtotal computes unitPrice × quantity exactly.
func Subtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// CustomerInput carries the customer fields for order create and update.
type CustomerInput struct {
	CustomerName  string
	CustomerEmail string
}

func (in CustomerInput) Validate() error {
	// Limits count runes, not bytes, so multibyte names measure correctly.
	if n := utf8.RuneCountInString(in.CustomerName); n < 2 || n > 100 {
		return apperr.Validation("customer_name", "must be between 2 and 100 characters")
	}
	if in.CustomerEmail == "" {
		return apperr.Validation("customer_email", "customer email is required")
	}
	if _, err := mail.ParseAddress(in.CustomerEmail); err != nil {
		return apperr.Validation("customer_email", "invalid email format")
	}
	return nil
}

func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return apperr.Validation("quantity", "must be at least 1")
	}
	return nil
}

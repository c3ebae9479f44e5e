package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError signals that an entity does not exist.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Kind, e.ID)
}

func NotFound(kind string, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InsufficientStockError signals a reservation that would overdraw a
// product's stock counter.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"not enough stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available,
	)
}

func InsufficientStock(productID int64, requested, available int) error {
	return &InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

func IsInsufficientStock(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}

// InvalidStateError signals an operation attempted against an entity whose
// current status forbids it.
type InvalidStateError struct {
	Message  string
	Current  string
	Required string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

func InvalidState(message, current, required string) error {
	return &InvalidStateError{Message: message, Current: current, Required: required}
}

func IsInvalidState(err error) bool {
	var is *InvalidStateError
	return errors.As(err, &is)
}

// ConflictError signals an operation blocked by a surviving reference to the
// target entity.
type ConflictError struct {
	Kind   string
	ID     int64
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

func Conflict(kind string, id int64, reason string) error {
	return &ConflictError{Kind: kind, ID: id, Reason: reason}
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// ValidationError signals malformed input rejected at the service boundary,
// before any persistence work happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

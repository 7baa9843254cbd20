// Package apperrors defines the error values shared by the repository,
// service and handler layers. Lower layers wrap these sentinels with
// fmt.Errorf("...: %w", ...) and handlers translate them into HTTP
// responses with errors.Is / errors.As.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict signals a uniqueness violation (duplicate username or email).
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized signals bad credentials or a missing session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden signals that the session lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound signals a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when an order is placed from an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock is returned when a cart line cannot be covered by stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrValidation signals a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")
	// ErrNoActiveSession is returned by logout when no session is bound to the request.
	ErrNoActiveSession = errors.New("no active session")
)

// StockError reports the product that could not be covered during order placement.
type StockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)", e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

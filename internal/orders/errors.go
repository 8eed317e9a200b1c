package orders

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/models"
)

// ValidationError marks bad or missing input.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

// NotFoundError marks a missing order, product or user.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// AuthorizationError marks an actor acting outside its role or ownership.
type AuthorizationError struct {
	Msg string
}

func (e AuthorizationError) Error() string { return e.Msg }

// InvalidTransitionError marks a backward or same-state status move.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order status from %s to %s", e.From, e.To)
}

// TerminalStateError marks a mutation attempted on a Delivered or
// Cancelled order.
type TerminalStateError struct {
	Status models.OrderStatus
}

func (e TerminalStateError) Error() string {
	return fmt.Sprintf("order is already %s", e.Status)
}

// InsufficientStockError marks a reservation that exceeds current stock.
type InsufficientStockError struct {
	ProductID primitive.ObjectID
	Available int
	Requested int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available, %d requested",
		e.ProductID.Hex(), e.Available, e.Requested)
}

// ConflictError marks an operation the order's current state forbids.
type ConflictError struct {
	Msg string
}

func (e ConflictError) Error() string { return e.Msg }

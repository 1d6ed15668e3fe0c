package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the event bus.
var (
	// ErrInvalidSubscription is returned when a subscription is nil or
	// belongs to another bus.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound is returned when trying to unsubscribe a non-existent subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrFilterType is returned when a filter's event type does not match the bus.
	ErrFilterType = errors.New("filter event type does not match bus")

	// ErrHandlerPanic is matched by PanicError.
	ErrHandlerPanic = errors.New("handler panicked")
)

// PanicError wraps a panic value as an error.
type PanicError struct {
	// SubscriptionID is the ID of the subscription whose handler panicked.
	SubscriptionID string

	// Name is the subscription name, if any.
	Name string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("handler panic in %s (%s): %v", e.Name, e.SubscriptionID, e.Value)
	}
	return fmt.Sprintf("handler panic in %s: %v", e.SubscriptionID, e.Value)
}

// Is allows errors.Is to match PanicError with ErrHandlerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}

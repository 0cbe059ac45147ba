package errors

import (
	"fmt"

	"github.com/NetLive5/weblarek/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrConflict is returned when an action clashes with current state (e.g., submitting an invalid form)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrInvalidStateTransition is returned when a UI action is not allowed in the current checkout step
type ErrInvalidStateTransition struct {
	From domain.CheckoutStep
	To   domain.CheckoutStep
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrAPI is returned when the shop API answers with a non-2xx status.
// Message carries the server's {"error": ...} text, or the status text when the body has none.
type ErrAPI struct {
	Status  int
	Message string
}

func (e *ErrAPI) Error() string {
	return fmt.Sprintf("shop api returned %d: %s", e.Status, e.Message)
}

// ErrMissingElement is returned when a required view is absent at construction time
type ErrMissingElement struct {
	Name string
}

func (e *ErrMissingElement) Error() string {
	return fmt.Sprintf("required element missing: %s", e.Name)
}

package patient

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no patient matches the lookup.
var ErrNotFound = errors.New("patient not found")

// ValidationError flags a rejected field on registration or update.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IllegalTransitionError is returned when a workflow event is applied to a
// patient whose status does not allow it.
type IllegalTransitionError struct {
	From  Status
	Event string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a patient in status %s", e.Event, e.From)
}

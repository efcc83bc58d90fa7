package order

import (
	"errors"
	"fmt"

	"pharmacy/internal/pkg/errs"
)

var (
	// ErrInvalidTransition indicates that the requested target status is not
	// reachable from the order's current status. Use errors.Is against this
	// sentinel; the concrete InvalidTransitionError carries both states.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoOpTransition indicates that the requested target status equals the
	// current status. Repeating an already-applied transition is an error
	// signal for the caller, never a silent success.
	ErrNoOpTransition = errors.New("order is already in the requested status")

	// ErrMissingTrackingNumber indicates an attempt to ship an order before
	// a tracking number was set.
	ErrMissingTrackingNumber = errors.New("tracking number is required before shipping")
)

// InvalidTransitionError reports an illegal status transition with both ends,
// so the caller can surface the precise cause.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move from %s to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit adjacency table, so the
// legality of any transition is a single table lookup.
//
// State transitions:
//
//	Placed ──> Confirmed ──> Shipped ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status at admission: stock is reserved and
	// pricing is frozen into the order items.
	Placed

	// Confirmed indicates the pharmacy accepted the order for fulfilment.
	Confirmed

	// Shipped indicates the order left the pharmacy. Requires a tracking
	// number to be set beforehand.
	Shipped

	// Delivered indicates the order reached the patient. Terminal.
	Delivered

	// Cancelled indicates the order was abandoned before shipping; the
	// reserved stock is released. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Placed:    "placed",
		Confirmed: "confirmed",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:    "placed",
		Confirmed: "confirmed",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// allowedTransitions is the adjacency table of the order state machine.
// An empty slice marks a terminal state.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Placed:    {Confirmed, Cancelled},
		Confirmed: {Shipped, Cancelled},
		Shipped:   {Delivered},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString parses a persisted or request-supplied status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTransitionTo reports whether target is in the allowed-to set of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsFinal reports whether the status is terminal (Delivered or Cancelled).
func (s Status) IsFinal() bool {
	return len(allowedTransitions()[s]) == 0 && s != Unknown
}

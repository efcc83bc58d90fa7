package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// TransitionOrderCommand represents a request to move an order to a new
// lifecycle status. A tracking number may ride along, which is how an order
// gets one before being shipped.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.Shipped, "TRK-123456")
//	if err != nil {
//	    return err
//	}
//	handler := NewTransitionOrderCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	target         order.Status
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// Validates the order ID and that the target is a defined status; whether the
// transition itself is allowed is the aggregate's decision.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	trackingNumber string,
) (TransitionOrderCommand, error) {
	transitionCommand := TransitionOrderCommand{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested target status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// TrackingNumber returns the tracking number to set before the transition,
// or the empty string when none was supplied.
func (c TransitionOrderCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

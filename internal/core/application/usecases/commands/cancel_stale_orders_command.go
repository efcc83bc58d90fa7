package commands

import (
	"errors"
	"time"

	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
)

// CancelStaleOrdersCommand requests cancellation of every order that has sat
// in placed status longer than the given age. Cancellation runs through the
// regular transition path, so reserved stock is returned as well.
//
// Example:
//
//	cmd, err := NewCancelStaleOrdersCommand(24 * time.Hour)
//	if err != nil {
//	    return err
//	}
//	handler := NewCancelStaleOrdersCommandHandler(uowFactory)
//	cancelled, err := handler.Handle(ctx, cmd)
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel orders placed more
// than olderThan ago. The age must be positive.
func NewCancelStaleOrdersCommand(olderThan time.Duration) (CancelStaleOrdersCommand, error) {
	if olderThan <= 0 {
		return CancelStaleOrdersCommand{}, errs.NewValueIsInvalidError("olderThan")
	}

	return CancelStaleOrdersCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OlderThan returns the minimum age of orders to cancel.
func (c CancelStaleOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

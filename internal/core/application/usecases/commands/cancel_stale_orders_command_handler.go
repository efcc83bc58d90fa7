package commands

import (
	"context"
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/errs"
)

// CancelStaleOrdersCommandHandler cancels orders abandoned in placed status.
// Each cancellation goes through TransitionOrderCommandHandler, so it carries
// the same guarantees as a manual cancel: the status change and the stock
// release commit in one transaction, guarded against concurrent transitions.
type CancelStaleOrdersCommandHandler struct {
	uowFactory        OrderUoWFactory
	transitionHandler TransitionOrderCommandHandler
}

// NewCancelStaleOrdersCommandHandler creates a handler for stale order cleanup.
func NewCancelStaleOrdersCommandHandler(uowFactory OrderUoWFactory) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory:        uowFactory,
		transitionHandler: NewTransitionOrderCommandHandler(uowFactory),
	}
}

// Handle cancels every placed order older than the command's age and returns
// how many were cancelled.
//
// The listing is a plain read; each cancellation then reloads its order inside
// its own transaction. An order that got confirmed or cancelled between the
// listing and the cancel attempt is skipped, not treated as a failure.
func (h CancelStaleOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd CancelStaleOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-cmd.OlderThan())

	uow := h.uowFactory.Create()
	stale, err := uow.OrderRepository().GetAllPlacedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	var failures []error
	for _, staleOrder := range stale {
		cancelCmd, cmdErr := NewTransitionOrderCommand(staleOrder.ID(), order.Cancelled, "")
		if cmdErr != nil {
			failures = append(failures, cmdErr)
			continue
		}

		if handleErr := h.transitionHandler.Handle(ctx, cancelCmd); handleErr != nil {
			if errors.Is(handleErr, order.ErrInvalidTransition) ||
				errors.Is(handleErr, order.ErrNoOpTransition) ||
				errors.Is(handleErr, errs.ErrObjectNotFound) {
				continue
			}
			failures = append(failures, handleErr)
			continue
		}

		cancelled++
	}

	return cancelled, errors.Join(failures...)
}

package commands

import (
	"context"

	"pharmacy/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler handles order lifecycle transitions.
// The status write is guarded by the order's version token; a cancellation
// additionally releases every reserved line back to stock in the same
// transaction, so the ledger and the order never disagree.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory)
//	cmd, _ := NewTransitionOrderCommand(orderID, order.Cancelled, "")
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    log.Println("Transition not allowed from current status")
//	case errors.Is(err, order.ErrNoOpTransition):
//	    log.Println("Order is already in the requested status")
//	case err != nil:
//	    log.Printf("Transition failed: %v", err)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewTransitionOrderCommandHandler creates a handler for order transition operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order transition command. A lost version race is
// retried with a fresh read of the order, so a retried cancel is judged
// against the winner's status instead of stale state.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		return h.transition(ctx, cmd)
	})
}

func (h TransitionOrderCommandHandler) transition(ctx context.Context, cmd TransitionOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.TrackingNumber() != "" {
		if err = aggregate.SetTrackingNumber(cmd.TrackingNumber()); err != nil {
			return err
		}
	}

	if err = aggregate.TransitionTo(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if cmd.Target() == order.Cancelled {
		medicineRepo := uow.MedicineRepository()
		for _, item := range aggregate.Items() {
			if err = medicineRepo.Release(ctx, item.MedicineID(), item.Quantity()); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

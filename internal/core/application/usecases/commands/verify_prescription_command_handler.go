package commands

import (
	"context"
)

// VerifyPrescriptionCommandHandler applies an admin's ruling to a
// prescription. The aggregate enforces that a ruling is final: a second
// ruling on the same prescription fails regardless of direction.
type VerifyPrescriptionCommandHandler struct {
	uowFactory PrescriptionUoWFactory
}

// NewVerifyPrescriptionCommandHandler creates a handler for prescription ruling operations.
// Requires a PrescriptionUoWFactory for transactional persistence.
func NewVerifyPrescriptionCommandHandler(uowFactory PrescriptionUoWFactory) VerifyPrescriptionCommandHandler {
	return VerifyPrescriptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the prescription ruling command.
func (h VerifyPrescriptionCommandHandler) Handle(ctx context.Context, cmd VerifyPrescriptionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	prescriptionRepo := uow.PrescriptionRepository()

	aggregate, err := prescriptionRepo.Get(ctx, cmd.PrescriptionID())
	if err != nil {
		return err
	}

	if cmd.Approve() {
		err = aggregate.Verify(cmd.VerifierID())
	} else {
		err = aggregate.Reject(cmd.VerifierID(), cmd.RejectionReason())
	}
	if err != nil {
		return err
	}

	if err = prescriptionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"

	"pharmacy/internal/core/domain/model/prescription"
)

// UploadPrescriptionCommandHandler registers an uploaded prescription in
// pending verification status.
type UploadPrescriptionCommandHandler struct {
	uowFactory PrescriptionUoWFactory
}

// NewUploadPrescriptionCommandHandler creates a handler for prescription registration.
// Requires a PrescriptionUoWFactory for transactional persistence.
func NewUploadPrescriptionCommandHandler(uowFactory PrescriptionUoWFactory) UploadPrescriptionCommandHandler {
	return UploadPrescriptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the prescription registration command.
func (h UploadPrescriptionCommandHandler) Handle(ctx context.Context, cmd UploadPrescriptionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := prescription.NewPrescription(cmd.PrescriptionID(), cmd.PatientID(), cmd.ImagePath())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PrescriptionRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

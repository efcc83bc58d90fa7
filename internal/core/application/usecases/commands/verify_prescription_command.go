package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrVerifyPrescriptionCommandIsNotConstructed = errors.New(
		"VerifyPrescriptionCommand must be created via NewVerifyPrescriptionCommand constructor",
	)
)

// VerifyPrescriptionCommand represents a pharmacy admin's ruling on an
// uploaded prescription: either approve it or reject it with a reason.
type VerifyPrescriptionCommand struct { //nolint:recvcheck //using for validation
	prescriptionID  kernel.UUID
	verifierID      kernel.UUID
	approve         bool
	rejectionReason string

	guard guard.ConstructorGuard
}

// NewVerifyPrescriptionCommand creates a command to rule on a prescription.
// A rejection requires a reason; an approval must not carry one.
func NewVerifyPrescriptionCommand(
	prescriptionID kernel.UUID,
	verifierID kernel.UUID,
	approve bool,
	rejectionReason string,
) (VerifyPrescriptionCommand, error) {
	verifyCommand := VerifyPrescriptionCommand{
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		verifyCommand.setPrescriptionID(prescriptionID),
		verifyCommand.setVerifierID(verifierID),
		verifyCommand.setRejectionReason(approve, rejectionReason),
	); err != nil {
		return VerifyPrescriptionCommand{}, err
	}

	return verifyCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrVerifyPrescriptionCommandIsNotConstructed if validation fails.
func (c VerifyPrescriptionCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPrescriptionCommandIsNotConstructed)
}

// PrescriptionID returns the identifier of the prescription to rule on.
func (c VerifyPrescriptionCommand) PrescriptionID() kernel.UUID {
	return c.prescriptionID
}

// VerifierID returns the identifier of the ruling admin.
func (c VerifyPrescriptionCommand) VerifierID() kernel.UUID {
	return c.verifierID
}

// Approve reports whether the ruling is an approval.
func (c VerifyPrescriptionCommand) Approve() bool {
	return c.approve
}

// RejectionReason returns the reason for a rejection, empty on approval.
func (c VerifyPrescriptionCommand) RejectionReason() string {
	return c.rejectionReason
}

func (c *VerifyPrescriptionCommand) setPrescriptionID(prescriptionID kernel.UUID) error {
	if err := prescriptionID.Validate(); err != nil {
		return err
	}

	c.prescriptionID = prescriptionID
	return nil
}

func (c *VerifyPrescriptionCommand) setVerifierID(verifierID kernel.UUID) error {
	if err := verifierID.Validate(); err != nil {
		return err
	}

	c.verifierID = verifierID
	return nil
}

func (c *VerifyPrescriptionCommand) setRejectionReason(approve bool, reason string) error {
	if approve && reason != "" {
		return errs.NewValueIsInvalidError("rejectionReason")
	}
	if !approve && reason == "" {
		return errs.NewValueIsRequiredError("rejectionReason")
	}

	c.rejectionReason = reason
	return nil
}

package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrUploadPrescriptionCommandIsNotConstructed = errors.New(
		"UploadPrescriptionCommand must be created via NewUploadPrescriptionCommand constructor",
	)
)

// UploadPrescriptionCommand represents a patient registering a prescription
// image for verification. The image itself lives in object storage; here only
// its opaque path is recorded.
type UploadPrescriptionCommand struct { //nolint:recvcheck //using for validation
	prescriptionID kernel.UUID
	patientID      kernel.UUID
	imagePath      string

	guard guard.ConstructorGuard
}

// NewUploadPrescriptionCommand creates a command to register an uploaded prescription.
func NewUploadPrescriptionCommand(
	prescriptionID kernel.UUID,
	patientID kernel.UUID,
	imagePath string,
) (UploadPrescriptionCommand, error) {
	uploadCommand := UploadPrescriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		uploadCommand.setPrescriptionID(prescriptionID),
		uploadCommand.setPatientID(patientID),
		uploadCommand.setImagePath(imagePath),
	); err != nil {
		return UploadPrescriptionCommand{}, err
	}

	return uploadCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUploadPrescriptionCommandIsNotConstructed if validation fails.
func (c UploadPrescriptionCommand) Validate() error {
	return c.guard.Validate(ErrUploadPrescriptionCommandIsNotConstructed)
}

// PrescriptionID returns the identifier for the new prescription.
func (c UploadPrescriptionCommand) PrescriptionID() kernel.UUID {
	return c.prescriptionID
}

// PatientID returns the identifier of the uploading patient.
func (c UploadPrescriptionCommand) PatientID() kernel.UUID {
	return c.patientID
}

// ImagePath returns the object storage path of the prescription image.
func (c UploadPrescriptionCommand) ImagePath() string {
	return c.imagePath
}

func (c *UploadPrescriptionCommand) setPrescriptionID(prescriptionID kernel.UUID) error {
	if err := prescriptionID.Validate(); err != nil {
		return err
	}

	c.prescriptionID = prescriptionID
	return nil
}

func (c *UploadPrescriptionCommand) setPatientID(patientID kernel.UUID) error {
	if err := patientID.Validate(); err != nil {
		return err
	}

	c.patientID = patientID
	return nil
}

func (c *UploadPrescriptionCommand) setImagePath(imagePath string) error {
	if imagePath == "" {
		return errs.NewValueIsRequiredError("imagePath")
	}

	c.imagePath = imagePath
	return nil
}

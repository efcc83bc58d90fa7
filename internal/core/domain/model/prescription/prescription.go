package prescription

import (
	"errors"
	"fmt"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	// ErrPrescriptionIsNotConstructed is returned when a Prescription instance
	// was not created through NewPrescription or RestorePrescription.
	ErrPrescriptionIsNotConstructed = errors.New("Prescription must be created via NewPrescription or RestorePrescription constructor")

	// ErrAlreadyFinalized indicates an attempt to verify or reject a
	// prescription whose status is already terminal.
	ErrAlreadyFinalized = errors.New("prescription verification is final")

	// ErrNotVerified indicates that an order admission referenced a
	// prescription that is not in verified status. Wraps the authorization
	// sentinel so callers can classify it either way.
	ErrNotVerified = fmt.Errorf("%w: prescription is not verified", errs.ErrAuthorization)

	// ErrOwnershipMismatch indicates that the prescription belongs to a
	// different patient than the one placing the order.
	ErrOwnershipMismatch = fmt.Errorf("%w: prescription belongs to another patient", errs.ErrAuthorization)
)

// Prescription represents one patient-submitted prescription document.
// The image itself lives in object storage; the core only tracks the storage
// key and the verification workflow.
//
// Prescription follows these invariants:
//   - Must have valid identifiers for itself and its patient
//   - Image path is required
//   - Rejection reason is present if and only if the status is rejected
//   - Verified and Rejected are terminal: no transition leaves them
type Prescription struct {
	id              kernel.UUID
	patientID       kernel.UUID
	imagePath       string
	status          Status
	verifierID      *kernel.UUID
	verifiedAt      *time.Time
	rejectionReason string
	uploadedAt      time.Time

	guard guard.ConstructorGuard
}

// NewPrescription creates a Prescription in pending_verification status.
// This is the entry point of the (externally driven) upload flow.
func NewPrescription(id kernel.UUID, patientID kernel.UUID, imagePath string) (*Prescription, error) {
	p := &Prescription{
		status:     PendingVerification,
		uploadedAt: time.Now().UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setPatientID(patientID),
		p.setImagePath(imagePath),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePrescription reconstructs a Prescription from persistent storage,
// including a possibly terminal status and its verification metadata.
func RestorePrescription(
	id kernel.UUID,
	patientID kernel.UUID,
	imagePath string,
	status Status,
	verifierID *kernel.UUID,
	verifiedAt *time.Time,
	rejectionReason string,
	uploadedAt time.Time,
) (*Prescription, error) {
	p, err := NewPrescription(id, patientID, imagePath)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status == Rejected && rejectionReason == "" {
		return nil, errs.NewValueIsRequiredError("rejectionReason")
	}
	if status != Rejected && rejectionReason != "" {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"rejectionReason",
			fmt.Errorf("reason present but status is %s", status),
		)
	}

	p.status = status
	p.verifierID = verifierID
	p.verifiedAt = verifiedAt
	p.rejectionReason = rejectionReason
	p.uploadedAt = uploadedAt
	return p, nil
}

// Validate ensures the Prescription instance was properly constructed.
func (p *Prescription) Validate() error {
	if p == nil {
		return ErrPrescriptionIsNotConstructed
	}
	return p.guard.Validate(ErrPrescriptionIsNotConstructed)
}

// ID returns the prescription's unique identifier.
func (p *Prescription) ID() kernel.UUID {
	return p.id
}

// PatientID returns the identifier of the patient who uploaded the prescription.
func (p *Prescription) PatientID() kernel.UUID {
	return p.patientID
}

// ImagePath returns the object-storage key of the prescription image.
func (p *Prescription) ImagePath() string {
	return p.imagePath
}

// Status returns the current verification status.
func (p *Prescription) Status() Status {
	return p.status
}

// VerifierID returns the admin who verified or rejected the prescription,
// nil while pending.
func (p *Prescription) VerifierID() *kernel.UUID {
	return p.verifierID
}

// VerifiedAt returns when the verification ruling was made, nil while pending.
func (p *Prescription) VerifiedAt() *time.Time {
	return p.verifiedAt
}

// RejectionReason returns the reason recorded on rejection, empty otherwise.
func (p *Prescription) RejectionReason() string {
	return p.rejectionReason
}

// UploadedAt returns when the prescription was uploaded.
func (p *Prescription) UploadedAt() time.Time {
	return p.uploadedAt
}

// Verify marks the prescription as verified by the given admin.
// Fails with ErrAlreadyFinalized when the status is already terminal.
func (p *Prescription) Verify(verifierID kernel.UUID) error {
	if err := verifierID.Validate(); err != nil {
		return err
	}
	if p.status.IsFinal() {
		return ErrAlreadyFinalized
	}

	now := time.Now().UTC()
	p.status = Verified
	p.verifierID = &verifierID
	p.verifiedAt = &now
	return nil
}

// Reject marks the prescription as rejected by the given admin with a
// mandatory reason. Fails with ErrAlreadyFinalized when the status is
// already terminal.
func (p *Prescription) Reject(verifierID kernel.UUID, reason string) error {
	if err := verifierID.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("rejectionReason")
	}
	if p.status.IsFinal() {
		return ErrAlreadyFinalized
	}

	now := time.Now().UTC()
	p.status = Rejected
	p.verifierID = &verifierID
	p.verifiedAt = &now
	p.rejectionReason = reason
	return nil
}

// CheckUsableBy is the read-only admission gate: it reports whether the
// given patient may place an order against this prescription.
//
// Returns:
//   - nil when the prescription is verified and owned by the patient
//   - ErrOwnershipMismatch when it belongs to a different patient
//   - ErrNotVerified when it is pending or rejected
//
// Ownership is checked first so the caller can report the precise cause.
func (p *Prescription) CheckUsableBy(patientID kernel.UUID) error {
	if !p.patientID.IsEqual(patientID) {
		return ErrOwnershipMismatch
	}
	if p.status != Verified {
		return ErrNotVerified
	}
	return nil
}

func (p *Prescription) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Prescription) setPatientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.patientID = id
	return nil
}

func (p *Prescription) setImagePath(path string) error {
	if path == "" {
		return errs.NewValueIsRequiredError("imagePath")
	}
	p.imagePath = path
	return nil
}

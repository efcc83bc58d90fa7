package prescription

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
)

// Status represents the verification state of a prescription.
//
// State transitions:
//
//	PendingVerification ──┬──> Verified
//	                      └──> Rejected
//
// Verified and Rejected are terminal: once a pharmacy admin has ruled on a
// prescription, the ruling cannot be reverted or changed.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingVerification is the initial status after a patient uploads
	// a prescription. Orders cannot be admitted against it yet.
	PendingVerification

	// Verified indicates a pharmacy admin accepted the prescription.
	// Terminal.
	Verified

	// Rejected indicates a pharmacy admin refused the prescription.
	// Terminal; a rejection reason is mandatory.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "Unknown",
		PendingVerification: "pending_verification",
		Verified:            "verified",
		Rejected:            "rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingVerification: "pending_verification",
		Verified:            "verified",
		Rejected:            "rejected",
	}
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

// StatusFromString parses a persisted status name back into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsFinal reports whether the status is terminal (Verified or Rejected).
func (s Status) IsFinal() bool {
	return s == Verified || s == Rejected
}

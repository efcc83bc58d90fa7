// Package prescriptionrepo provides data transfer objects and mapping functions for prescription persistence.
// This package implements the repository pattern for the prescription domain aggregate, handling
// the conversion between domain entities and database representations.
package prescriptionrepo

import (
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/prescription"

	"github.com/google/uuid"
)

// PrescriptionDTO represents the database structure for persisting prescription aggregates.
type PrescriptionDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PatientID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ImagePath       string     `gorm:"type:varchar(500);not null"`
	Status          string     `gorm:"type:varchar(30);not null;index"`
	VerifierID      *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt      *time.Time
	RejectionReason string    `gorm:"type:text"`
	UploadedAt      time.Time `gorm:"not null"`
}

// TableName specifies the database table name for prescription entities.
// Overrides GORM's default naming convention to use "prescriptions".
func (PrescriptionDTO) TableName() string {
	return "prescriptions"
}

// fromDomain converts a prescription domain aggregate to its database representation.
func fromDomain(prescription *prescription.Prescription) PrescriptionDTO {
	var verifierID *uuid.UUID
	if id := prescription.VerifierID(); id != nil {
		raw := id.Bytes()
		verifierID = &raw
	}

	return PrescriptionDTO{
		ID:              prescription.ID().Bytes(),
		PatientID:       prescription.PatientID().Bytes(),
		ImagePath:       prescription.ImagePath(),
		Status:          prescription.Status().String(),
		VerifierID:      verifierID,
		VerifiedAt:      prescription.VerifiedAt(),
		RejectionReason: prescription.RejectionReason(),
		UploadedAt:      prescription.UploadedAt(),
	}
}

// toDomain converts a database DTO to a prescription domain aggregate using RestorePrescription.
func toDomain(dto PrescriptionDTO) (*prescription.Prescription, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	patientID, err := kernel.UUIDFromBytes(dto.PatientID[:])
	if err != nil {
		return nil, err
	}

	status, err := prescription.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var verifierID *kernel.UUID
	if dto.VerifierID != nil {
		vID, verifierErr := kernel.UUIDFromBytes((*dto.VerifierID)[:])
		if verifierErr != nil {
			return nil, verifierErr
		}

		verifierID = &vID
	}

	return prescription.RestorePrescription(
		id,
		patientID,
		dto.ImagePath,
		status,
		verifierID,
		dto.VerifiedAt,
		dto.RejectionReason,
		dto.UploadedAt,
	)
}

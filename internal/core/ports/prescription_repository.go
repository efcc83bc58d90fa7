package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/prescription"
)

// PrescriptionRepository defines the persistence contract for prescription aggregates.
type PrescriptionRepository interface {
	// Add persists a new prescription aggregate to storage.
	Add(ctx context.Context, aggregate *prescription.Prescription) error

	// Update persists changes to an existing prescription aggregate.
	Update(ctx context.Context, aggregate *prescription.Prescription) error

	// Get retrieves a prescription aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*prescription.Prescription, error)
}

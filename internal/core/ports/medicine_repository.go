// Package ports defines repository interfaces for the pharmacy domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/medicine"
)

// MedicineRepository defines the persistence contract for medicine aggregates,
// including the stock ledger operations that back order admission.
type MedicineRepository interface {
	// Add persists a new medicine aggregate to storage.
	// The medicine must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *medicine.Medicine) error

	// Update persists changes to an existing medicine aggregate.
	// The medicine must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *medicine.Medicine) error

	// Get retrieves a medicine aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*medicine.Medicine, error)

	// GetAllByIDs retrieves the medicines with the given identifiers.
	// Missing identifiers are simply absent from the result; callers decide
	// whether absence is an error.
	GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*medicine.Medicine, error)

	// Reserve atomically decrements the stored stock of a medicine by quantity.
	// The decrement only applies when the remaining stock covers the request;
	// otherwise nothing is written and an InsufficientStockError is returned.
	//
	// Reserve must run inside the unit of work's transaction so that a batch
	// of reservations either all apply or all roll back.
	Reserve(ctx context.Context, id kernel.UUID, quantity int) error

	// Release atomically increments the stored stock of a medicine by quantity.
	// Used to return reserved units when an order is cancelled.
	Release(ctx context.Context, id kernel.UUID, quantity int) error
}

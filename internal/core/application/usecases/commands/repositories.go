// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"pharmacy/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// MedicineRepoFactory provides access to medicine repository within a transaction.
	MedicineRepoFactory interface {
		MedicineRepository() ports.MedicineRepository
	}

	// PrescriptionRepoFactory provides access to prescription repository within a transaction.
	PrescriptionRepoFactory interface {
		PrescriptionRepository() ports.PrescriptionRepository
	}

	// PlaceOrderUoW manages the order admission transaction: stock
	// reservation, the prescription gate, and the order insert all commit or
	// roll back together.
	PlaceOrderUoW interface {
		TxManager
		OrderRepoFactory
		MedicineRepoFactory
		PrescriptionRepoFactory
	}

	// PlaceOrderUoWFactory creates new admission unit of work instances.
	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}

	// OrderUoW manages transactions for order lifecycle operations.
	// Cancellation additionally releases stock, so the medicine repository
	// rides in the same transaction.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		MedicineRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PrescriptionUoW manages transactions for prescription-only operations.
	PrescriptionUoW interface {
		TxManager
		PrescriptionRepoFactory
	}

	// PrescriptionUoWFactory creates new prescription unit of work instances.
	PrescriptionUoWFactory interface {
		Create() PrescriptionUoW
	}
)

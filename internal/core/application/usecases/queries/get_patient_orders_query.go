package queries

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrGetPatientOrdersQueryIsNotConstructed = errors.New(
		"GetPatientOrdersQuery must be created via NewGetPatientOrdersQuery constructor",
	)
)

// GetPatientOrdersQuery retrieves the order history of a single patient.
// Returns orders in every status so the patient sees cancelled orders too.
//
// Example:
//
//	query, err := NewGetPatientOrdersQuery(patientID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetPatientOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get patient orders: %w", err)
//	}
//
//	fmt.Printf("Patient has %d orders\n", len(orders))
type GetPatientOrdersQuery struct {
	patientID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGetPatientOrdersQuery creates a query for all orders of the given patient.
func NewGetPatientOrdersQuery(patientID kernel.UUID) (GetPatientOrdersQuery, error) {
	if err := patientID.Validate(); err != nil {
		return GetPatientOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("patientID", err)
	}

	return GetPatientOrdersQuery{
		patientID: patientID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// PatientID returns the patient whose orders are being queried.
func (q GetPatientOrdersQuery) PatientID() kernel.UUID {
	return q.patientID
}

// Validate ensures the query was created through the constructor.
func (q GetPatientOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPatientOrdersQueryIsNotConstructed)
}

// GetPatientOrdersQueryResponse is one row of a patient's order history.
// Item details are omitted; use GetOrderQuery for the full order.
type GetPatientOrdersQueryResponse struct {
	ID             kernel.UUID
	PharmacyID     kernel.UUID
	Status         string
	TrackingNumber string
	CreatedAt      time.Time
}

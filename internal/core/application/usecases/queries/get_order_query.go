package queries

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order together with its line items.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s, total %s\n", resp.ID, resp.Status, resp.TotalPrice)
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order being queried.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderItemResponse represents one priced line of an order read model.
type OrderItemResponse struct {
	MedicineID kernel.UUID
	Quantity   int
	UnitPrice  kernel.Money
}

// GetOrderQueryResponse is the read model for a single order.
// Prices are the values frozen at admission time, not current catalog prices.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	PatientID      kernel.UUID
	PharmacyID     kernel.UUID
	PrescriptionID *kernel.UUID
	Status         string
	TrackingNumber string
	TotalPrice     kernel.Money
	CreatedAt      time.Time
	Items          []OrderItemResponse
}

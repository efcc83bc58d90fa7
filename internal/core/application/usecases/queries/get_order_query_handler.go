package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order with its items from the database.
// Uses direct SQL for the read side instead of loading the aggregate.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // order does not exist
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order read model.
// Returns errs.ErrObjectNotFound if no order exists with the given ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		id             uuid.UUID
		patientID      uuid.UUID
		pharmacyID     uuid.UUID
		prescriptionID uuid.NullUUID
		status         int
		trackingNumber string
		createdAt      time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			patient_id,
			pharmacy_id,
			prescription_id,
			status,
			tracking_number,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&patientID,
		&pharmacyID,
		&prescriptionID,
		&status,
		&trackingNumber,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		Status:         order.Status(status).String(),
		TrackingNumber: trackingNumber,
		CreatedAt:      createdAt,
		TotalPrice:     kernel.ZeroMoney(),
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.PatientID, err = kernel.UUIDFromBytes(patientID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.PharmacyID, err = kernel.UUIDFromBytes(pharmacyID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if prescriptionID.Valid {
		rxID, rxErr := kernel.UUIDFromBytes(prescriptionID.UUID[:])
		if rxErr != nil {
			return GetOrderQueryResponse{}, rxErr
		}
		resp.PrescriptionID = &rxID
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	for _, item := range items {
		resp.TotalPrice = resp.TotalPrice.Add(item.UnitPrice.MulQuantity(item.Quantity))
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	items := make([]OrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			medicine_id,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY medicine_id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var medicineID uuid.UUID
		var unitPrice decimal.Decimal

		err = rows.Scan(
			&medicineID,
			&item.Quantity,
			&unitPrice,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(medicineID[:])
		if idErr != nil {
			return nil, idErr
		}
		item.MedicineID = id

		price, priceErr := kernel.NewMoney(unitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item.UnitPrice = price

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

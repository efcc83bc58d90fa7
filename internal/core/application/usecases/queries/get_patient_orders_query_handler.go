package queries

import (
	"context"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPatientOrdersQueryHandler reads a patient's order history from the database.
// Newest orders come first; an unknown patient yields an empty slice, not an error.
//
// Example:
//
//	handler := NewGetPatientOrdersQueryHandler(db)
//	query, _ := NewGetPatientOrdersQuery(patientID)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get patient orders: %v", err)
//	    return err
//	}
type GetPatientOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPatientOrdersQueryHandler creates a handler for patient order history queries.
func NewGetPatientOrdersQueryHandler(db *gorm.DB) GetPatientOrdersQueryHandler {
	return GetPatientOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the patient's orders, newest first.
func (h GetPatientOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPatientOrdersQuery,
) ([]GetPatientOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPatientOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			pharmacy_id,
			status,
			tracking_number,
			created_at
		FROM orders
		WHERE patient_id = ?
		ORDER BY created_at DESC
	`, query.PatientID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPatientOrdersQueryResponse
		var id uuid.UUID
		var pharmacyID uuid.UUID
		var status int
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&pharmacyID,
			&status,
			&resp.TrackingNumber,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		pharmacy, idErr := kernel.UUIDFromBytes(pharmacyID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.PharmacyID = pharmacy

		resp.Status = order.Status(status).String()
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

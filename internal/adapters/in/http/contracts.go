package http

import (
	"time"

	"github.com/google/uuid"
)

// Request and response contracts for the HTTP API.
// All identifiers are UUIDs; money values travel as decimal strings.

// Error is the uniform error body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	PatientID      uuid.UUID        `json:"patient_id"`
	PharmacyID     uuid.UUID        `json:"pharmacy_id"`
	PrescriptionID *uuid.UUID       `json:"prescription_id,omitempty"`
	Items          []OrderLineInput `json:"items"`
}

// OrderLineInput is one requested line of a new order.
type OrderLineInput struct {
	MedicineID uuid.UUID `json:"medicine_id"`
	Quantity   int       `json:"quantity"`
}

// PlaceOrderResponse returns the identifier assigned to the new order.
type PlaceOrderResponse struct {
	ID uuid.UUID `json:"id"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:orderId/transition.
// TrackingNumber is only meaningful when transitioning to shipped.
type TransitionOrderRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

// OrderItem is one priced line in an order response.
type OrderItem struct {
	MedicineID uuid.UUID `json:"medicine_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  string    `json:"unit_price"`
}

// Order is the full order representation returned by GET /api/v1/orders/:orderId.
type Order struct {
	ID             uuid.UUID   `json:"id"`
	PatientID      uuid.UUID   `json:"patient_id"`
	PharmacyID     uuid.UUID   `json:"pharmacy_id"`
	PrescriptionID *uuid.UUID  `json:"prescription_id,omitempty"`
	Status         string      `json:"status"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
	TotalPrice     string      `json:"total_price"`
	CreatedAt      time.Time   `json:"created_at"`
	Items          []OrderItem `json:"items"`
}

// OrderSummary is one row of a patient's order history.
type OrderSummary struct {
	ID             uuid.UUID `json:"id"`
	PharmacyID     uuid.UUID `json:"pharmacy_id"`
	Status         string    `json:"status"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// UploadPrescriptionRequest is the body of POST /api/v1/prescriptions.
type UploadPrescriptionRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	ImagePath string    `json:"image_path"`
}

// UploadPrescriptionResponse returns the identifier assigned to the upload.
type UploadPrescriptionResponse struct {
	ID uuid.UUID `json:"id"`
}

// VerifyPrescriptionRequest is the body of POST /api/v1/prescriptions/:prescriptionId/verify.
// RejectionReason is required when Approve is false and forbidden otherwise.
type VerifyPrescriptionRequest struct {
	VerifierID      uuid.UUID `json:"verifier_id"`
	Approve         bool      `json:"approve"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
}

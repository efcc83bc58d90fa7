// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by patient and status.
type OrderDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PatientID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	PharmacyID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	PrescriptionID *uuid.UUID     `gorm:"type:uuid;index"`
	Status         int            `gorm:"type:int;not null;index"`
	TrackingNumber string         `gorm:"type:varchar(100)"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
	Version        int            `gorm:"type:int;not null"`
	Items          []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line with its frozen price snapshot.
// A medicine appears at most once per order, so the pair forms the key.
type OrderItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MedicineID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity   int             `gorm:"type:int;not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// TableName specifies the database table name for order item entities.
// Overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional prescription reference and
// every item with its price snapshot.
func fromDomain(order *order.Order) OrderDTO {
	orderID := order.ID().Bytes()

	var prescriptionID *uuid.UUID
	if id := order.PrescriptionID(); id != nil {
		raw := id.Bytes()
		prescriptionID = &raw
	}

	items := make([]OrderItemDTO, 0, len(order.Items()))
	for _, item := range order.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    orderID,
			MedicineID: item.MedicineID().Bytes(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:             orderID,
		PatientID:      order.PatientID().Bytes(),
		PharmacyID:     order.PharmacyID().Bytes(),
		PrescriptionID: prescriptionID,
		Status:         int(order.Status()),
		TrackingNumber: order.TrackingNumber(),
		CreatedAt:      order.CreatedAt(),
		UpdatedAt:      order.UpdatedAt(),
		Version:        order.Version(),
		Items:          items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items, status, tracking
// number, and version token using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	patientID, err := kernel.UUIDFromBytes(dto.PatientID[:])
	if err != nil {
		return nil, err
	}

	pharmacyID, err := kernel.UUIDFromBytes(dto.PharmacyID[:])
	if err != nil {
		return nil, err
	}

	var prescriptionID *kernel.UUID
	if dto.PrescriptionID != nil {
		pID, prescriptionErr := kernel.UUIDFromBytes((*dto.PrescriptionID)[:])
		if prescriptionErr != nil {
			return nil, prescriptionErr
		}

		prescriptionID = &pID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		patientID,
		pharmacyID,
		prescriptionID,
		items,
		order.Status(dto.Status),
		dto.TrackingNumber,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}

// itemToDomain converts an order item DTO to a domain value object.
func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	medicineID, err := kernel.UUIDFromBytes(dto.MedicineID[:])
	if err != nil {
		return order.Item{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(medicineID, dto.Quantity, unitPrice)
}

// Package medicinerepo provides data transfer objects and mapping functions for medicine persistence.
// This package implements the repository pattern for the medicine domain aggregate, handling
// the conversion between domain entities and database representations.
package medicinerepo

import (
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/medicine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MedicineDTO represents the database structure for persisting medicine aggregates.
// The (pharmacy_id, commercial_name) pair is unique so a pharmacy cannot list
// the same product twice.
type MedicineDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PharmacyID           uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_pharmacy_commercial_name"`
	CommercialName       string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_pharmacy_commercial_name"`
	GenericName          string          `gorm:"type:varchar(255);not null"`
	Manufacturer         string          `gorm:"type:varchar(255);not null"`
	Price                decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	StockQuantity        int             `gorm:"type:int;not null"`
	RequiresPrescription bool            `gorm:"not null"`
}

// TableName specifies the database table name for medicine entities.
// Overrides GORM's default naming convention to use "medicines".
func (MedicineDTO) TableName() string {
	return "medicines"
}

// fromDomain converts a medicine domain aggregate to its database representation.
func fromDomain(medicine *medicine.Medicine) MedicineDTO {
	return MedicineDTO{
		ID:                   medicine.ID().Bytes(),
		PharmacyID:           medicine.PharmacyID().Bytes(),
		CommercialName:       medicine.CommercialName(),
		GenericName:          medicine.GenericName(),
		Manufacturer:         medicine.Manufacturer(),
		Price:                medicine.Price().Decimal(),
		StockQuantity:        medicine.StockQuantity(),
		RequiresPrescription: medicine.RequiresPrescription(),
	}
}

// toDomain converts a database DTO to a medicine domain aggregate using RestoreMedicine.
func toDomain(dto MedicineDTO) (*medicine.Medicine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pharmacyID, err := kernel.UUIDFromBytes(dto.PharmacyID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return medicine.RestoreMedicine(
		id,
		pharmacyID,
		dto.CommercialName,
		dto.GenericName,
		dto.Manufacturer,
		price,
		dto.StockQuantity,
		dto.RequiresPrescription,
	)
}

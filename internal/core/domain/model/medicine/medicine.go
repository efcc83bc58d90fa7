package medicine

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	// ErrMedicineIsNotConstructed is returned when a Medicine instance was not
	// created through NewMedicine or RestoreMedicine.
	ErrMedicineIsNotConstructed = errors.New("Medicine must be created via NewMedicine or RestoreMedicine constructor")

	// ErrInsufficientStock indicates that a reservation asked for more units
	// than the medicine currently has in stock. Use errors.Is against this
	// sentinel; the concrete InsufficientStockError carries the quantities.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a failed stock reservation with the exact
// shortfall, so the caller can surface a precise cause.
type InsufficientStockError struct {
	MedicineID kernel.UUID
	Requested  int
	Available  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: medicine %s has %d units, %d requested",
		ErrInsufficientStock, e.MedicineID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// PriceQuote is a point-of-sale pricing snapshot for one order line.
// UnitPrice is the catalog price at the moment of the quote and LineTotal is
// UnitPrice multiplied by the quoted quantity. Once persisted into an order
// item the values are never re-derived from the catalog.
type PriceQuote struct {
	UnitPrice kernel.Money
	LineTotal kernel.Money
}

// Medicine represents one sellable product in one pharmacy's inventory.
//
// Medicine follows these invariants:
//   - Must have valid identifiers for itself and its pharmacy
//   - Commercial name, generic name, and manufacturer are required
//   - Unit price is strictly positive
//   - Stock quantity never goes negative
//   - (pharmacy, commercial name) is unique, enforced by the persistence layer
//
// Stock is mutated only through Reserve and Release; nothing else in the core
// touches the count. The persisted reservation must additionally be expressed
// as an atomic conditional update by the repository, since the in-memory
// check alone cannot serialize concurrent callers.
type Medicine struct {
	id                   kernel.UUID
	pharmacyID           kernel.UUID
	commercialName       string
	genericName          string
	manufacturer         string
	price                kernel.Money
	stockQuantity        int
	requiresPrescription bool

	guard guard.ConstructorGuard
}

// NewMedicine creates a Medicine with validation of every invariant.
// This is the only way to create a valid Medicine for a new catalog entry.
func NewMedicine(
	id kernel.UUID,
	pharmacyID kernel.UUID,
	commercialName string,
	genericName string,
	manufacturer string,
	price kernel.Money,
	stockQuantity int,
	requiresPrescription bool,
) (*Medicine, error) {
	m := &Medicine{
		requiresPrescription: requiresPrescription,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setPharmacyID(pharmacyID),
		m.setCommercialName(commercialName),
		m.setGenericName(genericName),
		m.setManufacturer(manufacturer),
		m.setPrice(price),
		m.setStockQuantity(stockQuantity),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMedicine reconstructs a Medicine from persistent storage, running
// the same validation as NewMedicine.
func RestoreMedicine(
	id kernel.UUID,
	pharmacyID kernel.UUID,
	commercialName string,
	genericName string,
	manufacturer string,
	price kernel.Money,
	stockQuantity int,
	requiresPrescription bool,
) (*Medicine, error) {
	return NewMedicine(id, pharmacyID, commercialName, genericName, manufacturer, price, stockQuantity, requiresPrescription)
}

// Validate ensures the Medicine instance was properly constructed.
func (m *Medicine) Validate() error {
	if m == nil {
		return ErrMedicineIsNotConstructed
	}
	return m.guard.Validate(ErrMedicineIsNotConstructed)
}

// ID returns the medicine's unique identifier.
func (m *Medicine) ID() kernel.UUID {
	return m.id
}

// PharmacyID returns the identifier of the pharmacy stocking this medicine.
func (m *Medicine) PharmacyID() kernel.UUID {
	return m.pharmacyID
}

// CommercialName returns the brand name of the medicine.
func (m *Medicine) CommercialName() string {
	return m.commercialName
}

// GenericName returns the scientific name of the medicine.
func (m *Medicine) GenericName() string {
	return m.genericName
}

// Manufacturer returns the manufacturer of the medicine.
func (m *Medicine) Manufacturer() string {
	return m.manufacturer
}

// Price returns the current catalog unit price.
func (m *Medicine) Price() kernel.Money {
	return m.price
}

// StockQuantity returns the units currently available for reservation.
func (m *Medicine) StockQuantity() int {
	return m.stockQuantity
}

// RequiresPrescription reports whether an order line for this medicine needs
// a verified prescription at admission time.
func (m *Medicine) RequiresPrescription() bool {
	return m.requiresPrescription
}

// BelongsTo reports whether this medicine is stocked by the given pharmacy.
func (m *Medicine) BelongsTo(pharmacyID kernel.UUID) bool {
	return m.pharmacyID.IsEqual(pharmacyID)
}

// Quote produces the pricing snapshot for an order line of the given quantity
// at the current catalog price. The returned values are meant to be frozen
// into the order item.
func (m *Medicine) Quote(quantity int) (PriceQuote, error) {
	if quantity < 1 {
		return PriceQuote{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return PriceQuote{
		UnitPrice: m.price,
		LineTotal: m.price.MulQuantity(quantity),
	}, nil
}

// Reserve decrements available stock by quantity.
//
// Business rules:
//   - Quantity must be at least 1
//   - Stock never goes negative; a shortfall fails with InsufficientStockError
//
// Reserve expresses the ledger invariant on the aggregate; the repository
// must apply the same check-and-decrement as one conditional update when
// persisting, so concurrent reservations cannot both succeed past the
// available stock.
func (m *Medicine) Reserve(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	if m.stockQuantity < quantity {
		return &InsufficientStockError{
			MedicineID: m.id,
			Requested:  quantity,
			Available:  m.stockQuantity,
		}
	}

	m.stockQuantity -= quantity
	return nil
}

// Release returns previously reserved units to stock. Used to compensate a
// cancelled order.
func (m *Medicine) Release(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	m.stockQuantity += quantity
	return nil
}

func (m *Medicine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Medicine) setPharmacyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.pharmacyID = id
	return nil
}

func (m *Medicine) setCommercialName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("commercialName")
	}
	m.commercialName = name
	return nil
}

func (m *Medicine) setGenericName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("genericName")
	}
	m.genericName = name
	return nil
}

func (m *Medicine) setManufacturer(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("manufacturer")
	}
	m.manufacturer = name
	return nil
}

func (m *Medicine) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s is not greater than 0", price.String()),
		)
	}
	m.price = price
	return nil
}

func (m *Medicine) setStockQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"stockQuantity",
			fmt.Errorf("%d is negative", quantity),
		)
	}
	m.stockQuantity = quantity
	return nil
}

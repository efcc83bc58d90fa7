package order

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem constructor.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line within an order: a medicine, a quantity, and the unit
// price frozen at admission time. Items are value objects owned by their
// Order; they are created atomically with it and never mutated afterwards.
// In particular the unit price is a snapshot and is never recomputed from
// the live catalog.
type Item struct {
	medicineID kernel.UUID
	quantity   int
	unitPrice  kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates an order line with validation.
//
// Parameters:
//   - medicineID: the medicine being ordered (must be a valid UUID)
//   - quantity: units ordered (must be at least 1)
//   - unitPrice: point-of-sale unit price snapshot (must be positive)
func NewItem(medicineID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMedicineID(medicineID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// MedicineID returns the identifier of the ordered medicine.
func (i Item) MedicineID() kernel.UUID {
	return i.medicineID
}

// Quantity returns the ordered unit count.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the unit price snapshot taken at admission time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns quantity times the snapshot unit price.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.MulQuantity(i.quantity)
}

func (i *Item) setMedicineID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.medicineID = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitPrice",
			fmt.Errorf("%s is not greater than 0", price.String()),
		)
	}
	i.unitPrice = price
	return nil
}

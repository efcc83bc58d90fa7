package order

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order represents one purchase transaction. It is the aggregate root that
// owns the order line items and drives the lifecycle from admission through
// delivery or cancellation.
//
// Order follows these invariants:
//   - Must have valid identifiers for itself, its patient, and its pharmacy
//   - Must carry at least one line item; items are immutable after creation
//   - Status transitions follow the adjacency table in this package
//   - A tracking number must be set before the order can be shipped
//   - Orders are never deleted; cancellation is a state, not a deletion
//
// The version field is an optimistic concurrency token: every mutation bumps
// it, and the repository refuses to persist an order whose stored version
// moved in the meantime. That is how two concurrent transitions on the same
// order are serialized.
type Order struct {
	id             kernel.UUID
	patientID      kernel.UUID
	pharmacyID     kernel.UUID
	prescriptionID *kernel.UUID
	items          []Item
	status         Status
	trackingNumber string
	createdAt      time.Time
	updatedAt      time.Time
	version        int

	isConstructed bool
}

// NewOrder admits a new order in Placed status. This is the only way to
// create a valid Order; the caller (the admission service) is responsible
// for having validated the business preconditions — prescription gate and
// pharmacy/line consistency — before construction.
//
// Parameters:
//   - id: unique identifier for the order
//   - patientID: the authenticated patient placing the order
//   - pharmacyID: the pharmacy fulfilling the order
//   - prescriptionID: the verified prescription backing the order, nil when
//     no line requires one
//   - items: the order lines with their pricing snapshots (at least one)
func NewOrder(
	id kernel.UUID,
	patientID kernel.UUID,
	pharmacyID kernel.UUID,
	prescriptionID *kernel.UUID,
	items []Item,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Placed,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPatientID(patientID),
		o.setPharmacyID(pharmacyID),
		o.setPrescriptionID(prescriptionID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, preserving its
// status, tracking number, timestamps, and version token.
func RestoreOrder(
	id kernel.UUID,
	patientID kernel.UUID,
	pharmacyID kernel.UUID,
	prescriptionID *kernel.UUID,
	items []Item,
	status Status,
	trackingNumber string,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Order, error) {
	o, err := NewOrder(id, patientID, pharmacyID, prescriptionID, items)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidError("version")
	}

	o.status = status
	o.trackingNumber = trackingNumber
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	o.version = version
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// PatientID returns the patient who placed the order.
func (o *Order) PatientID() kernel.UUID {
	return o.patientID
}

// PharmacyID returns the pharmacy fulfilling the order.
func (o *Order) PharmacyID() kernel.UUID {
	return o.pharmacyID
}

// PrescriptionID returns the prescription backing the order.
// Returns nil when no line required one.
func (o *Order) PrescriptionID() *kernel.UUID {
	return o.prescriptionID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// TrackingNumber returns the shipping tracking number, empty until set.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// CreatedAt returns when the order was admitted.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last mutated.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic concurrency token as it was loaded from
// storage. A concurrent write invalidates the token and the next guarded
// update fails with a conflict.
func (o *Order) Version() int {
	return o.version
}

// TotalAmount returns the sum of all line subtotals, computed from the
// frozen snapshots rather than the live catalog.
func (o *Order) TotalAmount() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// SetTrackingNumber records the shipping tracking number.
//
// Business rules:
//   - The tracking number must not be empty
//   - Terminal orders cannot be changed
func (o *Order) SetTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if o.status.IsFinal() {
		return &InvalidTransitionError{From: o.status, To: o.status}
	}

	o.trackingNumber = trackingNumber
	o.touch()
	return nil
}

// TransitionTo moves the order to the target status.
//
// Business rules, checked in order:
//   - The target must be a defined status
//   - Requesting the current status again fails with ErrNoOpTransition
//   - The target must be in the allowed-to set of the current status,
//     otherwise the operation fails with InvalidTransitionError
//   - Moving to Shipped requires a tracking number to be set
//
// TransitionTo mutates only the aggregate. The compensating stock release on
// cancellation is the command handler's job, inside the same transaction
// that persists the new status.
func (o *Order) TransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == o.status {
		return ErrNoOpTransition
	}
	if !o.status.CanTransitionTo(target) {
		return &InvalidTransitionError{From: o.status, To: target}
	}
	if target == Shipped && o.trackingNumber == "" {
		return ErrMissingTrackingNumber
	}

	o.status = target
	o.touch()
	return nil
}

// touch bumps the modification timestamp. The version token is left alone:
// it reflects the persisted row and is advanced by the repository's guarded
// update, not by in-memory mutation.
func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPatientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.patientID = id
	return nil
}

func (o *Order) setPharmacyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.pharmacyID = id
	return nil
}

func (o *Order) setPrescriptionID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.prescriptionID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

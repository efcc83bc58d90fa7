package services

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/medicine"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/domain/model/prescription"
	"pharmacy/internal/pkg/errs"
)

var (
	// ErrMedicineNotInPharmacy indicates that a requested line references a
	// medicine stocked by a different pharmacy than the order's.
	ErrMedicineNotInPharmacy = errors.New("medicine does not belong to the order's pharmacy")

	// ErrPrescriptionRequired indicates that a line's medicine requires a
	// prescription but the order request carried none.
	ErrPrescriptionRequired = fmt.Errorf("%w: a verified prescription is required for this order", errs.ErrAuthorization)
)

// Line is one requested order line before admission: a medicine reference
// and a quantity. Pricing is not part of the request; it is snapshotted
// during admission.
type Line struct {
	MedicineID kernel.UUID
	Quantity   int
}

// OrderAdmission is a domain service that turns a create-order request into
// a validated Order aggregate.
//
// Key responsibilities:
//   - Validating that every line's medicine belongs to the order's pharmacy
//   - Gating admission on prescription verification and ownership
//   - Snapshotting the point-of-sale unit price into every line
//
// OrderAdmission is pure: it never touches storage. The caller loads the
// medicines and the prescription, and persists the resulting order together
// with the stock reservations in one transaction.
type OrderAdmission struct{}

// NewOrderAdmission creates a new OrderAdmission instance.
func NewOrderAdmission() OrderAdmission {
	return OrderAdmission{}
}

// Admit validates the request and builds the Order aggregate in Placed
// status.
//
// Parameters:
//   - orderID: identifier for the new order
//   - patientID: the authenticated patient placing the order
//   - pharmacyID: the pharmacy fulfilling the order
//   - rx: the prescription referenced by the request, nil when none was given
//   - medicines: the loaded medicines, keyed by their identifier; must cover
//     every requested line
//   - lines: the requested lines (at least one, positive quantities)
//
// Returns the admitted order, or a typed rejection:
//   - ErrMedicineNotInPharmacy when a line crosses pharmacies
//   - ErrPrescriptionRequired when a line needs a prescription and none was given
//   - prescription.ErrNotVerified / prescription.ErrOwnershipMismatch from the gate
//   - errs.ErrValueIsInvalid for malformed quantities
//
// Admit does not reserve stock; reservation is the enclosing transaction's
// job so that all-or-nothing semantics hold across lines.
func (s OrderAdmission) Admit(
	orderID kernel.UUID,
	patientID kernel.UUID,
	pharmacyID kernel.UUID,
	rx *prescription.Prescription,
	medicines map[kernel.UUID]*medicine.Medicine,
	lines []Line,
) (*order.Order, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}

	needsPrescription := false
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		med, ok := medicines[line.MedicineID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("medicineId", line.MedicineID.String())
		}
		if err := med.Validate(); err != nil {
			return nil, err
		}
		if !med.BelongsTo(pharmacyID) {
			return nil, fmt.Errorf("%w: medicine %s", ErrMedicineNotInPharmacy, med.ID())
		}
		if med.RequiresPrescription() {
			needsPrescription = true
		}

		quote, err := med.Quote(line.Quantity)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(med.ID(), line.Quantity, quote.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var prescriptionID *kernel.UUID
	if needsPrescription {
		if rx == nil {
			return nil, ErrPrescriptionRequired
		}
		if err := rx.Validate(); err != nil {
			return nil, err
		}
		if err := rx.CheckUsableBy(patientID); err != nil {
			return nil, err
		}
		id := rx.ID()
		prescriptionID = &id
	} else if rx != nil {
		// A prescription may accompany an order that does not need one,
		// but it still has to pass the gate.
		if err := rx.CheckUsableBy(patientID); err != nil {
			return nil, err
		}
		id := rx.ID()
		prescriptionID = &id
	}

	return order.NewOrder(orderID, patientID, pharmacyID, prescriptionID, items)
}

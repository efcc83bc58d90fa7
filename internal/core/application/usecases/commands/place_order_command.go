package commands

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// OrderLine is one requested line of a new order: which medicine and how many
// units. Prices are not part of the request; they are frozen from the catalog
// at admission time.
type OrderLine struct {
	MedicineID kernel.UUID
	Quantity   int
}

// PlaceOrderCommand represents a patient's request to place an order with a
// pharmacy. Encapsulates the requested lines and the optional prescription
// covering them.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, patientID, pharmacyID, &prescriptionID, lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	patientID      kernel.UUID
	pharmacyID     kernel.UUID
	prescriptionID *kernel.UUID
	lines          []OrderLine

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates all identifiers, requires at least one line, and rejects
// non-positive quantities and duplicate medicines across lines.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	patientID kernel.UUID,
	pharmacyID kernel.UUID,
	prescriptionID *kernel.UUID,
	lines []OrderLine,
) (PlaceOrderCommand, error) {
	orderCommand := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setPatientID(patientID),
		orderCommand.setPharmacyID(pharmacyID),
		orderCommand.setPrescriptionID(prescriptionID),
		orderCommand.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PatientID returns the identifier of the ordering patient.
func (c PlaceOrderCommand) PatientID() kernel.UUID {
	return c.patientID
}

// PharmacyID returns the identifier of the pharmacy the order targets.
func (c PlaceOrderCommand) PharmacyID() kernel.UUID {
	return c.pharmacyID
}

// PrescriptionID returns the optional prescription reference.
func (c PlaceOrderCommand) PrescriptionID() *kernel.UUID {
	return c.prescriptionID
}

// Lines returns the requested order lines.
func (c PlaceOrderCommand) Lines() []OrderLine {
	return c.lines
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setPatientID(patientID kernel.UUID) error {
	if err := patientID.Validate(); err != nil {
		return err
	}

	c.patientID = patientID
	return nil
}

func (c *PlaceOrderCommand) setPharmacyID(pharmacyID kernel.UUID) error {
	if err := pharmacyID.Validate(); err != nil {
		return err
	}

	c.pharmacyID = pharmacyID
	return nil
}

func (c *PlaceOrderCommand) setPrescriptionID(prescriptionID *kernel.UUID) error {
	if prescriptionID == nil {
		return nil
	}
	if err := prescriptionID.Validate(); err != nil {
		return err
	}

	id := *prescriptionID
	c.prescriptionID = &id
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, line := range lines {
		if err := line.MedicineID.Validate(); err != nil {
			return err
		}
		if line.Quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("%d is not greater than 0", line.Quantity),
			)
		}
		if _, ok := seen[line.MedicineID]; ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"lines",
				fmt.Errorf("medicine %s appears more than once", line.MedicineID),
			)
		}
		seen[line.MedicineID] = struct{}{}
	}

	c.lines = append([]OrderLine(nil), lines...)
	return nil
}

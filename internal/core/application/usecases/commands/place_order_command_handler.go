package commands

import (
	"context"
	"sort"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/medicine"
	"pharmacy/internal/core/domain/model/prescription"
	"pharmacy/internal/core/domain/services"
)

// PlaceOrderCommandHandler orchestrates order admission: it loads the catalog
// rows, runs the prescription gate and the pricing snapshot through the
// admission service, reserves stock for every line, and inserts the order.
// All of it happens in one transaction, so a mid-flight failure releases the
// already reserved lines via rollback.
//
// Lost concurrency races surface as conflicts and the whole transaction is
// retried a bounded number of times.
type PlaceOrderCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
	admission  services.OrderAdmission
}

// NewPlaceOrderCommandHandler creates a handler for order admission operations.
// Requires a PlaceOrderUoWFactory for transactional persistence.
func NewPlaceOrderCommandHandler(uowFactory PlaceOrderUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		admission:  services.NewOrderAdmission(),
	}
}

// Handle processes the order admission command.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		return h.admit(ctx, cmd)
	})
}

func (h PlaceOrderCommandHandler) admit(ctx context.Context, cmd PlaceOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	medicineRepo := uow.MedicineRepository()

	lines := sortedLines(cmd.Lines())
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MedicineID)
	}

	loaded, err := medicineRepo.GetAllByIDs(ctx, ids)
	if err != nil {
		return err
	}
	medicines := make(map[kernel.UUID]*medicine.Medicine, len(loaded))
	for _, m := range loaded {
		medicines[m.ID()] = m
	}

	var rx *prescription.Prescription
	if id := cmd.PrescriptionID(); id != nil {
		rx, err = uow.PrescriptionRepository().Get(ctx, *id)
		if err != nil {
			return err
		}
	}

	admissionLines := make([]services.Line, 0, len(lines))
	for _, line := range lines {
		admissionLines = append(admissionLines, services.Line{
			MedicineID: line.MedicineID,
			Quantity:   line.Quantity,
		})
	}

	newOrder, err := h.admission.Admit(
		cmd.OrderID(), cmd.PatientID(), cmd.PharmacyID(),
		rx, medicines, admissionLines,
	)
	if err != nil {
		return err
	}

	// Reserve in ascending medicine-ID order so concurrent admissions touch
	// rows in the same sequence and cannot deadlock each other.
	for _, line := range lines {
		if err = medicineRepo.Reserve(ctx, line.MedicineID, line.Quantity); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// sortedLines returns a copy of the lines ordered by ascending medicine ID.
func sortedLines(lines []OrderLine) []OrderLine {
	sorted := append([]OrderLine(nil), lines...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MedicineID.String() < sorted[j].MedicineID.String()
	})
	return sorted
}

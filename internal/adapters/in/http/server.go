package http

import (
	"errors"
	"net/http"

	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/medicine"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/domain/model/prescription"
	"pharmacy/internal/core/domain/services"
	"pharmacy/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP API for order and prescription workflows.
// It coordinates between HTTP handlers and application use cases; all domain
// decisions live in the handlers it delegates to.
type Server struct {
	// Command handlers
	placeOrderHandler         commands.PlaceOrderCommandHandler
	transitionOrderHandler    commands.TransitionOrderCommandHandler
	uploadPrescriptionHandler commands.UploadPrescriptionCommandHandler
	verifyPrescriptionHandler commands.VerifyPrescriptionCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getPatientOrdersHandler queries.GetPatientOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	uploadPrescriptionHandler commands.UploadPrescriptionCommandHandler,
	verifyPrescriptionHandler commands.VerifyPrescriptionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getPatientOrdersHandler queries.GetPatientOrdersQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:         placeOrderHandler,
		transitionOrderHandler:    transitionOrderHandler,
		uploadPrescriptionHandler: uploadPrescriptionHandler,
		verifyPrescriptionHandler: verifyPrescriptionHandler,
		getOrderHandler:           getOrderHandler,
		getPatientOrdersHandler:   getPatientOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/transition", s.TransitionOrder)
	api.GET("/patients/:patientId/orders", s.GetPatientOrders)
	api.POST("/prescriptions", s.UploadPrescription)
	api.POST("/prescriptions/:prescriptionId/verify", s.VerifyPrescription)
}

// PlaceOrder handles POST /api/v1/orders - admits a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patientID, err := kernel.UUIDFromBytes(req.PatientID[:])
	if err != nil {
		return badRequest(ctx, "Invalid patient_id: "+err.Error())
	}
	pharmacyID, err := kernel.UUIDFromBytes(req.PharmacyID[:])
	if err != nil {
		return badRequest(ctx, "Invalid pharmacy_id: "+err.Error())
	}

	var prescriptionID *kernel.UUID
	if req.PrescriptionID != nil {
		rxID, rxErr := kernel.UUIDFromBytes(req.PrescriptionID[:])
		if rxErr != nil {
			return badRequest(ctx, "Invalid prescription_id: "+rxErr.Error())
		}
		prescriptionID = &rxID
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		medicineID, idErr := kernel.UUIDFromBytes(item.MedicineID[:])
		if idErr != nil {
			return badRequest(ctx, "Invalid medicine_id: "+idErr.Error())
		}
		lines = append(lines, commands.OrderLine{
			MedicineID: medicineID,
			Quantity:   item.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, patientID, pharmacyID, prescriptionID, lines)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{ID: orderID.Bytes()})
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order with items.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	result := Order{
		ID:             resp.ID.Bytes(),
		PatientID:      resp.PatientID.Bytes(),
		PharmacyID:     resp.PharmacyID.Bytes(),
		Status:         resp.Status,
		TrackingNumber: resp.TrackingNumber,
		TotalPrice:     resp.TotalPrice.String(),
		CreatedAt:      resp.CreatedAt,
		Items:          make([]OrderItem, len(resp.Items)),
	}
	if resp.PrescriptionID != nil {
		rxID := resp.PrescriptionID.Bytes()
		result.PrescriptionID = &rxID
	}
	for i, item := range resp.Items {
		result.Items[i] = OrderItem{
			MedicineID: item.MedicineID.Bytes(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.String(),
		}
	}

	return ctx.JSON(http.StatusOK, result)
}

// TransitionOrder handles POST /api/v1/orders/:orderId/transition - moves an
// order to a new lifecycle status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req TransitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.Status)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, req.TrackingNumber)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPatientOrders handles GET /api/v1/patients/:patientId/orders - retrieves
// a patient's order history, newest first.
func (s *Server) GetPatientOrders(ctx echo.Context) error {
	patientID, err := kernel.UUIDFromString(ctx.Param("patientId"))
	if err != nil {
		return badRequest(ctx, "Invalid patient ID")
	}

	query, err := queries.NewGetPatientOrdersQuery(patientID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	orders, err := s.getPatientOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:             o.ID.Bytes(),
			PharmacyID:     o.PharmacyID.Bytes(),
			Status:         o.Status,
			TrackingNumber: o.TrackingNumber,
			CreatedAt:      o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UploadPrescription handles POST /api/v1/prescriptions - registers an
// uploaded prescription awaiting verification.
func (s *Server) UploadPrescription(ctx echo.Context) error {
	var req UploadPrescriptionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patientID, err := kernel.UUIDFromBytes(req.PatientID[:])
	if err != nil {
		return badRequest(ctx, "Invalid patient_id: "+err.Error())
	}

	prescriptionID := kernel.NewUUID()
	cmd, err := commands.NewUploadPrescriptionCommand(prescriptionID, patientID, req.ImagePath)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.uploadPrescriptionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, UploadPrescriptionResponse{ID: prescriptionID.Bytes()})
}

// VerifyPrescription handles POST /api/v1/prescriptions/:prescriptionId/verify -
// records a pharmacist's verdict on an uploaded prescription.
func (s *Server) VerifyPrescription(ctx echo.Context) error {
	prescriptionID, err := kernel.UUIDFromString(ctx.Param("prescriptionId"))
	if err != nil {
		return badRequest(ctx, "Invalid prescription ID")
	}

	var req VerifyPrescriptionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	verifierID, err := kernel.UUIDFromBytes(req.VerifierID[:])
	if err != nil {
		return badRequest(ctx, "Invalid verifier_id: "+err.Error())
	}

	cmd, err := commands.NewVerifyPrescriptionCommand(prescriptionID, verifierID, req.Approve, req.RejectionReason)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.verifyPrescriptionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// errorResponse maps domain and application errors to HTTP status codes.
//
// The taxonomy: validation failures are 400, prescription gate refusals are
// 403, missing aggregates are 404, and anything that lost a race or hit a
// business-state wall (stock, transitions, verification finality) is 409.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrAuthorization):
		status = http.StatusForbidden
	case errors.Is(err, medicine.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNoOpTransition),
		errors.Is(err, order.ErrMissingTrackingNumber),
		errors.Is(err, prescription.ErrAlreadyFinalized),
		errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrMedicineNotInPharmacy),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

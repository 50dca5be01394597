// Package http provides the inbound HTTP adapter. It translates REST
// requests into commands and queries and maps domain errors onto HTTP
// status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"donedelivery/internal/core/application/usecases/commands"
	"donedelivery/internal/core/application/usecases/queries"
	"donedelivery/internal/core/domain/model/kernel"
	"donedelivery/internal/core/domain/model/parcel"
	"donedelivery/internal/core/ports"
	"donedelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createParcelHandler       commands.CreateParcelCommandHandler
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler
	recordPaymentHandler      commands.RecordPaymentCommandHandler

	// Query handlers
	getParcelByTrackingNumberHandler queries.GetParcelByTrackingNumberQueryHandler
	getParcelsByStatusHandler        queries.GetParcelsByStatusQueryHandler
	getDriverStatsHandler            queries.GetDriverStatsQueryHandler

	clock ports.Clock
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	getParcelByTrackingNumberHandler queries.GetParcelByTrackingNumberQueryHandler,
	getParcelsByStatusHandler queries.GetParcelsByStatusQueryHandler,
	getDriverStatsHandler queries.GetDriverStatsQueryHandler,
	clock ports.Clock,
) *Server {
	return &Server{
		createParcelHandler:              createParcelHandler,
		updateParcelStatusHandler:        updateParcelStatusHandler,
		recordPaymentHandler:             recordPaymentHandler,
		getParcelByTrackingNumberHandler: getParcelByTrackingNumberHandler,
		getParcelsByStatusHandler:        getParcelsByStatusHandler,
		getDriverStatsHandler:            getDriverStatsHandler,
		clock:                            clock,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels", s.GetParcels)
	api.POST("/parcels/:id/status", s.UpdateParcelStatus)
	api.POST("/parcels/:id/payment", s.RecordPayment)
	api.GET("/parcels/track/:trackingNumber", s.TrackParcel)
	api.GET("/drivers/:id/stats", s.GetDriverStats)

	e.GET("/health", s.Health)
}

// Error is the JSON error envelope returned by every failing request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PartyRequest carries the contact details of a sender or receiver.
type PartyRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
	Address  string `json:"address"`
}

// PackageRequest carries the physical description of the shipment.
type PackageRequest struct {
	Description string  `json:"description"`
	WeightKg    float64 `json:"weightKg"`
	Value       float64 `json:"value"`
	DistanceKm  float64 `json:"distanceKm"`
}

// ActorRequest identifies who performs an operation.
type ActorRequest struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// CreateParcelRequest is the body of POST /api/v1/parcels.
type CreateParcelRequest struct {
	Sender    PartyRequest   `json:"sender"`
	Receiver  PartyRequest   `json:"receiver"`
	Package   PackageRequest `json:"package"`
	CreatedBy ActorRequest   `json:"createdBy"`
}

// CreateParcelResponse is the body returned on successful creation.
type CreateParcelResponse struct {
	ID              string  `json:"id"`
	TrackingNumber  string  `json:"trackingNumber"`
	TotalAmount     float64 `json:"totalAmount"`
	Currency        string  `json:"currency"`
	FormattedAmount string  `json:"formattedAmount"`
}

// CreateParcel handles POST /api/v1/parcels - registers a new shipment.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var req CreateParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	sender, err := partyFromRequest(req.Sender)
	if err != nil {
		return s.mapError(ctx, err)
	}

	receiver, err := partyFromRequest(req.Receiver)
	if err != nil {
		return s.mapError(ctx, err)
	}

	pack, err := parcel.NewPackageInfo(
		req.Package.Description,
		req.Package.WeightKg,
		req.Package.Value,
		req.Package.DistanceKm,
	)
	if err != nil {
		return s.mapError(ctx, err)
	}

	createdBy, err := actorFromRequest(req.CreatedBy)
	if err != nil {
		return s.mapError(ctx, err)
	}

	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), sender, receiver, pack, createdBy)
	if err != nil {
		return s.mapError(ctx, err)
	}

	result, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateParcelResponse{
		ID:              result.ParcelID.String(),
		TrackingNumber:  result.TrackingNumber.String(),
		TotalAmount:     result.TotalAmount.Amount(),
		Currency:        result.TotalAmount.Currency(),
		FormattedAmount: result.TotalAmount.String(),
	})
}

// UpdateParcelStatusRequest is the body of POST /api/v1/parcels/:id/status.
type UpdateParcelStatusRequest struct {
	Status        string       `json:"status"`
	Actor         ActorRequest `json:"actor"`
	Note          string       `json:"note"`
	DriverID      string       `json:"driverId"`
	ProofImageURL string       `json:"proofImageUrl"`
}

// UpdateParcelStatus handles POST /api/v1/parcels/:id/status - transitions
// a parcel through its lifecycle.
func (s *Server) UpdateParcelStatus(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid parcel ID",
		})
	}

	var req UpdateParcelStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := parcel.StatusFromString(req.Status)
	if err != nil {
		return s.mapError(ctx, err)
	}

	actor, err := actorFromRequest(req.Actor)
	if err != nil {
		return s.mapError(ctx, err)
	}

	var driverID *kernel.UUID
	if req.DriverID != "" {
		id, idErr := kernel.UUIDFromString(req.DriverID)
		if idErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid driver ID",
			})
		}
		driverID = &id
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(
		parcelID, target, actor, req.Note, driverID, req.ProofImageURL,
	)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.updateParcelStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"id":     parcelID.String(),
		"status": target.String(),
	})
}

// RecordPaymentRequest is the body of POST /api/v1/parcels/:id/payment.
type RecordPaymentRequest struct {
	Status    string `json:"status"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

// RecordPayment handles POST /api/v1/parcels/:id/payment - records a
// payment state change, typically from the payment provider callback.
func (s *Server) RecordPayment(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid parcel ID",
		})
	}

	var req RecordPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := parcel.PaymentStatusFromString(req.Status)
	if err != nil {
		return s.mapError(ctx, err)
	}

	cmd, err := commands.NewRecordPaymentCommand(parcelID, target, req.Method, req.Reference)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"id":            parcelID.String(),
		"paymentStatus": target.String(),
	})
}

// TimelineStepResponse is one rung of the tracking timeline.
type TimelineStepResponse struct {
	Status      string     `json:"status"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Reached     bool       `json:"reached"`
	Active      bool       `json:"active"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// TrackParcelResponse is the public tracking view.
type TrackParcelResponse struct {
	TrackingNumber  string                 `json:"trackingNumber"`
	Status          string                 `json:"status"`
	SenderName      string                 `json:"senderName"`
	SenderAddress   string                 `json:"senderAddress"`
	ReceiverName    string                 `json:"receiverName"`
	ReceiverAddress string                 `json:"receiverAddress"`
	Description     string                 `json:"description"`
	TotalAmount     float64                `json:"totalAmount"`
	FormattedAmount string                 `json:"formattedAmount"`
	CreatedAt       time.Time              `json:"createdAt"`
	Timeline        []TimelineStepResponse `json:"timeline"`
	ProofImageURL   string                 `json:"proofImageUrl,omitempty"`
}

// TrackParcel handles GET /api/v1/parcels/track/:trackingNumber - the
// public tracking lookup.
func (s *Server) TrackParcel(ctx echo.Context) error {
	trackingNumber, err := kernel.TrackingNumberFromString(ctx.Param("trackingNumber"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking number",
		})
	}

	query, err := queries.NewGetParcelByTrackingNumberQuery(trackingNumber)
	if err != nil {
		return s.mapError(ctx, err)
	}

	view, err := s.getParcelByTrackingNumberHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	timeline := make([]TimelineStepResponse, 0, len(view.Timeline))
	for _, step := range view.Timeline {
		timeline = append(timeline, TimelineStepResponse{
			Status:      step.Status.String(),
			Title:       step.Title,
			Description: step.Description,
			Reached:     step.Reached,
			Active:      step.Active,
			Timestamp:   step.Timestamp,
			Note:        step.Note,
		})
	}

	return ctx.JSON(http.StatusOK, TrackParcelResponse{
		TrackingNumber:  view.TrackingNumber,
		Status:          view.Status.String(),
		SenderName:      view.SenderName,
		SenderAddress:   view.SenderAddress,
		ReceiverName:    view.ReceiverName,
		ReceiverAddress: view.ReceiverAddress,
		Description:     view.Description,
		TotalAmount:     view.TotalAmount.Amount(),
		FormattedAmount: view.TotalAmount.String(),
		CreatedAt:       view.CreatedAt,
		Timeline:        timeline,
		ProofImageURL:   view.ProofImageURL,
	})
}

// ParcelSummaryResponse is one row of the status listing.
type ParcelSummaryResponse struct {
	ID              string    `json:"id"`
	TrackingNumber  string    `json:"trackingNumber"`
	Status          string    `json:"status"`
	SenderName      string    `json:"senderName"`
	SenderAddress   string    `json:"senderAddress"`
	ReceiverName    string    `json:"receiverName"`
	ReceiverAddress string    `json:"receiverAddress"`
	TotalAmount     float64   `json:"totalAmount"`
	DriverID        string    `json:"driverId,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// GetParcels handles GET /api/v1/parcels?status=&driverId= - lists parcels
// in a lifecycle status, optionally for one driver.
func (s *Server) GetParcels(ctx echo.Context) error {
	status, err := parcel.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid or missing status parameter",
		})
	}

	var driverID *kernel.UUID
	if raw := ctx.QueryParam("driverId"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid driver ID",
			})
		}
		driverID = &id
	}

	query, err := queries.NewGetParcelsByStatusQuery(status, driverID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	parcels, err := s.getParcelsByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := make([]ParcelSummaryResponse, 0, len(parcels))
	for _, p := range parcels {
		summary := ParcelSummaryResponse{
			ID:              p.ID.String(),
			TrackingNumber:  p.TrackingNumber,
			Status:          p.Status.String(),
			SenderName:      p.SenderName,
			SenderAddress:   p.SenderAddress,
			ReceiverName:    p.ReceiverName,
			ReceiverAddress: p.ReceiverAddress,
			TotalAmount:     p.TotalAmount.Amount(),
			UpdatedAt:       p.UpdatedAt,
		}
		if p.DriverID != nil {
			summary.DriverID = p.DriverID.String()
		}
		response = append(response, summary)
	}

	return ctx.JSON(http.StatusOK, response)
}

// DriverStatsResponse carries a driver's activity counters.
type DriverStatsResponse struct {
	Pickups   int64     `json:"pickups"`
	Delivered int64     `json:"delivered"`
	Active    int64     `json:"active"`
	Since     time.Time `json:"since"`
}

// GetDriverStats handles GET /api/v1/drivers/:id/stats - a driver's
// activity counters. The window defaults to the start of the current UTC
// day and can be overridden with a ?since=RFC3339 parameter.
func (s *Server) GetDriverStats(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid driver ID",
		})
	}

	since := startOfDay(s.clock.Now())
	if raw := ctx.QueryParam("since"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid since parameter, expected RFC3339",
			})
		}
		since = parsed
	}

	query, err := queries.NewGetDriverStatsQuery(driverID, since)
	if err != nil {
		return s.mapError(ctx, err)
	}

	stats, err := s.getDriverStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DriverStatsResponse{
		Pickups:   stats.Pickups,
		Delivered: stats.Delivered,
		Active:    stats.Active,
		Since:     since,
	})
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// mapError translates domain errors to HTTP status codes.
func (s *Server) mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Parcel not found",
		})
	case errors.Is(err, errs.ErrVersionConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Parcel was modified concurrently, please retry",
		})
	case errors.Is(err, parcel.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, parcel.ErrProofOfDeliveryRequired):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Proof of delivery image is required",
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func partyFromRequest(req PartyRequest) (parcel.Party, error) {
	return parcel.NewParty(req.Name, req.Phone, req.Email, req.WhatsApp, req.Address)
}

func actorFromRequest(req ActorRequest) (parcel.Actor, error) {
	id, err := kernel.UUIDFromString(req.ID)
	if err != nil {
		return parcel.Actor{}, errs.NewValueIsInvalidErrorWithCause("actor.id", err)
	}

	role, err := parcel.RoleFromString(req.Role)
	if err != nil {
		return parcel.Actor{}, err
	}

	return parcel.NewActor(id, role)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

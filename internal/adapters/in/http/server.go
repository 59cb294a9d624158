// Package http provides the inbound HTTP adapter: an echo server that
// translates REST requests into commands and queries.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/verification"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createCourierHandler   commands.CreateCourierCommandHandler
	recordHeartbeatHandler commands.RecordHeartbeatCommandHandler
	placeOrderHandler      commands.PlaceOrderCommandHandler
	approveOrderHandler    commands.ApproveOrderCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	issueCodeHandler       commands.IssueVerificationCodeCommandHandler
	confirmPickupHandler   commands.ConfirmPickupCommandHandler
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler
	requestPayoutHandler   commands.RequestPayoutCommandHandler
	resolvePayoutHandler   commands.ResolvePayoutCommandHandler

	// Query handlers
	dispatchBacklogHandler  queries.GetDispatchBacklogQueryHandler
	payeeEarningsHandler    queries.GetPayeeEarningsQueryHandler
	payoutsForReviewHandler queries.GetPayoutsForReviewQueryHandler
	couriersHandler         queries.GetCouriersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createCourierHandler commands.CreateCourierCommandHandler,
	recordHeartbeatHandler commands.RecordHeartbeatCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	approveOrderHandler commands.ApproveOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	issueCodeHandler commands.IssueVerificationCodeCommandHandler,
	confirmPickupHandler commands.ConfirmPickupCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	requestPayoutHandler commands.RequestPayoutCommandHandler,
	resolvePayoutHandler commands.ResolvePayoutCommandHandler,
	dispatchBacklogHandler queries.GetDispatchBacklogQueryHandler,
	payeeEarningsHandler queries.GetPayeeEarningsQueryHandler,
	payoutsForReviewHandler queries.GetPayoutsForReviewQueryHandler,
	couriersHandler queries.GetCouriersQueryHandler,
) *Server {
	return &Server{
		createCourierHandler:    createCourierHandler,
		recordHeartbeatHandler:  recordHeartbeatHandler,
		placeOrderHandler:       placeOrderHandler,
		approveOrderHandler:     approveOrderHandler,
		cancelOrderHandler:      cancelOrderHandler,
		issueCodeHandler:        issueCodeHandler,
		confirmPickupHandler:    confirmPickupHandler,
		confirmDeliveryHandler:  confirmDeliveryHandler,
		requestPayoutHandler:    requestPayoutHandler,
		resolvePayoutHandler:    resolvePayoutHandler,
		dispatchBacklogHandler:  dispatchBacklogHandler,
		payeeEarningsHandler:    payeeEarningsHandler,
		payoutsForReviewHandler: payoutsForReviewHandler,
		couriersHandler:         couriersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/couriers", s.CreateCourier)
	api.GET("/couriers", s.GetCouriers)
	api.POST("/couriers/:id/heartbeat", s.RecordHeartbeat)

	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/approve", s.ApproveOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/confirm-pickup", s.ConfirmPickup)
	api.POST("/orders/:id/confirm-delivery", s.ConfirmDelivery)
	api.GET("/orders/backlog", s.GetDispatchBacklog)

	api.POST("/deliveries/:id/codes", s.IssueVerificationCode)

	api.GET("/payees/:id/earnings", s.GetPayeeEarnings)
	api.POST("/payouts", s.RequestPayout)
	api.POST("/payouts/:id/resolve", s.ResolvePayout)
	api.GET("/payouts/pending", s.GetPayoutsForReview)
}

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req struct {
		Name                string  `json:"name"`
		Lat                 float64 `json:"lat"`
		Lng                 float64 `json:"lng"`
		MaxDeliveryRadiusKm float64 `json:"max_delivery_radius_km"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCreateCourierCommand(req.Name, location, req.MaxDeliveryRadiusKm)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"courier_id": cmd.CourierID().String(),
	})
}

// RecordHeartbeat handles POST /api/v1/couriers/:id/heartbeat.
func (s *Server) RecordHeartbeat(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var req struct {
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
		IsOnline bool    `json:"is_online"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRecordHeartbeatCommand(courierID, location, req.IsOnline)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.recordHeartbeatHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req struct {
		OrderType    string  `json:"order_type"`
		DeliveryType string  `json:"delivery_type"`
		SellerID     string  `json:"seller_id"`
		BuyerID      string  `json:"buyer_id"`
		SellerLat    float64 `json:"seller_lat"`
		SellerLng    float64 `json:"seller_lng"`
		BuyerLat     float64 `json:"buyer_lat"`
		BuyerLng     float64 `json:"buyer_lng"`
		TotalAmount  string  `json:"total_amount"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return badRequest(ctx, "invalid seller id")
	}
	buyerID, err := kernel.UUIDFromString(req.BuyerID)
	if err != nil {
		return badRequest(ctx, "invalid buyer id")
	}

	sellerLocation, err := kernel.NewGeoPoint(req.SellerLat, req.SellerLng)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	buyerLocation, err := kernel.NewGeoPoint(req.BuyerLat, req.BuyerLng)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	amount, err := kernel.NewMoneyFromString(req.TotalAmount)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewPlaceOrderCommand(
		order.Type(req.OrderType),
		order.DeliveryType(req.DeliveryType),
		sellerID,
		buyerID,
		sellerLocation,
		buyerLocation,
		amount,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"order_id": cmd.OrderID().String(),
	})
}

// ApproveOrder handles POST /api/v1/orders/:id/approve.
func (s *Server) ApproveOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewApproveOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.approveOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// IssueVerificationCode handles POST /api/v1/deliveries/:id/codes.
// The plaintext secret is returned exactly once and never stored.
func (s *Server) IssueVerificationCode(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var req struct {
		Step     string `json:"step"`
		Encoding string `json:"encoding"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewIssueVerificationCodeCommand(
		deliveryID, verification.Step(req.Step), verification.Encoding(req.Encoding))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	plaintext, err := s.issueCodeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"code": plaintext,
	})
}

// ConfirmPickup handles POST /api/v1/orders/:id/confirm-pickup.
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req struct {
		Code string `json:"code"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewConfirmPickupCommand(orderID, req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.confirmPickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/orders/:id/confirm-delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req struct {
		Code string `json:"code"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestPayout handles POST /api/v1/payouts.
func (s *Server) RequestPayout(ctx echo.Context) error {
	var req struct {
		PayeeID     string `json:"payee_id"`
		Beneficiary string `json:"beneficiary"`
		Destination string `json:"destination"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	payeeID, err := kernel.UUIDFromString(req.PayeeID)
	if err != nil {
		return badRequest(ctx, "invalid payee id")
	}

	cmd, err := commands.NewRequestPayoutCommand(
		payeeID, earnings.Beneficiary(req.Beneficiary), req.Destination)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.requestPayoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"payout_id": cmd.PayoutID().String(),
	})
}

// ResolvePayout handles POST /api/v1/payouts/:id/resolve.
func (s *Server) ResolvePayout(ctx echo.Context) error {
	payoutID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid payout id")
	}

	var req struct {
		Action     string `json:"action"`
		ReviewerID string `json:"reviewer_id"`
		Note       string `json:"note"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	reviewerID, err := kernel.UUIDFromString(req.ReviewerID)
	if err != nil {
		return badRequest(ctx, "invalid reviewer id")
	}

	cmd, err := commands.NewResolvePayoutCommand(
		payoutID, commands.PayoutAction(req.Action), reviewerID, req.Note)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.resolvePayoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDispatchBacklog handles GET /api/v1/orders/backlog.
func (s *Server) GetDispatchBacklog(ctx echo.Context) error {
	query := queries.NewGetDispatchBacklogQuery()

	backlog, err := s.dispatchBacklogHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	type backlogItem struct {
		OrderID     string  `json:"order_id"`
		SellerLat   float64 `json:"seller_lat"`
		SellerLng   float64 `json:"seller_lng"`
		TotalAmount string  `json:"total_amount"`
		ApprovedAt  string  `json:"approved_at"`
	}

	response := make([]backlogItem, len(backlog))
	for i, item := range backlog {
		response[i] = backlogItem{
			OrderID:     item.OrderID.String(),
			SellerLat:   item.SellerLocation.Latitude(),
			SellerLng:   item.SellerLocation.Longitude(),
			TotalAmount: item.TotalAmount.String(),
			ApprovedAt:  item.ApprovedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPayeeEarnings handles GET /api/v1/payees/:id/earnings.
func (s *Server) GetPayeeEarnings(ctx echo.Context) error {
	payeeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid payee id")
	}

	query, err := queries.NewGetPayeeEarningsQuery(payeeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	ledger, err := s.payeeEarningsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	type entryItem struct {
		EntryID       string `json:"entry_id"`
		OrderID       string `json:"order_id"`
		NetAmount     string `json:"net_amount"`
		Status        string `json:"status"`
		AvailableDate string `json:"available_date"`
	}

	entries := make([]entryItem, len(ledger.Entries))
	for i, entry := range ledger.Entries {
		entries[i] = entryItem{
			EntryID:       entry.EntryID.String(),
			OrderID:       entry.OrderID.String(),
			NetAmount:     entry.NetAmount.String(),
			Status:        string(entry.Status),
			AvailableDate: entry.AvailableDate.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"entries":         entries,
		"pending_total":   ledger.PendingTotal.String(),
		"available_total": ledger.AvailableTotal.String(),
		"withdrawn_total": ledger.WithdrawnTotal.String(),
	})
}

// GetPayoutsForReview handles GET /api/v1/payouts/pending.
func (s *Server) GetPayoutsForReview(ctx echo.Context) error {
	query := queries.NewGetPayoutsForReviewQuery()

	pending, err := s.payoutsForReviewHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	type payoutItem struct {
		PayoutID    string `json:"payout_id"`
		PayeeID     string `json:"payee_id"`
		Beneficiary string `json:"beneficiary"`
		Amount      string `json:"amount"`
		Destination string `json:"destination"`
		RequestedAt string `json:"requested_at"`
	}

	response := make([]payoutItem, len(pending))
	for i, item := range pending {
		response[i] = payoutItem{
			PayoutID:    item.PayoutID.String(),
			PayeeID:     item.PayeeID.String(),
			Beneficiary: string(item.Beneficiary),
			Amount:      item.Amount.String(),
			Destination: item.Destination,
			RequestedAt: item.RequestedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	query := queries.NewGetCouriersQuery()

	fleet, err := s.couriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	type courierItem struct {
		CourierID          string  `json:"courier_id"`
		Name               string  `json:"name"`
		Lat                float64 `json:"lat"`
		Lng                float64 `json:"lng"`
		IsOnline           bool    `json:"is_online"`
		LastLocationUpdate string  `json:"last_location_update"`
		ActiveJobs         int     `json:"active_jobs"`
		Rating             float64 `json:"rating"`
	}

	response := make([]courierItem, len(fleet))
	for i, item := range fleet {
		response[i] = courierItem{
			CourierID:          item.CourierID.String(),
			Name:               item.Name,
			Lat:                item.Location.Latitude(),
			Lng:                item.Location.Longitude(),
			IsOnline:           item.IsOnline,
			LastLocationUpdate: item.LastLocationUpdate.Format("2006-01-02T15:04:05Z07:00"),
			ActiveJobs:         item.ActiveJobs,
			Rating:             item.Rating,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail maps domain failures to HTTP statuses: missing aggregates to 404,
// rejected proofs to 422, state conflicts to 409, everything else to 500.
func fail(ctx echo.Context, err error) error {
	var notFoundErr *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFoundErr):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, verification.ErrVerificationFailed):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, order.ErrPaymentNotConfirmed),
		errors.Is(err, courier.ErrCourierAtCapacity),
		errors.Is(err, earnings.ErrInvalidPayoutTransition),
		errors.Is(err, earnings.ErrPayoutConflict),
		errors.Is(err, commands.ErrNothingToPayOut):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

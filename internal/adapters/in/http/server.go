// Package http exposes the order and return workflows over a JSON API.
package http

import (
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rma"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	transitionOrderHandler     commands.TransitionOrderStatusCommandHandler
	recordPaymentResultHandler commands.RecordPaymentResultCommandHandler
	createReturnHandler        commands.CreateReturnRequestCommandHandler
	transitionReturnHandler    commands.TransitionReturnStatusCommandHandler

	// Query handlers
	getOrderTrackingHandler   queries.GetOrderTrackingQueryHandler
	getReturnsForOrderHandler queries.GetReturnsForOrderQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderStatusCommandHandler,
	recordPaymentResultHandler commands.RecordPaymentResultCommandHandler,
	createReturnHandler commands.CreateReturnRequestCommandHandler,
	transitionReturnHandler commands.TransitionReturnStatusCommandHandler,
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler,
	getReturnsForOrderHandler queries.GetReturnsForOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		transitionOrderHandler:     transitionOrderHandler,
		recordPaymentResultHandler: recordPaymentResultHandler,
		createReturnHandler:        createReturnHandler,
		transitionReturnHandler:    transitionReturnHandler,
		getOrderTrackingHandler:    getOrderTrackingHandler,
		getReturnsForOrderHandler:  getReturnsForOrderHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/status", s.TransitionOrderStatus)
	api.GET("/orders/:number/tracking", s.GetOrderTracking)
	api.GET("/orders/:number/returns", s.GetReturnsForOrder)
	api.POST("/payments/callback", s.PaymentCallback)
	api.POST("/returns", s.CreateReturn)
	api.POST("/returns/:id/status", s.TransitionReturnStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - materializes a checkout.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := parseOptionalUUID(request.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	address, err := order.NewAddress(
		request.Address.Name, request.Address.Line1, request.Address.Line2,
		request.Address.City, request.Address.State, request.Address.PostalCode,
		request.Address.Country, request.Address.Phone,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	items := make([]order.LineItem, 0, len(request.Items))
	for _, line := range request.Items {
		item, itemErr := order.NewLineItem(
			line.ProductID, line.Title, line.Variant, line.Quantity, line.UnitPrice,
		)
		if itemErr != nil {
			return errorResponse(ctx, itemErr)
		}
		items = append(items, item)
	}

	var discountCode *string
	if request.DiscountCode != "" {
		discountCode = &request.DiscountCode
	}

	cmd, err := commands.NewCreateOrderCommand(userID, request.Email, address, items,
		commands.CreateOrderOptions{
			ShippingFee:   request.ShippingFee,
			Discount:      request.Discount,
			DiscountCode:  discountCode,
			PaymentMethod: request.PaymentMethod,
			Currency:      request.Currency,
		})
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:     created.ID().String(),
		Number: created.Number(),
		Status: created.Status().String(),
		Total:  created.Total(),
	})
}

// TransitionOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) TransitionOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request TransitionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, request.Target,
		commands.TransitionOrderStatusOptions{
			Actor:      request.Actor,
			Reason:     request.Reason,
			SendEmail:  request.SendEmail,
			AwaitEmail: request.AwaitEmail,
		})
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		Status:  result.Order.Status().String(),
		NoOp:    result.NoOp,
		Warning: result.Warning,
	})
}

// GetOrderTracking handles GET /api/v1/orders/:number/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	query, err := queries.NewGetOrderTrackingQuery(ctx.Param("number"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	tracking, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TrackingResponse{
		Number:             tracking.Number,
		Status:             tracking.Status,
		Total:              tracking.Total,
		Currency:           tracking.Currency,
		History:            tracking.History,
		AllowedTransitions: tracking.AllowedTransitions,
	})
}

// GetReturnsForOrder handles GET /api/v1/orders/:number/returns.
func (s *Server) GetReturnsForOrder(ctx echo.Context) error {
	query, err := queries.NewGetReturnsForOrderQuery(ctx.Param("number"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	returns, err := s.getReturnsForOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]ReturnSummaryResponse, len(returns))
	for i, rr := range returns {
		response[i] = ReturnSummaryResponse{
			Number:    rr.Number,
			Status:    rr.Status,
			ItemCount: rr.ItemCount,
			CreatedAt: rr.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PaymentCallback handles POST /api/v1/payments/callback.
// Gateways retry callbacks, so a callback for an already-confirmed order
// succeeds without a second transition.
func (s *Server) PaymentCallback(ctx echo.Context) error {
	var request PaymentCallbackRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRecordPaymentResultCommand(
		orderID, request.Success,
		request.GatewayOrderID, request.GatewayPaymentID, request.GatewaySignature,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.recordPaymentResultHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		Status: updated.Status().String(),
	})
}

// CreateReturn handles POST /api/v1/returns - submits a return request.
func (s *Server) CreateReturn(ctx echo.Context) error {
	var request CreateReturnRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := parseOptionalUUID(request.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	var guestEmail *string
	if request.GuestEmail != "" {
		guestEmail = &request.GuestEmail
	}

	items := make([]rma.ReturnItem, 0, len(request.Items))
	for _, line := range request.Items {
		item, itemErr := rma.NewReturnItem(
			line.ProductID, line.Title, line.Variant,
			line.OrderedQty, line.ReturnQty, line.UnitPrice,
			rma.Action(line.Action), line.ReasonCode, line.Details, line.PhotoURLs,
		)
		if itemErr != nil {
			return errorResponse(ctx, itemErr)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateReturnRequestCommand(request.OrderNumber, userID, guestEmail, items)
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.createReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateReturnResponse{
		ID:     created.ID().String(),
		Number: created.Number().String(),
		Status: created.Status().String(),
	})
}

// TransitionReturnStatus handles POST /api/v1/returns/:id/status.
func (s *Server) TransitionReturnStatus(ctx echo.Context) error {
	returnID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid return id")
	}

	var request TransitionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewTransitionReturnStatusCommand(returnID, request.Target, request.Actor, request.Note)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.transitionReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		Status:  result.Return.Status().String(),
		NoOp:    result.NoOp,
		Warning: result.Warning,
	})
}

func parseOptionalUUID(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors onto HTTP status codes.
// Conflicts carry retry advice: the caller should re-read and re-apply.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrInvalidTransition):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error() + "; reload the resource and retry",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

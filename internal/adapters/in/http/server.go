// Package http exposes the order workflow over HTTP with echo. Requests are
// checked against the embedded OpenAPI document before they reach a handler,
// and command outcomes are rendered with the status code of their variant.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

const internalError = "INTERNAL_ERROR"

// BuildInfo is reported by the health endpoint.
type BuildInfo struct {
	BuildNumber string
	CommitHash  string
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder commands.CreateOrderCommandHandler
	CreateQuote commands.CreateQuoteCommandHandler
	BookCarrier commands.BookCarrierCommandHandler
	CancelOrder commands.CancelOrderCommandHandler
	ListOrders  queries.ListOrdersQueryHandler
	CheckHealth queries.CheckHealthQueryHandler
}

// Server implements ServerInterface.
type Server struct {
	handlers Handlers
	build    BuildInfo
	metrics  *Metrics
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, build BuildInfo, metrics *Metrics, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		build:    build,
		metrics:  metrics,
		logger:   logger.With("component", "http"),
	}
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(ctx echo.Context) error {
	body := HealthResponse{BuildNumber: s.build.BuildNumber, CommitHash: s.build.CommitHash}

	status, err := s.handlers.CheckHealth.Handle(ctx.Request().Context(), queries.NewCheckHealthQuery())
	if status != queries.ConnectionOK {
		s.logger.Error("health check failed, store unreachable", "error", err, "request_id", requestID(ctx))
		return ctx.JSON(http.StatusInternalServerError, body)
	}

	return ctx.JSON(http.StatusOK, body)
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var status *order.Status
	if params.Status != nil {
		parsed, err := order.ParseStatus(*params.Status)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidQueryParameter, err))
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidQueryParameter, err))
	}

	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fault(ctx, "list orders", err)
	}

	resp := OrdersResponse{Orders: make([]OrderResponse, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *toOrderResponse(o))
	}
	return ctx.JSON(http.StatusOK, resp)
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidRequestBody, err))
	}

	id, items, err := body.toDomain()
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidRequestBody, err))
	}

	cmd, err := commands.NewCreateOrderCommand(id, body.Customer, items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidRequestBody, err))
	}

	outcome, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fault(ctx, "create order", err)
	}

	code, err := createStatus(outcome)
	if err != nil {
		return s.fault(ctx, "create order", err)
	}
	return s.respond(ctx, "create", code, outcome)
}

// CreateQuote handles POST /orders/{orderId}/quotes.
func (s *Server) CreateQuote(ctx echo.Context, orderID string) error {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidURLParameter, err))
	}

	var body NewQuote
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidRequestBody, err))
	}

	carriers, err := body.toDomain()
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidRequestBody, err))
	}

	cmd, err := commands.NewCreateQuoteCommand(id, carriers)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidRequestBody, err))
	}

	outcome, err := s.handlers.CreateQuote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fault(ctx, "create quote", err)
	}

	code, err := quoteStatus(outcome)
	if err != nil {
		return s.fault(ctx, "create quote", err)
	}
	return s.respond(ctx, "quote", code, outcome)
}

// BookCarrier handles POST /orders/{orderId}/bookings.
func (s *Server) BookCarrier(ctx echo.Context, orderID string) error {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidURLParameter, err))
	}

	var body NewBooking
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidRequestBody, err))
	}

	code, err := carrier.ParseCode(body.Carrier)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidRequestBody, err))
	}

	cmd, err := commands.NewBookCarrierCommand(id, code)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidRequestBody, err))
	}

	outcome, err := s.handlers.BookCarrier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fault(ctx, "book carrier", err)
	}

	status, err := bookStatus(outcome)
	if err != nil {
		return s.fault(ctx, "book carrier", err)
	}
	return s.respond(ctx, "book", status, outcome)
}

// CancelOrder handles POST /orders/{orderId}/cancellations.
func (s *Server) CancelOrder(ctx echo.Context, orderID string) error {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidURLParameter, err))
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidURLParameter, err))
	}

	outcome, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fault(ctx, "cancel order", err)
	}

	status, err := cancelStatus(outcome)
	if err != nil {
		return s.fault(ctx, "cancel order", err)
	}
	return s.respond(ctx, "cancel", status, outcome)
}

func (s *Server) respond(ctx echo.Context, command string, status int, outcome services.Outcome) error {
	body, err := toOutcomeResponse(outcome)
	if err != nil {
		return s.fault(ctx, command, err)
	}
	s.metrics.ObserveOutcome(command, outcome)
	return ctx.JSON(status, body)
}

// fault logs a hard failure and answers 500 without leaking its cause.
func (s *Server) fault(ctx echo.Context, operation string, err error) error {
	level := slog.LevelError
	if errors.Is(err, context.Canceled) {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx.Request().Context(), level, operation+" failed",
		"error", err,
		"request_id", requestID(ctx),
	)
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalError})
}

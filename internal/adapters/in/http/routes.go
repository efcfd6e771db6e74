package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	// Status narrows the list to one order status.
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// ServerInterface represents all server handlers of the OpenAPI document.
type ServerInterface interface {
	// GetHealth (GET /healthz)
	GetHealth(ctx echo.Context) error
	// ListOrders (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// CreateOrder (POST /orders)
	CreateOrder(ctx echo.Context) error
	// CreateQuote (POST /orders/{orderId}/quotes)
	CreateQuote(ctx echo.Context, orderID string) error
	// BookCarrier (POST /orders/{orderId}/bookings)
	BookCarrier(ctx echo.Context, orderID string) error
	// CancelOrder (POST /orders/{orderId}/cancellations)
	CancelOrder(ctx echo.Context, orderID string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidQueryParameter, err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) CreateQuote(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidURLParameter, err))
	}
	return w.Handler.CreateQuote(ctx, orderID)
}

func (w *ServerInterfaceWrapper) BookCarrier(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidURLParameter, err))
	}
	return w.Handler.BookCarrier(ctx, orderID)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newValidationErrorResponse(InvalidURLParameter, err))
	}
	return w.Handler.CancelOrder(ctx, orderID)
}

func bindOrderID(ctx echo.Context) (string, error) {
	var orderID string
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return orderID, err
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface, m ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/healthz", wrapper.GetHealth, m...)
	router.GET("/orders", wrapper.ListOrders, m...)
	router.POST("/orders", wrapper.CreateOrder, m...)
	router.POST("/orders/:orderId/quotes", wrapper.CreateQuote, m...)
	router.POST("/orders/:orderId/bookings", wrapper.BookCarrier, m...)
	router.POST("/orders/:orderId/cancellations", wrapper.CancelOrder, m...)
}

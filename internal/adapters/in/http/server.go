// Package http exposes the ordering use cases over a JSON REST API built on
// echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	_ "ordering/internal/adapters/in/http/apidocs"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// StatusCounter returns stored order counts per status.
type StatusCounter func(ctx context.Context) (map[order.Status]int64, error)

// UncompletedLister returns orders that are neither delivered nor cancelled.
type UncompletedLister func(ctx context.Context) ([]queries.GetUncompletedOrdersQueryResponse, error)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	ConfirmOrder    commands.ConfirmOrderCommandHandler
	PayOrder        commands.PayOrderCommandHandler
	ShipOrder       commands.ShipOrderCommandHandler
	DeliverOrder    commands.DeliverOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	AddOrderItem    commands.AddOrderItemCommandHandler
	RemoveOrderItem commands.RemoveOrderItemCommandHandler
	DeleteOrder     commands.DeleteOrderCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	GetCustomerOrders queries.GetCustomerOrdersQueryHandler
	CountByStatus     StatusCounter
	ListUncompleted   UncompletedLister
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
	}
}

// Register installs the request validator and all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders/stats", s.OrderStats)
	e.GET("/orders/uncompleted", s.UncompletedOrders)
	e.GET("/orders/:id", s.GetOrder)
	e.DELETE("/orders/:id", s.DeleteOrder)
	e.POST("/orders/:id/confirm", s.ConfirmOrder)
	e.POST("/orders/:id/pay", s.PayOrder)
	e.POST("/orders/:id/ship", s.ShipOrder)
	e.POST("/orders/:id/deliver", s.DeliverOrder)
	e.POST("/orders/:id/cancel", s.CancelOrder)
	e.POST("/orders/:id/items", s.AddOrderItem)
	e.DELETE("/orders/:id/items/:itemId", s.RemoveOrderItem)

	e.GET("/customers/:id/orders", s.GetCustomerOrders)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if res := s.bind(c, &req); res != nil {
		return c.JSON(res.Code, res)
	}

	customerID, err := kernel.CustomerIDFromString(req.CustomerID)
	if err != nil {
		return s.fail(c, err)
	}
	items, err := req.toCommandItems()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateOrderCommand(customerID, items)
	if err != nil {
		return s.fail(c, err)
	}

	orderID, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		if orderID.Validate() == nil {
			return s.failPersisted(c, orderID, err)
		}
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetCustomerOrders handles GET /customers/:id/orders.
func (s *Server) GetCustomerOrders(c echo.Context) error {
	customerID, err := customerIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.h.GetCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// OrderStats handles GET /orders/stats.
func (s *Server) OrderStats(c echo.Context) error {
	if s.h.CountByStatus == nil {
		return c.JSON(http.StatusNotImplemented, ErrorResponse{
			Code:    http.StatusNotImplemented,
			Message: "order statistics are not available",
		})
	}

	counts, err := s.h.CountByStatus(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}

	response := make(map[string]int64, len(counts))
	for status, count := range counts {
		response[status.String()] = count
	}
	return c.JSON(http.StatusOK, response)
}

// UncompletedOrders handles GET /orders/uncompleted.
func (s *Server) UncompletedOrders(c echo.Context) error {
	if s.h.ListUncompleted == nil {
		return c.JSON(http.StatusNotImplemented, ErrorResponse{
			Code:    http.StatusNotImplemented,
			Message: "uncompleted order listing is not available",
		})
	}

	orders, err := s.h.ListUncompleted(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ConfirmOrder handles POST /orders/:id/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.done(c, s.h.ConfirmOrder.Handle(c.Request().Context(), cmd))
}

// PayOrder handles POST /orders/:id/pay.
func (s *Server) PayOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req PayOrderRequest
	if res := s.bind(c, &req); res != nil {
		return c.JSON(res.Code, res)
	}
	paymentID, err := kernel.PaymentIDFromString(req.PaymentID)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewPayOrderCommand(orderID, paymentID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.done(c, s.h.PayOrder.Handle(c.Request().Context(), cmd))
}

// ShipOrder handles POST /orders/:id/ship.
func (s *Server) ShipOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req ShipOrderRequest
	if res := s.bind(c, &req); res != nil {
		return c.JSON(res.Code, res)
	}
	cmd, err := commands.NewShipOrderCommand(orderID, req.TrackingNumber)
	if err != nil {
		return s.fail(c, err)
	}
	return s.done(c, s.h.ShipOrder.Handle(c.Request().Context(), cmd))
}

// DeliverOrder handles POST /orders/:id/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeliverOrderCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.done(c, s.h.DeliverOrder.Handle(c.Request().Context(), cmd))
}

// CancelOrder handles POST /orders/:id/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req CancelOrderRequest
	if res := s.bind(c, &req); res != nil {
		return c.JSON(res.Code, res)
	}
	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	return s.done(c, s.h.CancelOrder.Handle(c.Request().Context(), cmd))
}

// AddOrderItem handles POST /orders/:id/items.
func (s *Server) AddOrderItem(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req OrderItemRequest
	if res := s.bind(c, &req); res != nil {
		return c.JSON(res.Code, res)
	}
	item, err := req.toCommandItem()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAddOrderItemCommand(orderID, item)
	if err != nil {
		return s.fail(c, err)
	}

	itemID, err := s.h.AddOrderItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: itemID.String()})
}

// RemoveOrderItem handles DELETE /orders/:id/items/:itemId.
func (s *Server) RemoveOrderItem(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	itemID, err := orderItemIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRemoveOrderItemCommand(orderID, itemID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.done(c, s.h.RemoveOrderItem.Handle(c.Request().Context(), cmd))
}

// DeleteOrder handles DELETE /orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.done(c, s.h.DeleteOrder.Handle(c.Request().Context(), cmd))
}

func (s *Server) done(c echo.Context, err error) error {
	if err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// pathParam binds a required simple-style path parameter, unescaping it the
// way generated OpenAPI servers do.
func pathParam(c echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func orderIDParam(c echo.Context) (kernel.OrderID, error) {
	raw, err := pathParam(c, "id")
	if err != nil {
		return kernel.OrderID{}, err
	}
	return kernel.OrderIDFromString(raw)
}

func customerIDParam(c echo.Context) (kernel.CustomerID, error) {
	raw, err := pathParam(c, "id")
	if err != nil {
		return kernel.CustomerID{}, err
	}
	return kernel.CustomerIDFromString(raw)
}

func orderItemIDParam(c echo.Context) (kernel.OrderItemID, error) {
	raw, err := pathParam(c, "itemId")
	if err != nil {
		return kernel.OrderItemID{}, err
	}
	return kernel.OrderItemIDFromString(raw)
}

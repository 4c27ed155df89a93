package http

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer. Fields lists the
// offending request fields of a validation failure. OrderID is set when the
// order was stored but a later step failed.
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	OrderID string            `json:"order_id,omitempty"`
}

// RequestValidator adapts go-playground/validator to echo.Validator and
// reports fields by their JSON names.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i any) error {
	return rv.validate.Struct(i)
}

// bind decodes and validates the body. A non-nil result is the 400 answer
// to send back.
func (s *Server) bind(c echo.Context, req any) *ErrorResponse {
	if err := c.Bind(req); err != nil {
		return &ErrorResponse{Code: http.StatusBadRequest, Message: "Invalid request body"}
	}

	if err := c.Validate(req); err != nil {
		res := &ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Fields:  make(map[string]string),
		}
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				res.Fields[fieldPath(fe)] = fe.Tag()
			}
		}
		return res
	}
	return nil
}

// fieldPath drops the request type name from the validator namespace:
// "CreateOrderRequest.items[0].quantity" becomes "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// statusFor maps an application error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, order.ErrOrderItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, order.ErrInvalidStatusTransition),
		errors.Is(err, order.ErrCannotCancelTerminalOrder),
		errors.Is(err, order.ErrCannotModifyNonPendingOrder):
		return http.StatusConflict

	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrCannotRemoveLastItem),
		errors.Is(err, kernel.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrNegativeAmount),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidProductName):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		return c.JSON(code, ErrorResponse{Code: code, Message: "Internal server error"})
	}
	return c.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

// failPersisted answers a create whose order was stored but whose events
// were not all published.
func (s *Server) failPersisted(c echo.Context, orderID kernel.OrderID, err error) error {
	s.logger.ErrorContext(c.Request().Context(), "order stored but events not published",
		slog.String("order_id", orderID.String()),
		slog.Any("error", err),
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "Order was stored but its events could not be published",
		OrderID: orderID.String(),
	})
}

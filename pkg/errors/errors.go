// Package errors defines the application-level error model exposed over the
// API: stable error codes mapped to HTTP statuses.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	CodeOrderNotFound          ErrorCode = "ORDER_NOT_FOUND"
	CodeItemNotFound           ErrorCode = "ITEM_NOT_FOUND"
	CodeInvalidOrderState      ErrorCode = "INVALID_ORDER_STATE"
	CodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"
	CodeUpstreamUnavailable    ErrorCode = "UPSTREAM_UNAVAILABLE"
)

// AppError is what controllers return to clients.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the error code to an HTTP status.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeOrderNotFound, CodeItemNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeConcurrentModification:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInvalidOrderState:
		return http.StatusUnprocessableEntity
	case CodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a cause to an AppError.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError translates a domain error into an AppError. Classification
// goes through errors.Is on the domain sentinels, so wrapped errors and the
// two-axis order errors resolve correctly. Unknown errors become internal
// errors with the original message hidden from clients.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, "order not found")
	case errors.Is(err, order.ErrItemNotFound):
		return Wrap(err, CodeItemNotFound, "order item not found")
	case errors.Is(err, order.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModification, "order was modified concurrently, retry the request")
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		return Wrap(err, CodeForbidden, "not allowed to access this order")
	case errors.Is(err, shared.ErrInvalidState):
		return Wrap(err, CodeInvalidOrderState, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrUpstreamUnavailable):
		return Wrap(err, CodeUpstreamUnavailable, "a dependent service is unavailable, try again later")
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}

/*
Package shared holds the building blocks common to all subdomains: the Money
value object, the domain event and aggregate root contracts, the unit of work
boundary and the shared error model.

Error model:
 1. Sentinel errors classify failures for errors.Is checks.
 2. DomainError captures the call stack at creation but formats it lazily,
    only when a log line actually asks for it.
 3. Domain errors carry no transport concepts (no HTTP status codes).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors. Carry classification only; context lives in DomainError.
var (
	// ErrNotFound referenced resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized caller is not allowed to act on the resource
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState business rule violation
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInput malformed input to a mutating call
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict concurrent modification or uniqueness conflict
	ErrConflict = errors.New("conflict")

	// ErrUpstreamUnavailable a remote collaborator failed or timed out.
	// Distinct from ErrInvalidState so callers can tell "your cart is empty"
	// from "the catalog service is down".
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// DomainError is a structured error with business context and the stack of
// its creation point.
type DomainError struct {
	// Err is the underlying sentinel, for errors.Is
	Err error

	// Entity names the subject ("order", "order_item", "cart")
	Entity string

	// Message is the human-readable description
	Message string

	// Field optionally names the offending field for validation errors
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// Stacker is implemented by errors that can report their creation stack.
// The API layer uses it to log the error origin.
type Stacker interface {
	Stack() []string
}

// CaptureStack captures the current call stack. skip is the number of frames
// to drop, usually 3: runtime.Callers, CaptureStack and the constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals.
// At most 10 frames are returned.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" domain error.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewUnauthorizedError creates an ownership violation error.
func NewUnauthorizedError(entity, reason string) error {
	return &DomainError{
		Err:     ErrUnauthorized,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewInvalidStateError creates a business rule violation error.
func NewInvalidStateError(entity, reason string) error {
	return &DomainError{
		Err:     ErrInvalidState,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a malformed-input error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewUpstreamError wraps a remote collaborator failure. The cause is kept in
// the message for logs; classification stays ErrUpstreamUnavailable.
func NewUpstreamError(service string, cause error) error {
	msg := service + " unavailable"
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return &DomainError{
		Err:     ErrUpstreamUnavailable,
		Entity:  service,
		Message: msg,
		stack:   CaptureStack(3),
	}
}

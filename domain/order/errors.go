/*
Package order - order subdomain errors.

Conventions:
 1. Sentinel errors support errors.Is checks across layers.
 2. Constructors capture the stack at the creation point.
 3. No HTTP status codes or other transport concepts here.
*/
package order

import (
	"errors"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

var (
	// ErrOrderNotFound referenced order does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrItemNotFound referenced order item does not exist
	ErrItemNotFound = errors.New("order item not found")

	// ErrNotOrderOwner caller is not the owner of the order
	ErrNotOrderOwner = errors.New("caller is not the order owner")

	// ErrCartEmpty the cart has no lines to convert
	ErrCartEmpty = errors.New("cart empty")

	// ErrNoValidProducts every cart line was dropped as unpurchasable
	ErrNoValidProducts = errors.New("no valid products")

	// ErrUserInfoUnavailable the profile read returned no user
	ErrUserInfoUnavailable = errors.New("failed to fetch user info")

	// ErrPhoneNumberRequired the profile has no phone number to contact
	ErrPhoneNumberRequired = errors.New("phone number required")

	// ErrOnlyDraftConfirmable confirm attempted outside DRAFT
	ErrOnlyDraftConfirmable = errors.New("only Draft orders can be confirmed")

	// ErrInvalidTransition action not allowed by the transition table
	ErrInvalidTransition = errors.New("invalid order state transition")

	// ErrConcurrentModification optimistic lock conflict; the caller may retry
	ErrConcurrentModification = errors.New("order was modified by another transaction")

	// ErrEmptyOrderItems an order must be persisted with at least one item
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity item quantity must be positive at creation
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// NewOrderNotFoundError creates an order-not-found error with stack.
// Supports errors.Is(err, ErrOrderNotFound) and shared.ErrNotFound.
func NewOrderNotFoundError(orderID string) error {
	return &domainError{
		sentinel: ErrOrderNotFound,
		class:    shared.ErrNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewItemNotFoundError creates an item-not-found error with stack.
func NewItemNotFoundError(itemID string) error {
	return &domainError{
		sentinel: ErrItemNotFound,
		class:    shared.ErrNotFound,
		message:  "order item not found: " + itemID,
		stack:    shared.CaptureStack(3),
	}
}

// NewNotOwnerError creates an ownership violation error.
func NewNotOwnerError(orderID, callerUserID string) error {
	return &domainError{
		sentinel: ErrNotOrderOwner,
		class:    shared.ErrUnauthorized,
		message:  "user " + callerUserID + " does not own order " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidTransitionError creates an illegal-transition error naming both sides.
func NewInvalidTransitionError(current Status, action Action) error {
	return &domainError{
		sentinel: ErrInvalidTransition,
		class:    shared.ErrInvalidState,
		message:  "cannot apply " + string(action) + " to order in status " + string(current),
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidStateError wraps an assembler or guard sentinel as a business
// rule violation. The sentinel's text is the message the boundary shows.
func NewInvalidStateError(sentinel error) error {
	return &domainError{
		sentinel: sentinel,
		class:    shared.ErrInvalidState,
		message:  sentinel.Error(),
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic lock conflict error.
func NewConcurrentModificationError(orderID string) error {
	return &domainError{
		sentinel: ErrConcurrentModification,
		class:    shared.ErrConflict,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// domainError carries two classification axes: the order-specific sentinel
// and the shared class used by the boundary layer. Unwrap exposes both.
type domainError struct {
	sentinel error
	class    error
	message  string
	stack    []uintptr
}

func (e *domainError) Error() string {
	return e.message
}

func (e *domainError) Unwrap() []error {
	return []error{e.sentinel, e.class}
}

// Stack implements shared.Stacker.
func (e *domainError) Stack() []string {
	return shared.FormatStack(e.stack)
}

package order

import (
	"context"
	"time"
)

// Repository persists the Order aggregate. It handles persistence only;
// events are collected by the unit of work and written to the outbox.
type Repository interface {
	// Save inserts a new aggregate or conditionally updates an existing one.
	// The update is conditional on (id, version); a lost race surfaces as
	// ErrConcurrentModification instead of silently overwriting.
	Save(ctx context.Context, o *Order) error

	// FindByID loads the aggregate with its items, ErrOrderNotFound if absent.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByItemID loads the aggregate owning the given item,
	// ErrItemNotFound if no such item exists.
	FindByItemID(ctx context.Context, itemID string) (*Order, error)

	// FindByUserID returns a user's orders, newest first.
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)

	// Search returns one page of orders matching the criteria plus the total
	// match count.
	Search(ctx context.Context, criteria SearchCriteria) ([]*Order, int64, error)

	// Delete hard-deletes the order and its items, ErrOrderNotFound if absent.
	// No status guard: deletion is unconditional ops tooling.
	Delete(ctx context.Context, id string) error
}

// SearchCriteria is the filter set of the listing contract. Zero values mean
// "no filter" for strings; amount and date bounds are pointers so zero is a
// usable bound.
type SearchCriteria struct {
	UserID      string
	Status      Status
	PaymentType PaymentType
	MinAmount   *int64
	MaxAmount   *int64
	From        *time.Time
	To          *time.Time
	Text        string // matches contact name, phone or notes

	Page      int
	PageSize  int
	SortBy    string // created_at, updated_at, total_amount
	SortOrder string // ASC or DESC
}

// Normalize clamps paging values into a sane range.
func (c *SearchCriteria) Normalize() {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize < 1 {
		c.PageSize = 20
	}
	if c.PageSize > 100 {
		c.PageSize = 100
	}
	switch c.SortBy {
	case "created_at", "updated_at", "total_amount":
	default:
		c.SortBy = "created_at"
	}
	if c.SortOrder != "ASC" {
		c.SortOrder = "DESC"
	}
}

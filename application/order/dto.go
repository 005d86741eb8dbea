package order

import "time"

// CreateDraftRequest is the draft factory input: pre-validated line data from
// administrative or test callers that bypass the cart/catalog/profile reads.
type CreateDraftRequest struct {
	UserID string             `json:"user_id" binding:"required"`
	Items  []DraftItemRequest `json:"items" binding:"required,min=1"`
}

// DraftItemRequest is one pre-validated order line.
type DraftItemRequest struct {
	ProductID     string `json:"product_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	LocalizedName string `json:"localized_name"`
	UnitPrice     int64  `json:"unit_price" binding:"min=0"`
	Currency      string `json:"currency" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
}

// ConfirmOrderRequest carries the buyer's confirmation of a Draft.
type ConfirmOrderRequest struct {
	OrderID      string `json:"-"`
	CallerUserID string `json:"-"`
	ContactName  string `json:"contact_name" binding:"required"`
	ContactPhone string `json:"contact_phone" binding:"required"`
	Notes        string `json:"notes"`
	PaymentType  string `json:"payment_type" binding:"required,oneof=PAY_ON_PICKUP PAY_ONLINE"`
}

// UpdateOrderRequest is the administrative partial update. Every field is
// optional; a status value is applied as an override without successor checks.
type UpdateOrderRequest struct {
	OrderID      string  `json:"-"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
}

// SetItemQuantityRequest adjusts one order line.
type SetItemQuantityRequest struct {
	ItemID   string `json:"-"`
	Quantity int    `json:"quantity"`
}

// SearchOrdersRequest mirrors the listing collaborator contract.
type SearchOrdersRequest struct {
	UserID      string     `form:"user_id"`
	Status      string     `form:"status"`
	PaymentType string     `form:"payment_type"`
	MinAmount   *int64     `form:"min_amount"`
	MaxAmount   *int64     `form:"max_amount"`
	From        *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To          *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Text        string     `form:"q"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	SortBy      string     `form:"sort_by"`
	SortOrder   string     `form:"sort_order"`
}

// OrderResponse is the order view model.
type OrderResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	TotalAmount  MoneyResponse       `json:"total_amount"`
	ContactName  string              `json:"contact_name,omitempty"`
	ContactPhone string              `json:"contact_phone,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	PaymentType  string              `json:"payment_type,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// OrderItemResponse is the order line view model.
type OrderItemResponse struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"order_id"`
	ProductID     string        `json:"product_id"`
	Name          string        `json:"name"`
	LocalizedName string        `json:"localized_name,omitempty"`
	UnitPrice     MoneyResponse `json:"unit_price"`
	Quantity      int           `json:"quantity"`
	LineTotal     MoneyResponse `json:"line_total"`
}

// MoneyResponse is the money view model.
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// OrderPageResponse is one page of search results with pagination metadata.
type OrderPageResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalItems int64            `json:"total_items"`
	TotalPages int              `json:"total_pages"`
}

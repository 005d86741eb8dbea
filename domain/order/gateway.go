package order

import "context"

// The order core fans out to three independent remote services during cart
// conversion. Each gateway is a single request/response call; absence is a
// valid answer and is reported as (nil, nil), while transport failures come
// back as errors classified shared.ErrUpstreamUnavailable. Retry policy
// belongs to the gateway client, never to this core.

// CartSnapshot is the cart service's view of a user's cart.
type CartSnapshot struct {
	UserID string
	Items  []CartLine
}

// CartLine is one product reference in a cart.
type CartLine struct {
	ProductID string
	Quantity  int
}

// ProductInfo is the catalog service's view of a product. Price fields are in
// the smallest currency unit; EffectivePrice is the price after any active
// promotion and is what gets snapshotted into order items.
type ProductInfo struct {
	ID             string
	Name           string
	LocalizedName  string
	Price          int64
	EffectivePrice int64
	Currency       string
	IsAvailable    bool
	Stock          int
}

// UserInfo is the profile service's view of a user.
type UserInfo struct {
	ID          string
	PhoneNumber string
	DisplayName string
}

// CartGateway reads and clears the remote cart.
type CartGateway interface {
	GetCart(ctx context.Context, userID string) (*CartSnapshot, error)
	ClearCart(ctx context.Context, userID string) error
}

// CatalogGateway reads product data. A delisted product returns (nil, nil).
type CatalogGateway interface {
	GetProduct(ctx context.Context, productID string) (*ProductInfo, error)
}

// ProfileGateway reads user profile data. An unknown user returns (nil, nil).
type ProfileGateway interface {
	GetUser(ctx context.Context, userID string) (*UserInfo, error)
}

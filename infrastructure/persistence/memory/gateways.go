package memory

import (
	"context"
	"sync"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
)

// In-memory gateway implementations. Tests preload the maps; the memory
// database mode uses them as stand-ins when no upstream services exist.
// Err fields, when set, are returned from every call to simulate upstream
// outages.

// CartGateway serves carts from a map keyed by user ID.
type CartGateway struct {
	mu       sync.Mutex
	Carts    map[string]*order.CartSnapshot
	Err      error
	Cleared  []string // user IDs in clear-call order
	ClearErr error
}

func NewCartGateway() *CartGateway {
	return &CartGateway{Carts: make(map[string]*order.CartSnapshot)}
}

func (g *CartGateway) GetCart(ctx context.Context, userID string) (*order.CartSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	cart, ok := g.Carts[userID]
	if !ok {
		return nil, nil
	}
	return cart, nil
}

func (g *CartGateway) ClearCart(ctx context.Context, userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ClearErr != nil {
		return g.ClearErr
	}
	g.Cleared = append(g.Cleared, userID)
	delete(g.Carts, userID)
	return nil
}

// CatalogGateway serves products from a map keyed by product ID.
type CatalogGateway struct {
	mu       sync.Mutex
	Products map[string]*order.ProductInfo
	Err      error
}

func NewCatalogGateway() *CatalogGateway {
	return &CatalogGateway{Products: make(map[string]*order.ProductInfo)}
}

func (g *CatalogGateway) GetProduct(ctx context.Context, productID string) (*order.ProductInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	product, ok := g.Products[productID]
	if !ok {
		return nil, nil
	}
	return product, nil
}

// ProfileGateway serves user profiles from a map keyed by user ID.
type ProfileGateway struct {
	mu    sync.Mutex
	Users map[string]*order.UserInfo
	Err   error
}

func NewProfileGateway() *ProfileGateway {
	return &ProfileGateway{Users: make(map[string]*order.UserInfo)}
}

func (g *ProfileGateway) GetUser(ctx context.Context, userID string) (*order.UserInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	user, ok := g.Users[userID]
	if !ok {
		return nil, nil
	}
	return user, nil
}

var (
	_ order.CartGateway    = (*CartGateway)(nil)
	_ order.CatalogGateway = (*CatalogGateway)(nil)
	_ order.ProfileGateway = (*ProfileGateway)(nil)
)

package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

const cartServiceName = "cart"

// CartHTTPGateway talks to the cart service over HTTP.
type CartHTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewCartHTTPGateway creates the cart client. baseURL points at the cart
// service root, e.g. "http://cart:8081".
func NewCartHTTPGateway(baseURL string, timeout time.Duration) *CartHTTPGateway {
	return &CartHTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

type cartLineDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type cartDTO struct {
	UserID string        `json:"user_id"`
	Items  []cartLineDTO `json:"items"`
}

// GetCart returns (nil, nil) when the user has no cart.
func (g *CartHTTPGateway) GetCart(ctx context.Context, userID string) (*order.CartSnapshot, error) {
	var dto cartDTO
	found, err := getJSON(ctx, g.client, cartServiceName, g.baseURL+"/api/v1/carts/"+userID, &dto)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	lines := make([]order.CartLine, len(dto.Items))
	for i, item := range dto.Items {
		lines[i] = order.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return &order.CartSnapshot{UserID: dto.UserID, Items: lines}, nil
}

// ClearCart empties the remote cart. Clearing an already-empty cart is not
// an error; the cart service answers 204 either way.
func (g *CartHTTPGateway) ClearCart(ctx context.Context, userID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, g.baseURL+"/api/v1/carts/"+userID, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", cartServiceName, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return shared.NewUpstreamError(cartServiceName, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return shared.NewUpstreamError(cartServiceName, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

var _ order.CartGateway = (*CartHTTPGateway)(nil)

package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
)

const catalogServiceName = "catalog"

// CatalogHTTPGateway talks to the catalog service over HTTP.
type CatalogHTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewCatalogHTTPGateway(baseURL string, timeout time.Duration) *CatalogHTTPGateway {
	return &CatalogHTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

type productDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	LocalizedName  string `json:"localized_name"`
	Price          int64  `json:"price"`
	EffectivePrice int64  `json:"effective_price"`
	Currency       string `json:"currency"`
	IsAvailable    bool   `json:"is_available"`
	Stock          int    `json:"stock"`
}

// GetProduct returns (nil, nil) for a delisted or unknown product.
func (g *CatalogHTTPGateway) GetProduct(ctx context.Context, productID string) (*order.ProductInfo, error) {
	var dto productDTO
	found, err := getJSON(ctx, g.client, catalogServiceName, g.baseURL+"/api/v1/products/"+productID, &dto)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	// Some catalog versions omit effective_price when no promotion is active
	if dto.EffectivePrice == 0 {
		dto.EffectivePrice = dto.Price
	}

	return &order.ProductInfo{
		ID:             dto.ID,
		Name:           dto.Name,
		LocalizedName:  dto.LocalizedName,
		Price:          dto.Price,
		EffectivePrice: dto.EffectivePrice,
		Currency:       dto.Currency,
		IsAvailable:    dto.IsAvailable,
		Stock:          dto.Stock,
	}, nil
}

var _ order.CatalogGateway = (*CatalogHTTPGateway)(nil)

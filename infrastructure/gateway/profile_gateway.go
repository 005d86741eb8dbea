package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
)

const profileServiceName = "profile"

// ProfileHTTPGateway talks to the user profile service over HTTP.
type ProfileHTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewProfileHTTPGateway(baseURL string, timeout time.Duration) *ProfileHTTPGateway {
	return &ProfileHTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

type userDTO struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	DisplayName string `json:"display_name"`
}

// GetUser returns (nil, nil) for an unknown user.
func (g *ProfileHTTPGateway) GetUser(ctx context.Context, userID string) (*order.UserInfo, error) {
	var dto userDTO
	found, err := getJSON(ctx, g.client, profileServiceName, g.baseURL+"/api/v1/users/"+userID, &dto)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return &order.UserInfo{
		ID:          dto.ID,
		PhoneNumber: dto.PhoneNumber,
		DisplayName: dto.DisplayName,
	}, nil
}

var _ order.ProfileGateway = (*ProfileHTTPGateway)(nil)

package bigcommerce

import (
	"context"
	"net/http"
	"time"
)

// EndpointStorefrontToken labels storefront token creation.
const EndpointStorefrontToken = "storefront_token"

// TokenRequest describes a storefront API token. ExpiresAt is a unix
// timestamp in seconds.
type TokenRequest struct {
	AllowedCorsOrigins []string `json:"allowed_cors_origins"`
	ChannelIDs         []int64  `json:"channel_ids"`
	ExpiresAt          int64    `json:"expires_at"`
}

// NewTokenRequest builds a request for a token valid for ttl from now.
func NewTokenRequest(channelIDs []int64, origins []string, ttl time.Duration, now time.Time) *TokenRequest {
	if origins == nil {
		origins = []string{}
	}
	return &TokenRequest{
		AllowedCorsOrigins: origins,
		ChannelIDs:         channelIDs,
		ExpiresAt:          now.Add(ttl).Unix(),
	}
}

// StorefrontToken is a freshly minted storefront token.
type StorefrontToken struct {
	Token string `json:"token"`
}

type storefrontTokenResponse struct {
	Data *StorefrontToken `json:"data"`
}

// CreateStorefrontToken mints a new storefront API token.
func (c *Client) CreateStorefrontToken(ctx context.Context, params *TokenRequest) (*StorefrontToken, error) {
	if len(params.ChannelIDs) == 0 {
		return nil, &ValidationError{Endpoint: EndpointStorefrontToken, Reason: "at least one channel id is required"}
	}

	resp := &storefrontTokenResponse{}
	if err := c.do(ctx, EndpointStorefrontToken, http.MethodPost, "/v3/storefront/api-token", nil, params, resp); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.Token == "" {
		return nil, &ValidationError{Endpoint: EndpointStorefrontToken, Reason: "no token returned"}
	}
	return resp.Data, nil
}

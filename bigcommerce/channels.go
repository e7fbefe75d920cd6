package bigcommerce

import (
	"context"
	"net/http"
)

// EndpointChannels labels channel listings.
const EndpointChannels = "channels"

// Channel is a sales channel of the store.
type Channel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Platform string `json:"platform"`
	Status   string `json:"status"`
}

type channelsResponse struct {
	Data []Channel `json:"data"`
}

// Channels lists the sales channels of the store.
func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	resp := &channelsResponse{}
	if err := c.do(ctx, EndpointChannels, http.MethodGet, "/v3/channels", nil, nil, resp); err != nil {
		return nil, err
	}
	for _, ch := range resp.Data {
		if ch.ID <= 0 {
			return nil, &ValidationError{Endpoint: EndpointChannels, Reason: "channel " + ch.Name + " has no id"}
		}
	}
	if resp.Data == nil {
		return []Channel{}, nil
	}
	return resp.Data, nil
}

// Package bigcommerce is a small typed client for the store management REST
// API. Responses are decoded into explicit structures and validated before
// they are handed to callers.
package bigcommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/storefront-tools/bcproxy/conf"
	"github.com/storefront-tools/bcproxy/metrics"
)

const maxResponseBytes = 10 << 20

// Client talks to a single store.
type Client struct {
	baseURL   string
	storeHash string
	token     string
	client    *http.Client
}

// NewClient builds a client for the configured store. Credentials are not
// checked here, see CheckCredentials.
func NewClient(config *conf.BigCommerceConfiguration) *Client {
	return &Client{
		baseURL:   config.APIURL,
		storeHash: config.StoreHash,
		token:     config.AccessToken,
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// CheckCredentials reports a missing store hash or access token.
func (c *Client) CheckCredentials() error {
	if c.storeHash == "" {
		return errors.New("STORE_HASH is not set")
	}
	if c.token == "" {
		return errors.New("ADMIN_API_TOKEN is not set")
	}
	return nil
}

func (c *Client) storeURL(path string, query url.Values) string {
	u := c.baseURL + "/stores/" + url.PathEscape(c.storeHash) + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do performs one request against the store and decodes a successful JSON
// response into out. Non 2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encoding %s request", endpoint)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.storeURL(path, query), reqBody)
	if err != nil {
		return errors.Wrapf(err, "building %s request", endpoint)
	}
	req.Header.Set("X-Auth-Token", c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ObserveUpstream(endpoint, 0, time.Since(start))
		return errors.Wrapf(err, "calling %s", endpoint)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(endpoint, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Wrapf(err, "reading %s response", endpoint)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decoding %s response", endpoint)
	}
	return nil
}

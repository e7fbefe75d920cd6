package bigcommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// EndpointCatalog labels catalog product lookups.
const EndpointCatalog = "catalog"

// CustomField is a name/value attribute attached to a catalog product.
type CustomField struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Value *string `json:"value"`
	Text  *string `json:"text"`
}

// FieldValue returns Value, falling back to Text and then to "".
func (f CustomField) FieldValue() string {
	if f.Value != nil {
		return *f.Value
	}
	if f.Text != nil {
		return *f.Text
	}
	return ""
}

// Product is a catalog product as returned with include=custom_fields.
type Product struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	SKU          string        `json:"sku"`
	CustomFields []CustomField `json:"custom_fields"`
}

type productsResponse struct {
	Data []Product `json:"data"`
}

// Products fetches the given catalog products including their custom fields
// in a single call.
func (c *Client) Products(ctx context.Context, ids []int64) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = strconv.FormatInt(id, 10)
	}

	query := url.Values{}
	query.Set("include", "custom_fields")
	query.Set("id:in", strings.Join(strIDs, ","))
	query.Set("limit", strconv.Itoa(pageLimit))

	resp := &productsResponse{}
	if err := c.do(ctx, EndpointCatalog, http.MethodGet, "/v3/catalog/products", query, nil, resp); err != nil {
		return nil, err
	}

	for _, p := range resp.Data {
		if p.ID <= 0 {
			return nil, &ValidationError{Endpoint: EndpointCatalog, Reason: fmt.Sprintf("product %q has no id", p.Name)}
		}
	}
	if resp.Data == nil {
		return []Product{}, nil
	}
	return resp.Data, nil
}

package bigcommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// EndpointOrders labels order product lookups.
const EndpointOrders = "orders"

// pageLimit is the largest page the store API serves in one call.
const pageLimit = 250

// OrderProduct is a line item of an order. ID is the order-scoped line item
// ID, ProductID the catalog product it was bought from (zero for custom items).
type OrderProduct struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"order_id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  int64  `json:"quantity"`
}

// OrderProducts lists the line items of an order.
func (c *Client) OrderProducts(ctx context.Context, orderID int64) ([]OrderProduct, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageLimit))

	products := []OrderProduct{}
	path := fmt.Sprintf("/v2/orders/%d/products", orderID)
	if err := c.do(ctx, EndpointOrders, http.MethodGet, path, query, nil, &products); err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID <= 0 {
			return nil, &ValidationError{Endpoint: EndpointOrders, Reason: fmt.Sprintf("line item %d has no id", i)}
		}
		if products[i].ProductID < 0 {
			return nil, &ValidationError{Endpoint: EndpointOrders, Reason: fmt.Sprintf("line item %d has a negative product id", products[i].ID)}
		}
	}
	return products, nil
}

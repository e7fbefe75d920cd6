package api

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/storefront-tools/bcproxy/bigcommerce"
	gcontext "github.com/storefront-tools/bcproxy/context"
	"github.com/storefront-tools/bcproxy/customfields"
	"github.com/storefront-tools/bcproxy/models"
)

// Store is the part of the store API the proxy reads from.
type Store interface {
	OrderProducts(ctx context.Context, orderID int64) ([]bigcommerce.OrderProduct, error)
	Products(ctx context.Context, ids []int64) ([]bigcommerce.Product, error)
}

// CustomFieldsView returns the allowed custom fields of the requested
// products, either given directly with `ids` or resolved from the line items
// of an order with `order_id` and `line_ids`.
func (a *API) CustomFieldsView(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	config := gcontext.GetConfig(ctx)
	params := parseCustomFieldsParams(r.URL.Query())

	var lines customfields.LineItemProductMap
	productIDs := params.ProductIDs
	if params.byOrder() {
		log := logEntrySetFields(r, logrus.Fields{
			"order_id": params.OrderID,
			"line_ids": params.LineIDs,
		})

		orderProducts, err := a.store.OrderProducts(ctx, params.OrderID)
		if err != nil {
			return storeError(ordersAPIErrorMessage, err)
		}

		lines, productIDs = customfields.MapLineItems(orderProducts, params.LineIDs)
		if len(productIDs) == 0 {
			log.Debug("No requested line item maps to a product")
			return sendJSON(w, http.StatusOK, models.EmptyCustomFieldsResponse())
		}
	} else if len(productIDs) == 0 {
		return badRequestError("No ids provided")
	}

	log := logEntrySetField(r, "product_ids", productIDs)

	products, err := a.store.Products(ctx, productIDs)
	if err != nil {
		return storeError(catalogAPIErrorMessage, err)
	}

	byProduct := customfields.ByProduct(a.allow, products)
	resp := &models.CustomFieldsResponse{
		ByProduct:  byProduct,
		ByLineItem: models.FieldsByID{},
	}
	if len(lines) > 0 {
		resp.ByLineItem = customfields.ByLineItem(lines, byProduct)
	}
	log.Debugf("Returning custom fields for %d products", len(byProduct))

	if config != nil && config.CacheControl != "" {
		w.Header().Set("Cache-Control", config.CacheControl)
	}
	return sendJSON(w, http.StatusOK, resp)
}

// storeError maps a failed store call to the error sent to the client.
func storeError(message string, err error) error {
	if apiErr, ok := bigcommerce.AsAPIError(err); ok {
		return upstreamError(message, apiErr)
	}
	return internalServerError(proxyFailureMessage).WithDetail(err.Error()).WithInternalError(err)
}

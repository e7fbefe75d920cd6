// Package customfields resolves order line items to catalog products and
// reduces product custom fields to an allow list.
package customfields

import (
	"strings"

	"github.com/storefront-tools/bcproxy/bigcommerce"
	"github.com/storefront-tools/bcproxy/models"
)

// LineItemProductMap maps an order line item ID to its catalog product ID.
type LineItemProductMap map[int64]int64

// MapLineItems picks the wanted line items out of an order and returns the
// line item to product mapping together with the distinct product IDs, in
// order of first appearance. Line items without a product are skipped.
func MapLineItems(orderProducts []bigcommerce.OrderProduct, wanted []int64) (LineItemProductMap, []int64) {
	want := make(map[int64]bool, len(wanted))
	for _, id := range wanted {
		want[id] = true
	}

	lines := LineItemProductMap{}
	productIDs := []int64{}
	seen := map[int64]bool{}
	for _, op := range orderProducts {
		if !want[op.ID] || op.ProductID == 0 {
			continue
		}
		lines[op.ID] = op.ProductID
		if !seen[op.ProductID] {
			seen[op.ProductID] = true
			productIDs = append(productIDs, op.ProductID)
		}
	}
	return lines, productIDs
}

// Normalize lowercases field names, resolves values and drops every field
// the allow list does not name. The result is never nil.
func Normalize(allow AllowList, fields []bigcommerce.CustomField) []models.CustomField {
	out := []models.CustomField{}
	for _, f := range fields {
		if f.Name == "" {
			continue
		}
		name := strings.ToLower(f.Name)
		if !allow.Allows(name) {
			continue
		}
		out = append(out, models.CustomField{
			Name:  name,
			Value: f.FieldValue(),
		})
	}
	return out
}

// ByProduct normalizes the custom fields of every product.
func ByProduct(allow AllowList, products []bigcommerce.Product) models.FieldsByID {
	byProduct := make(models.FieldsByID, len(products))
	for _, p := range products {
		byProduct[p.ID] = Normalize(allow, p.CustomFields)
	}
	return byProduct
}

// ByLineItem copies each product's fields under every line item mapped to
// it. Line items whose product is missing from byProduct get an empty list.
func ByLineItem(lines LineItemProductMap, byProduct models.FieldsByID) models.FieldsByID {
	byLine := make(models.FieldsByID, len(lines))
	for lineID, productID := range lines {
		fields, ok := byProduct[productID]
		if !ok {
			fields = []models.CustomField{}
		}
		byLine[lineID] = fields
	}
	return byLine
}

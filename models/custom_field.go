package models

import (
	"encoding/json"
	"strconv"
)

// CustomField is a product attribute as exposed by the proxy. Name is always
// lowercase.
type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldsByID maps a product or line item ID to its custom fields.
type FieldsByID map[int64][]CustomField

// MarshalJSON always produces an object keyed by the decimal ID, with [] for
// missing field lists.
func (f FieldsByID) MarshalJSON() ([]byte, error) {
	out := make(map[string][]CustomField, len(f))
	for id, fields := range f {
		if fields == nil {
			fields = []CustomField{}
		}
		out[strconv.FormatInt(id, 10)] = fields
	}
	return json.Marshal(out)
}

// CustomFieldsResponse is the body returned by the custom fields endpoint.
type CustomFieldsResponse struct {
	ByProduct  FieldsByID `json:"customFieldsByProduct"`
	ByLineItem FieldsByID `json:"customFieldsByLineItem"`
}

// EmptyCustomFieldsResponse is returned when no line item resolved to a product.
func EmptyCustomFieldsResponse() *CustomFieldsResponse {
	return &CustomFieldsResponse{
		ByProduct:  FieldsByID{},
		ByLineItem: FieldsByID{},
	}
}

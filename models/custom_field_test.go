package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyResponseEncodesObjects(t *testing.T) {
	b, err := json.Marshal(EmptyCustomFieldsResponse())
	require.NoError(t, err)
	assert.JSONEq(t, `{"customFieldsByProduct": {}, "customFieldsByLineItem": {}}`, string(b))

	b, err = json.Marshal(&CustomFieldsResponse{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"customFieldsByProduct": {}, "customFieldsByLineItem": {}}`, string(b))
}

func TestFieldsByIDKeys(t *testing.T) {
	resp := &CustomFieldsResponse{
		ByProduct: FieldsByID{
			5229: {{Name: "status", Value: "Low"}},
			10:   nil,
		},
		ByLineItem: FieldsByID{
			88: {{Name: "status", Value: "Low"}},
		},
	}

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"customFieldsByProduct": {"5229": [{"name": "status", "value": "Low"}], "10": []},
		"customFieldsByLineItem": {"88": [{"name": "status", "value": "Low"}]}
	}`, string(b))
}

package api

import (
	"net/url"
	"strconv"
	"strings"
)

// customFieldsParams is the parsed query of a custom fields request.
type customFieldsParams struct {
	OrderID    int64
	LineIDs    []int64
	ProductIDs []int64
}

func parseCustomFieldsParams(params url.Values) *customFieldsParams {
	orderID, _ := parseID(params.Get("order_id"))
	return &customFieldsParams{
		OrderID:    orderID,
		LineIDs:    parseIDList(params["line_ids"]),
		ProductIDs: parseIDList(params["ids"]),
	}
}

// byOrder reports whether the request asks for line items of an order.
func (p *customFieldsParams) byOrder() bool {
	return p.OrderID > 0 && len(p.LineIDs) > 0
}

// parseID parses a single positive base 10 ID.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseIDList parses comma separated IDs across all values of a parameter.
// Invalid tokens are dropped and duplicates collapse to the first occurrence.
func parseIDList(values []string) []int64 {
	ids := []int64{}
	seen := map[int64]bool{}
	for _, v := range values {
		for _, token := range strings.Split(v, ",") {
			id, ok := parseID(token)
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

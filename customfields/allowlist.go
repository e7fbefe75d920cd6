package customfields

import "strings"

// AllowList is the set of custom field names that may leave the proxy.
// Names are compared case-insensitively.
type AllowList map[string]struct{}

// NewAllowList builds an allow list from configured names. Blank names are
// ignored.
func NewAllowList(names []string) AllowList {
	a := make(AllowList, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		a[n] = struct{}{}
	}
	return a
}

// Allows reports whether name is on the list.
func (a AllowList) Allows(name string) bool {
	_, ok := a[strings.ToLower(name)]
	return ok
}

package bigcommerce

import (
	"fmt"

	"github.com/pkg/errors"
)

// APIError is returned when the store answers with a non 2xx status. Body is
// the raw response text.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// AsAPIError unwraps err to an *APIError if there is one.
func AsAPIError(err error) (*APIError, bool) {
	apiErr, ok := errors.Cause(err).(*APIError)
	return apiErr, ok
}

// ValidationError means a response decoded but did not hold what the API
// promises.
type ValidationError struct {
	Endpoint string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s response: %s", e.Endpoint, e.Reason)
}

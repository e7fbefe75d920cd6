package api

import (
	"fmt"
	"net/http"

	"github.com/storefront-tools/bcproxy/bigcommerce"
	gcontext "github.com/storefront-tools/bcproxy/context"
)

// Messages used for errors raised by upstream calls and unexpected failures.
const (
	ordersAPIErrorMessage  = "Orders API error"
	catalogAPIErrorMessage = "Catalog API error"
	proxyFailureMessage    = "Proxy failure"
)

func badRequestError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusBadRequest, fmtString, args...)
}

func internalServerError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusInternalServerError, fmtString, args...)
}

func notFoundError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusNotFound, fmtString, args...)
}

func unauthorizedError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusUnauthorized, fmtString, args...)
}

// upstreamError forwards the status and body of a failed store API call.
// Statuses below 400 cannot carry the error body and become 502.
func upstreamError(message string, err *bigcommerce.APIError) *HTTPError {
	code := err.StatusCode
	if code < http.StatusBadRequest {
		code = http.StatusBadGateway
	}
	return httpError(code, message).WithDetail(err.Body).WithInternalError(err)
}

// HTTPError is an error with a message and an HTTP status code.
type HTTPError struct {
	Code            int    `json:"code"`
	Message         string `json:"error"`
	Detail          string `json:"detail,omitempty"`
	InternalError   error  `json:"-"`
	InternalMessage string `json:"-"`
	ErrorID         string `json:"error_id,omitempty"`
}

func (e *HTTPError) Error() string {
	if e.InternalMessage != "" {
		return e.InternalMessage
	}
	if e.Detail != "" {
		return fmt.Sprintf("%d: %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// Cause returns the root cause error
func (e *HTTPError) Cause() error {
	if e.InternalError != nil {
		return e.InternalError
	}
	return e
}

// WithDetail adds detail text that is sent to the client.
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	e.Detail = detail
	return e
}

// WithInternalError adds internal error information to the error
func (e *HTTPError) WithInternalError(err error) *HTTPError {
	e.InternalError = err
	return e
}

// WithInternalMessage adds internal message information to the error
func (e *HTTPError) WithInternalMessage(fmtString string, args ...interface{}) *HTTPError {
	e.InternalMessage = fmt.Sprintf(fmtString, args...)
	return e
}

func httpError(code int, fmtString string, args ...interface{}) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: fmt.Sprintf(fmtString, args...),
	}
}

func handleError(err error, w http.ResponseWriter, r *http.Request) {
	log := getLogEntry(r)
	errorID := gcontext.GetRequestID(r.Context())
	switch e := err.(type) {
	case *HTTPError:
		if e.Code >= http.StatusInternalServerError {
			e.ErrorID = errorID
			// this will get us the stack trace too
			log.WithError(e.Cause()).Error(e.Error())
		} else {
			log.WithError(e.Cause()).Info(e.Error())
		}
		if jsonErr := sendJSON(w, e.Code, e); jsonErr != nil {
			log.WithError(jsonErr).Error("Failed to write error response")
		}
	default:
		log.WithError(e).Errorf("Unhandled server error: %s", e.Error())
		he := internalServerError(proxyFailureMessage).WithDetail(e.Error())
		he.ErrorID = errorID
		if jsonErr := sendJSON(w, http.StatusInternalServerError, he); jsonErr != nil {
			log.WithError(jsonErr).Error("Failed to write error response")
		}
	}
}

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-tools/bcproxy/graceful"
	"github.com/storefront-tools/bcproxy/metrics"
)

func TestHealthCheck(t *testing.T) {
	rt := NewRouteTest(t)
	for _, path := range []string{"/", "/healthz"} {
		w := rt.Request(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	}
}

func TestRouteNotFound(t *testing.T) {
	rt := NewRouteTest(t)
	w := rt.Request(http.MethodGet, "/nope", nil)
	validateError(t, http.StatusNotFound, w)
}

func TestMethodNotAllowed(t *testing.T) {
	rt := NewRouteTest(t)
	w := rt.Request(http.MethodPost, "/proxy-custom-fields", nil)
	validateError(t, http.StatusMethodNotAllowed, w)
}

func TestMetricsEndpoint(t *testing.T) {
	rt := NewRouteTest(t)
	rt.Request(http.MethodGet, "/healthz", nil)

	w := rt.Request(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bcproxy_http_requests_total")
}

func TestPanicIsCounted(t *testing.T) {
	rt := NewRouteTest(t)
	rt.API = NewAPI(rt.Config, panickingStore{})
	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/proxy-custom-fields", "500")
	before := testutil.ToFloat64(counter)

	w := rt.Get("/proxy-custom-fields?ids=10")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestListenAndServeBindFailure(t *testing.T) {
	rt := NewRouteTest(t)
	closed := false
	rt.API.OnShutdown("test", graceful.ShutdownFunc(func(context.Context) error {
		closed = true
		return nil
	}), time.Second)

	err := rt.API.ListenAndServe("127.0.0.1:-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bind failed")
	assert.True(t, closed)
}

func TestCORSPreflight(t *testing.T) {
	rt := NewRouteTest(t)
	header := http.Header{}
	header.Set("Origin", "https://shop.example.com")
	header.Set("Access-Control-Request-Method", http.MethodGet)
	header.Set("Access-Control-Request-Headers", proxyKeyHeader)

	w := rt.Request(http.MethodOptions, "/proxy-custom-fields", header)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
	assert.True(t, strings.EqualFold(proxyKeyHeader, w.Header().Get("Access-Control-Allow-Headers")))
}

func TestCORSRestrictedOrigin(t *testing.T) {
	rt := NewRouteTest(t)
	rt.Config.AllowOrigin = []string{"https://shop.example.com"}
	rt.API = NewAPI(rt.Config, rt.API.store)

	header := http.Header{}
	header.Set("Origin", "https://shop.example.com")
	w := rt.Request(http.MethodGet, "/healthz", header)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	header.Set("Origin", "https://evil.example.com")
	w = rt.Request(http.MethodGet, "/healthz", header)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogging(t *testing.T) {
	hook := test.NewLocal(logrus.StandardLogger())
	defer hook.Reset()

	rt := NewRouteTest(t)
	w := rt.Request(http.MethodGet, "/proxy-custom-fields", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var completed *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "Completed request" {
			completed = e
		}
	}
	require.NotNil(t, completed)
	assert.Equal(t, http.StatusUnauthorized, completed.Data["status"])
	assert.Equal(t, "/proxy-custom-fields", completed.Data["path"])
	assert.NotEmpty(t, completed.Data["request_id"])
}

// Package metrics holds the prometheus collectors shared by the API and the
// upstream client.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPDuration tracks inbound request latency.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bcproxy",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequests counts inbound requests.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bcproxy",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// UpstreamDuration tracks latency of calls to the store API.
	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bcproxy",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Store API request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	// UpstreamRequests counts calls to the store API. Transport failures are
	// recorded with status "error".
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bcproxy",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total store API requests",
		},
		[]string{"endpoint", "status"},
	)
)

func init() {
	prometheus.MustRegister(HTTPDuration, HTTPRequests, UpstreamDuration, UpstreamRequests)
}

// ObserveHTTP records one inbound request.
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	HTTPRequests.With(labels).Inc()
	HTTPDuration.With(labels).Observe(elapsed.Seconds())
}

// ObserveUpstream records one call to the store API. A zero status means the
// request never got a response.
func ObserveUpstream(endpoint string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	labels := prometheus.Labels{
		"endpoint": endpoint,
		"status":   code,
	}
	UpstreamRequests.With(labels).Inc()
	UpstreamDuration.With(labels).Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

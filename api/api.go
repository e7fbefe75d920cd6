package api

import (
	"net/http"
	"time"

	commonsgraceful "github.com/netlify/netlify-commons/graceful"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/storefront-tools/bcproxy/conf"
	"github.com/storefront-tools/bcproxy/customfields"
	"github.com/storefront-tools/bcproxy/graceful"
	"github.com/storefront-tools/bcproxy/metrics"
)

const (
	defaultVersion = "unknown version"
	corsMaxAge     = 600
)

// API is the custom field proxy REST API
type API struct {
	handler http.Handler
	config  *conf.Configuration
	store   Store
	allow   customfields.AllowList
	closer  *graceful.Closer
	version string
}

// ListenAndServe starts the REST API and blocks until the server has been
// shut down. Targets registered with OnShutdown are closed afterwards.
func (a *API) ListenAndServe(hostAndPort string) error {
	log := logrus.WithFields(logrus.Fields{
		"component": "api",
		"version":   a.version,
	})
	defer a.closer.Close(log)

	server := commonsgraceful.NewGracefulServer(a.handler, log)
	if err := server.Bind(hostAndPort); err != nil {
		return errors.Wrap(err, "http server bind failed")
	}

	if err := server.Listen(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server listen failed")
	}
	return nil
}

// OnShutdown registers another target to close when the server stops.
func (a *API) OnShutdown(name string, shut graceful.Shutdownable, timeout time.Duration) {
	a.closer.Register(name, shut, timeout)
}

// NewAPI instantiates a new REST API using the default version.
func NewAPI(config *conf.Configuration, store Store) *API {
	return NewAPIWithVersion(config, store, defaultVersion)
}

// NewAPIWithVersion instantiates a new REST API.
func NewAPIWithVersion(config *conf.Configuration, store Store, version string) *API {
	api := &API{
		config:  config,
		store:   store,
		allow:   customfields.NewAllowList(config.CustomFields),
		closer:  new(graceful.Closer),
		version: version,
	}

	r := newRouter()
	r.Use(withRequestID)
	r.UseBypass(newStructuredLogger(logrus.StandardLogger()))
	r.UseBypass(instrumented)
	r.UseBypass(recoverer)
	r.Use(api.withConfig)

	// endpoints
	r.Get("/", api.HealthCheck)
	r.Get("/healthz", api.HealthCheck)
	r.Handle("/metrics", metrics.Handler())

	r.With(requireProxyKey).Get("/proxy-custom-fields", api.CustomFieldsView)

	r.NotFound(api.routeNotFound)
	r.MethodNotAllowed(api.methodNotAllowed)

	corsHandler := cors.New(corsOptions(config))

	api.handler = otelhttp.NewHandler(corsHandler.Handler(r), "bcproxy")

	return api
}

func corsOptions(config *conf.Configuration) cors.Options {
	origins := config.AllowOrigin
	if config.AllowsAnyOrigin() {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Requested-With", proxyKeyHeader},
		MaxAge:         corsMaxAge,
	}
}

package api

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pborman/uuid"

	gcontext "github.com/storefront-tools/bcproxy/context"
	"github.com/storefront-tools/bcproxy/metrics"
)

const (
	proxyKeyHeader = "X-Proxy-Key"
	proxyKeyParam  = "key"
)

func withRequestID(w http.ResponseWriter, r *http.Request) (context.Context, error) {
	id := uuid.NewRandom().String()
	ctx := r.Context()
	ctx = gcontext.WithRequestID(ctx, id)
	return ctx, nil
}

func (a *API) withConfig(w http.ResponseWriter, r *http.Request) (context.Context, error) {
	return gcontext.WithConfig(r.Context(), a.config), nil
}

// requireProxyKey rejects requests that do not carry the shared secret when
// one is configured. The query parameter wins over the header.
func requireProxyKey(w http.ResponseWriter, r *http.Request) (context.Context, error) {
	ctx := r.Context()
	config := gcontext.GetConfig(ctx)
	if config == nil || config.Key == "" {
		return ctx, nil
	}

	provided := r.URL.Query().Get(proxyKeyParam)
	if provided == "" {
		provided = r.Header.Get(proxyKeyHeader)
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(config.Key)) != 1 {
		return nil, unauthorizedError("Unauthorized: bad proxy key").WithInternalMessage("proxy key mismatch (provided: %t)", provided != "")
	}
	return ctx, nil
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				if entry := chimiddleware.GetLogEntry(r); entry != nil {
					entry.Panic(rvr, debug.Stack())
				}
				se := internalServerError(proxyFailureMessage).WithDetail(fmt.Sprintf("%v", rvr))
				handleError(se, w, r)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func instrumented(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		metrics.ObserveHTTP(r.Method, path, status, time.Since(start))
	})
}

package context

import (
	"context"

	"github.com/storefront-tools/bcproxy/conf"
)

type contextKey string

func (c contextKey) String() string {
	return "api context key " + string(c)
}

const (
	configKey    = contextKey("config")
	requestIDKey = contextKey("request_id")
)

// WithConfig adds the proxy configuration to the context.
func WithConfig(ctx context.Context, config *conf.Configuration) context.Context {
	return context.WithValue(ctx, configKey, config)
}

// GetConfig reads the proxy configuration from the context.
func GetConfig(ctx context.Context) *conf.Configuration {
	obj := ctx.Value(configKey)
	if obj == nil {
		return nil
	}

	return obj.(*conf.Configuration)
}

// WithRequestID adds the provided request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID reads the request ID from the context.
func GetRequestID(ctx context.Context) string {
	obj := ctx.Value(requestIDKey)
	if obj == nil {
		return ""
	}

	return obj.(string)
}

package util

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CTXKey is the base type for context keys owned by this module.
type CTXKey string

const (
	CTXKeyRequestID CTXKey = "request_id"
)

// LogFromContext returns the request-aware logger attached to the context,
// falling back to the global logger if none (or a disabled one) is present.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = &log.Logger
	}
	return l
}

// LogToContext attaches the given logger to a new child context.
func LogToContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

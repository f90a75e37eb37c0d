// Package middleware holds the HTTP middleware applied to every route.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hatembr/identity-api/internal/api/shared"
	"github.com/hatembr/identity-api/internal/platform/logger"
)

// Trace adds a trace ID and a request-scoped logger to the request context.
// It should be applied early in the middleware chain so all subsequent
// handlers and stores log with the trace id attached.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewString()

		ctx := shared.WithTraceID(r.Context(), traceID)
		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package tracing

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/impactmap/internal/observability/context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// MiddlewareConfig controls request tracing.
type MiddlewareConfig struct {
	ServiceName string
	// Provider defaults to the global tracer provider.
	Provider trace.TracerProvider
}

var untracedRoutes = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// GinMiddleware opens a server span per API request and tags it with the
// volunteer and activity the request touched.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	provider := cfg.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	tracer := provider.Tracer(defaultString(cfg.ServiceName, "impactmap") + "/http")

	return func(c *gin.Context) {
		if _, skip := untracedRoutes[c.FullPath()]; skip {
			c.Next()
			return
		}

		ctx := ExtractContext(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, "HTTP "+c.Request.Method, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := c.Writer.Status()
		span.SetName(c.Request.Method + " " + route)

		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
			attribute.Int64("http.server_duration_ms", time.Since(start).Milliseconds()),
		}
		if requestID := obscontext.RequestIDFromContext(c.Request.Context()); requestID != "" {
			attrs = append(attrs, attribute.String("request_id", requestID))
		}
		if userID := strings.TrimSpace(c.GetString("user_id")); userID != "" {
			attrs = append(attrs, attribute.String("user_id", userID))
		}
		if strings.HasPrefix(route, "/api/activities/:id") {
			attrs = append(attrs, attribute.String("activity_id", strings.TrimSpace(c.Param("id"))))
		}
		span.SetAttributes(SafeAttributes(attrs...)...)

		if status >= http.StatusInternalServerError {
			if lastErr := c.Errors.Last(); lastErr != nil {
				span.RecordError(SafeError(lastErr.Err))
			}
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

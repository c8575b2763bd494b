package http

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "paperround/http"

// tracing opens a server span per request, continuing any trace context the
// gateway sent. With no provider installed the global no-op tracer is used.
func tracing() echo.MiddlewareFunc {
	tracer := otel.Tracer(tracerName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}

			ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", req.Method, route),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(req.Method),
					semconv.HTTPRoute(route),
					semconv.URLPath(req.URL.Path),
				),
			)
			defer span.End()

			if routeID := c.Param("routeId"); routeID != "" {
				span.SetAttributes(attribute.String("paperround.route_id", routeID))
			}

			c.SetRequest(req.WithContext(ctx))

			err := next(c)
			status := c.Response().Status
			if err != nil {
				status = StatusOf(err)
				span.RecordError(err)
			}
			span.SetAttributes(semconv.HTTPResponseStatusCode(status))
			if err != nil && status >= 500 {
				span.SetStatus(codes.Error, err.Error())
			}
			return err
		}
	}
}

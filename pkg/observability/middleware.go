package observability

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// httpStatusServerError is the threshold for HTTP server errors.
const httpStatusServerError = 500

// statusWriter wraps [http.ResponseWriter] to capture the status code.
type statusWriter struct {
	http.ResponseWriter

	statusCode int
	written    bool
}

// WriteHeader captures the status code before delegating to the wrapped writer.
func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.statusCode = code
		sw.written = true
	}

	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(buf []byte) (int, error) {
	if !sw.written {
		sw.statusCode = http.StatusOK
		sw.written = true
	}

	n, err := sw.ResponseWriter.Write(buf)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}

	return n, nil
}

// RouteNamer returns the low-cardinality name of a request's route.
type RouteNamer func(hr *http.Request) string

// HTTPMiddleware returns middleware that creates a server span per request and
// records RED metrics. Span names use "METHOD route" where route comes from
// namer, falling back to the raw path.
func HTTPMiddleware(tracer trace.Tracer, red *REDMetrics, namer RouteNamer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
			route := hr.URL.Path
			if namer != nil {
				if name := namer(hr); name != "" {
					route = name
				}
			}

			op := hr.Method + " " + route

			// Extract W3C traceparent/tracestate/baggage from incoming headers.
			parentCtx := otel.GetTextMapPropagator().Extract(hr.Context(), propagation.HeaderCarrier(hr.Header))

			ctx, span := tracer.Start(parentCtx, op,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(hr.Method),
					semconv.HTTPRoute(route),
					attribute.String("http.target", hr.URL.Path),
				),
			)
			defer span.End()

			done := red.TrackInflight(ctx, op)
			defer done()

			start := time.Now()
			sw := &statusWriter{ResponseWriter: rw, statusCode: http.StatusOK}
			next.ServeHTTP(sw, hr.WithContext(ctx))

			span.SetAttributes(semconv.HTTPResponseStatusCode(sw.statusCode))

			status := StatusOK
			if sw.statusCode >= httpStatusServerError {
				span.SetStatus(codes.Error, http.StatusText(sw.statusCode))

				status = StatusError
			}

			red.RecordRequest(ctx, op, status, time.Since(start))
		})
	}
}

package server

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
)

// traced wraps a handler in a span named after the operation. With no
// tracer provider installed this is a no-op passthrough.
func (s *Server) traced(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := s.tracer.Start(r.Context(), name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.URL.Path),
			),
		)
		defer span.End()

		if id := chi.URLParam(r, "id"); id != "" {
			span.SetAttributes(attribute.String("editor.id", id))
		}
		next(w, r.WithContext(ctx))
	}
}

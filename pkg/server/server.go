// Package server hosts editor instances over HTTP: a REST surface
// mirroring the page-wide registry API, a WebSocket stream carrying one
// field update per committed transaction, and the usual operational
// endpoints.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/inkwell-dev/inkwell/pkg/bridge"
	"github.com/inkwell-dev/inkwell/pkg/editor"
	"github.com/inkwell-dev/inkwell/pkg/registry"
)

const tracerName = "inkwell"

// Server hosts editor instances for one process.
type Server struct {
	cfg    Config
	logger *slog.Logger

	bridge    *bridge.Bridge
	registry  *registry.Registry
	sink      *notifySink
	overrides *editor.OverrideStore
	policy    *bluemonday.Policy
	metrics   *Metrics
	tracer    trace.Tracer

	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// Options tunes server construction. Zero values get defaults.
type Options struct {
	Logger   *slog.Logger
	Registry prometheus.Registerer
}

// New creates a Server from config.
func New(cfg Config, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := NewMetrics(cfg.MetricsNamespace, opts.Registry)

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		bridge:    bridge.New(nil),
		registry:  registry.New(logger),
		sink:      newNotifySink(metrics),
		overrides: editor.NewOverrideStore(),
		policy:    contentPolicy(),
		metrics:   metrics,
		tracer:    otel.Tracer(tracerName),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	return s
}

// Registry exposes the instance directory, e.g. for embedding hosts.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Router builds the HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/editors", func(r chi.Router) {
		r.Post("/insert", s.traced("editors.insert", s.handleInsertAtActive))

		r.Route("/{id}", func(r chi.Router) {
			r.Post("/", s.traced("editors.mount", s.handleMount))
			r.Delete("/", s.traced("editors.unmount", s.handleUnmount))
			r.Get("/field", s.handleGetField)
			r.Post("/content", s.traced("editors.set_content", s.handleSetContent))
			r.Post("/focus", s.handleFocus)
			r.Post("/selection", s.handleSelection)
			r.Post("/command/{token}", s.traced("editors.command", s.handleCommand))
			r.Post("/source/enter", s.handleSourceEnter)
			r.Post("/source/apply", s.traced("editors.source_apply", s.handleSourceApply))
			r.Post("/source/cancel", s.handleSourceCancel)
			r.Get("/stream", s.handleStream)
		})
	})
	return r
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("server: listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

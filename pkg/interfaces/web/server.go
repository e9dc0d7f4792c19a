// Package web provides the HTTP surface for uploading, processing and exporting part lists.
package web

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vsinha/prettybom/pkg/application/services"
	"github.com/vsinha/prettybom/pkg/infrastructure/metrics"
)

// DefaultMaxUploadBytes limits part list uploads when no limit is configured (10MB).
const DefaultMaxUploadBytes = 10 << 20

// Server is the HTTP server over the BOM service.
type Server struct {
	service        *services.BOMService
	recorder       *metrics.Recorder
	logger         *zap.Logger
	maxUploadBytes int64
	router         *chi.Mux
	server         *http.Server
}

// NewServer creates a new Server. A nil recorder serves the service's metrics, a nil
// logger discards output and a non-positive upload limit falls back to DefaultMaxUploadBytes.
func NewServer(service *services.BOMService, recorder *metrics.Recorder, logger *zap.Logger, maxUploadBytes int64) *Server {
	if recorder == nil {
		recorder = service.Metrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	s := &Server{
		service:        service,
		recorder:       recorder,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
		router:         chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.recorder.Registry(), promhttp.HandlerOpts{}))

	s.router.Route("/boms", func(r chi.Router) {
		r.Get("/", s.handleListBOMs)
		r.Post("/", s.handleUpload)

		r.Route("/{bomID}", func(r chi.Router) {
			r.Get("/", s.handleSummary)
			r.Delete("/", s.handleDelete)
			r.Get("/summary", s.handleSummary)
			r.Put("/settings", s.handleSettings)
			r.Post("/process", s.handleProcess)
			r.Post("/undo", s.handleUndo)
			r.Post("/reset", s.handleReset)
			r.Get("/export", s.handleExport)
			r.Get("/history", s.handleHistory)
		})
	})
}

// Start listens on addr and serves HTTP requests until Shutdown.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve serves HTTP requests on an open listener until Shutdown.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("starting server", zap.String("addr", listener.Addr().String()))
	return s.server.Serve(listener)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// requestLogger logs every request with its status, duration and request id.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"estate-intel/monitoring"
	"estate-intel/services"
)

// Server is the HTTP shell around the report pipeline.
type Server struct {
	router  *mux.Router
	httpSrv *http.Server
	svc     *services.ReportService
	metrics *monitoring.Metrics
	logger  *slog.Logger

	defaultMaxComparables int
}

// NewServer wires the routes and middleware.
func NewServer(addr string, svc *services.ReportService, metrics *monitoring.Metrics,
	defaultMaxComparables int, logger *slog.Logger) *Server {
	s := &Server{
		router:                mux.NewRouter(),
		svc:                   svc,
		metrics:               metrics,
		logger:                logger,
		defaultMaxComparables: defaultMaxComparables,
	}

	s.router.Use(s.requestIDMiddleware, s.loggingMiddleware)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/reports", s.handleGenerateReport).Methods(http.MethodPost)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // a report run fetches several pages
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

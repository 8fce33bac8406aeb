package ui

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"hrdash/internal"
	"hrdash/internal/usage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HealthFunc reports whether the process can serve traffic
type HealthFunc func(ctx context.Context) error

// OpsApp is the operator listener: health, Prometheus metrics and pprof
type OpsApp struct {
	router     *chi.Mux
	httpServer *http.Server
	health     HealthFunc
	metrics    *usage.Metrics
	logger     *internal.Logger
}

// NewOpsApp creates a new ops application
func NewOpsApp(metrics *usage.Metrics, health HealthFunc, logger *internal.Logger) *OpsApp {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	app := &OpsApp{
		router:  chi.NewRouter(),
		health:  health,
		metrics: metrics,
		logger:  logger,
	}

	app.setupMiddleware()
	app.setupRoutes()
	app.httpServer = &http.Server{
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app
}

// setupMiddleware configures HTTP middleware
func (a *OpsApp) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *OpsApp) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	a.router.Mount("/debug", middleware.Profiler())
}

func (a *OpsApp) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if a.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := a.health(ctx); err != nil {
			a.logger.Warn("[OpsApp] health check failed: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(err.Error()))
			return
		}
	}
	_, _ = w.Write([]byte("ok"))
}

// Handler returns the ops router
func (a *OpsApp) Handler() http.Handler {
	return a.router
}

// Start serves on addr until Shutdown is called
func (a *OpsApp) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	a.logger.Info("[OpsApp] starting ops listener on http://%s", ln.Addr())
	if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the ops listener
func (a *OpsApp) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}

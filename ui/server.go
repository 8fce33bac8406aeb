package ui

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"hrdash/internal"
	"hrdash/internal/analysis"
	"hrdash/internal/api"
	"hrdash/internal/usage"
	"hrdash/ui/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// ServerConfig holds the dashboard API server settings
type ServerConfig struct {
	GinMode        string
	StaticDir      string   // optional frontend build served for non-API paths
	AllowedOrigins []string // CORS origins; "*" allows any
}

// Server is the dashboard HTTP server: JSON views under /api plus an optional static frontend
type Server struct {
	router     *gin.Engine
	handler    http.Handler
	httpServer *http.Server
	config     ServerConfig
	logger     *internal.Logger
}

// NewServer creates a new dashboard server over service
func NewServer(config ServerConfig, service *analysis.Service, metrics *usage.Metrics, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	s := &Server{
		router: gin.New(),
		config: config,
		logger: logger,
	}
	s.setupMiddleware(metrics)
	s.setupRoutes(service)

	s.handler = cors.New(cors.Options{
		AllowedOrigins: config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(s.router)
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware(metrics *usage.Metrics) {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.AccessLog(s.logger))
	s.router.Use(middleware.Metrics(metrics))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes(service *analysis.Service) {
	api.NewDashboardHandler(service, s.logger).Register(s.router.Group("/api"))

	if s.config.StaticDir == "" {
		return
	}
	s.logger.Info("[Server] serving static files from %s", s.config.StaticDir)
	files := http.Dir(s.config.StaticDir)
	s.router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.String(http.StatusNotFound, "404 page not found")
			return
		}
		c.FileFromFS(path, files)
	})
}

// Handler returns the CORS-wrapped router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("[Server] starting dashboard API on http://%s", ln.Addr())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonwraymond/studentops/auth"
	"github.com/jonwraymond/studentops/health"
	"github.com/jonwraymond/studentops/observe"
	"github.com/jonwraymond/studentops/students"
)

// Config configures the HTTP server.
type Config struct {
	Port    int
	Debug   bool
	Title   string
	Version string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SetDefaults fills zero values.
func (c *Config) SetDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	// Writes wait on the student API, bounded by its own timeout.
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Deps are the components the routes call into.
type Deps struct {
	Students *students.Service
	Health   *health.Aggregator
	Logger   observe.Logger

	// Auth protects /api when set.
	Auth auth.Authenticator

	// Metrics is served on /metrics when set.
	Metrics http.Handler
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg Config, deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = observe.NewNopLogger()
	}

	router := gin.New()
	router.Use(RecoveryMiddleware(deps.Logger))
	router.Use(CorrelationMiddleware())
	router.Use(LoggerMiddleware(deps.Logger))

	h := &handlers{
		title:    cfg.Title,
		version:  cfg.Version,
		students: deps.Students,
		logger:   deps.Logger,
	}

	router.GET("/", h.index)
	router.GET("/health", gin.WrapF(health.ReportHandler(deps.Health, cfg.Version)))
	router.GET("/healthz", gin.WrapF(health.LivenessHandler()))
	router.GET("/readyz", gin.WrapF(health.ReadinessHandler(deps.Health)))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	api := router.Group("/api", AuthMiddleware(deps.Auth, deps.Logger))
	api.GET("/students", h.listStudents)
	api.POST("/students", h.createStudent)
	api.GET("/students/details", h.studentDetails)

	return router
}

// Server is the front-end HTTP server with lifecycle management.
type Server struct {
	config Config
	router *gin.Engine
	server *http.Server
	logger observe.Logger
}

// New creates a server. Gin runs in release mode unless cfg.Debug is set.
func New(cfg Config, deps Deps) *Server {
	cfg.SetDefaults()
	if deps.Logger == nil {
		deps.Logger = observe.NewNopLogger()
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := NewRouter(cfg, deps)
	return &Server{
		config: cfg,
		router: router,
		logger: deps.Logger,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info(ctx, "starting HTTP server",
		observe.F("address", ln.Addr().String()),
		observe.F("version", s.config.Version),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutting down HTTP server", observe.F("timeout", s.config.ShutdownTimeout.String()))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil {
		return err
	}
	s.logger.Info(ctx, "HTTP server stopped gracefully")
	return nil
}

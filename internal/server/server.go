// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hekevintran/kinetophone/internal/api"
	"github.com/hekevintran/kinetophone/internal/config"
	"github.com/hekevintran/kinetophone/internal/engine"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/hekevintran/kinetophone/internal/middleware"
)

// Server exposes an engine over the HTTP control API
type Server struct {
	config *config.Config
	engine *engine.Engine
	router *gin.Engine
	server *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, eng *engine.Engine) *Server {
	s := &Server{
		config: cfg,
		engine: eng,
	}
	s.setupRouter()
	return s
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	// Set Gin mode based on log level
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(middleware.RequestLogger())
	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())

	apiGroup := s.router.Group("/api")

	api.SetupHealthRoutes(apiGroup, s.engine)
	api.SetupChannelRoutes(apiGroup, s.engine)
	api.SetupTimingRoutes(apiGroup, s.engine)
	api.SetupPlaybackRoutes(apiGroup, s.engine)
	api.SetupEventRoutes(apiGroup, s.engine)
}

// Start starts the HTTP server and blocks until it stops. It returns nil
// after a graceful Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown pauses playback and gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	s.engine.Pause()

	// Check if server was started before attempting shutdown
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}

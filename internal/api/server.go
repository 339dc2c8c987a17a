package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dharma-project/fir-extractor/internal/config"
	"github.com/dharma-project/fir-extractor/internal/logger"
	"github.com/dharma-project/fir-extractor/internal/telemetry"
)

// Server wraps the HTTP server and its router.
type Server struct {
	engine *gin.Engine
	server *http.Server
	logger logger.Logger
}

// NewServer builds the router and HTTP server from config.
func NewServer(cfg config.ServiceConfig, h *Handlers, tp *telemetry.Provider, log logger.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))

	RegisterRoutes(engine, h, tp)

	return &Server{
		engine: engine,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: log,
	}
}

// Engine exposes the router, for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start runs the server until it is shut down or fails.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logger.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.server.Shutdown(ctx)
}

// requestLogger logs one line per request at debug level.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("request handled",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()))
	}
}

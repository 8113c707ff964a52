// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/freshmeals/web/internal/config"
	"github.com/freshmeals/web/internal/interfaces/http/middleware"
	"github.com/freshmeals/web/internal/interfaces/http/routes"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	gin         *gin.Engine
	httpServer  *http.Server
	deps        routes.Deps
	redisClient *redis.Client
	started     time.Time
}

// NewServer creates a new HTTP server instance. redisClient may be nil; the
// rate limiter is skipped without it.
func NewServer(cfg *config.Config, deps routes.Deps, redisClient *redis.Client) *Server {
	return &Server{
		config:      cfg,
		deps:        deps,
		redisClient: redisClient,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on environment
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Create Gin engine
	s.gin = gin.New()
	s.started = time.Now()

	// Template helpers: cents-to-dollars rendering lives here, at the
	// display boundary
	s.gin.SetFuncMap(template.FuncMap{
		"usd": func(cents int64) string {
			return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
		},
	})

	// Setup middleware
	s.setupMiddleware()

	// Views and static assets
	s.gin.LoadHTMLGlob("views/*.html")
	s.gin.Static("/static", "./public")

	// Setup routes
	s.gin.GET("/health", s.healthCheck)
	routes.SetupRoutes(s.gin, s.deps)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	log.Printf("HTTP server starting on port %s", s.config.Server.Port)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	log.Println("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	// Recovery middleware - recover from panics
	s.gin.Use(gin.Recovery())

	// Custom logger middleware
	s.gin.Use(middleware.Logger(s.config))

	// Request ID middleware
	s.gin.Use(middleware.RequestID())

	// Security headers middleware
	s.gin.Use(middleware.SecurityHeaders())

	// Rate limiting middleware, only when Redis is configured
	if s.config.RateLimitEnabled() && s.redisClient != nil {
		s.gin.Use(middleware.RateLimit(s.config, s.redisClient))
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"uptime":      time.Since(s.started).String(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
		"payments":    s.config.PaymentsEnabled(),
	})
}

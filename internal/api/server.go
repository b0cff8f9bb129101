// Package api serves a read-only HTTP view over run history and saved
// snapshots. Applying and rolling back changes stays CLI-only, behind the
// interactive confirmation gate.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/api/dto"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config Config
	engine *gin.Engine
	repo   storage.Repository
	logger *slog.Logger
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultConfig().Port
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = DefaultConfig().AllowedOrigins
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		config: cfg,
		engine: engine,
		repo:   repo,
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.engine.Use(s.requestLogger())
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	s.engine.GET("/health", s.handleHealth)

	apiGroup := s.engine.Group("/api")
	{
		apiGroup.GET("/runs", s.handleListRuns)
		apiGroup.GET("/runs/:id", s.handleGetRun)
		apiGroup.GET("/snapshots", s.handleListSnapshots)
		apiGroup.GET("/snapshots/:window", s.handleGetSnapshot)
	}
}

// Run starts the server and blocks until it exits.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.Info("Starting API server", "addr", addr)
	return s.engine.Run(addr)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewHealthResponse())
}

func (s *Server) handleListRuns(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 50)

	runs, err := s.repo.ListRuns(limit)
	if err != nil {
		s.logger.Error("Failed to list runs", "error", err.Error())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list runs"})
		return
	}

	c.JSON(http.StatusOK, dto.RunListResponse{Runs: runs, Count: len(runs)})
}

func (s *Server) handleGetRun(c *gin.Context) {
	run, err := s.repo.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

func (s *Server) handleListSnapshots(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 50)

	snapshots, err := s.repo.ListSnapshots(limit)
	if err != nil {
		s.logger.Error("Failed to list snapshots", "error", err.Error())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.SnapshotListResponse{Snapshots: snapshots, Count: len(snapshots)})
}

func (s *Server) handleGetSnapshot(c *gin.Context) {
	windowKey := c.Param("window")

	snap, err := s.repo.LoadSnapshot(windowKey)
	if err != nil {
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "snapshot not found"})
			return
		}
		s.logger.Error("Failed to load snapshot", "window", windowKey, "error", err.Error())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load snapshot"})
		return
	}

	c.JSON(http.StatusOK, dto.SnapshotResponse{
		WindowKey:        windowKey,
		TransactionCount: len(snap),
		Transactions:     snap,
	})
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(c *gin.Context, name string, defaultVal int) int {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

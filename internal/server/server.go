// Package server exposes the HTTP API for uploading candidate documents,
// inspecting parse results and confirming reviewed ones.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candidatehq/docparse/internal/async"
	"github.com/candidatehq/docparse/internal/common"
	"github.com/candidatehq/docparse/internal/export"
	"github.com/candidatehq/docparse/internal/repository"
)

// Server wires the HTTP surface to repositories and the async queue.
type Server struct {
	logger *slog.Logger
	pool   *pgxpool.Pool
	docs   repository.DocumentRepository
	jobs   repository.ParseJobRepository
	queue  async.Queue
	export *export.Service

	http *http.Server
}

func New(
	logger *slog.Logger,
	pool *pgxpool.Pool,
	docs repository.DocumentRepository,
	jobs repository.ParseJobRepository,
	queue async.Queue,
	exportSvc *export.Service,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		logger: logger,
		pool:   pool,
		docs:   docs,
		jobs:   jobs,
		queue:  queue,
		export: exportSvc,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/healthz", s.handleHealth)

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/documents", s.handleUpload)
		v1.GET("/documents/:id", s.handleGetDocument)
		v1.POST("/documents/:id/confirm", s.handleConfirm)
		v1.GET("/export", s.handleExport)
	}

	s.http = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// requestLogger attaches a request ID and logs each request on completion.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), requestID))
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		s.logger.Info("http.request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"request_id", requestID,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

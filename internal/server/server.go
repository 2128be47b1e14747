// Package server exposes the analysis engine over HTTP. The transport is a
// thin wrapper: request validation, the engine call, and the two-tier error
// contract (client error vs internal failure). No state survives a request.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/debtlens/debtlens/pkg/analyzer"
	"github.com/debtlens/debtlens/pkg/config"
)

// Server wires the engine to the HTTP boundary.
type Server struct {
	engine *analyzer.Analyzer
	cfg    config.ServerConfig
	logger *zap.Logger
}

// New creates a server around an engine.
func New(engine *analyzer.Analyzer, cfg config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{engine: engine, cfg: cfg, logger: logger}
}

// Router builds the gin engine with logging and recovery middleware.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(s.recoveryMiddleware())
	router.Use(s.loggerMiddleware())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", s.handleAnalyze)
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// analyzeRequest is the single request shape. Code is a pointer so a
// missing field is distinguishable from an empty string, which is a valid
// input.
type analyzeRequest struct {
	Code *string `json:"code"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	// The duplicate-window scan is quadratic in line count, so the size
	// limit lives here at the boundary, not in the engine.
	if s.cfg.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
	}

	var req analyzeRequest
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object with a string \"code\" field"})
		return
	}
	if req.Code == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object with a string \"code\" field"})
		return
	}

	result, err := s.engine.Analyze(c.Request.Context(), *req.Code)
	if err != nil {
		s.logger.Error("analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal analysis failure"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}

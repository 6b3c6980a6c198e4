// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/recommendit/recommend"
)

const (
	readHeaderTimeout = 10 * time.Second

	// Recommendation requests can wait on a remote page fetch plus an LLM
	// round trip, both capped at 10s each.
	requestTimeout = 30 * time.Second
)

// Server exposes the recommendation engine over HTTP.
type Server struct {
	engine     *recommend.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a server bound to addr, serving the given engine.
func New(engine *recommend.Engine, addr string, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	s := &Server{
		engine: engine,
		logger: slog.Default().With("component", "http-server"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s, nil
}

// Start listens and serves until Shutdown is called. It returns nil after a
// clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/test-types", s.handleTestTypes)
	router.GET("/stats", s.handleStats)
	router.POST("/recommend", s.handleRecommend)
	return router
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "recommendit",
		"endpoints": gin.H{
			"POST /recommend": "get assessment recommendations for a query or job posting URL",
			"GET /health":     "service health and capability flags",
			"GET /test-types": "catalog test-type labels",
			"GET /stats":      "catalog statistics",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"catalog_size":    s.engine.CatalogSize(),
		"ai_enabled":      s.engine.AIEnabled(),
		"semantic_search": s.engine.SemanticEnabled(),
	})
}

func (s *Server) handleTestTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"test_types": s.engine.Categories()})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Stats())
}

// handleRecommend answers a recommendation request. Malformed bodies and
// requests with neither query nor URL are client errors; everything else
// the engine degrades internally rather than failing.
func (s *Server) handleRecommend(c *gin.Context) {
	var req recommend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := s.engine.Recommend(ctx, &req)
	if err != nil {
		if errors.Is(err, recommend.ErrNoQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("recommendation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Package server exposes curriculum sessions over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/session"
)

// Server routes HTTP requests to per-session curriculum stores.
type Server struct {
	svc      *pathway.Service
	sessions *session.Registry
	logger   logrus.FieldLogger
	router   *gin.Engine
	started  time.Time
}

// New creates a Server. The gin mode is taken from the process-wide
// setting.
func New(svc *pathway.Service, sessions *session.Registry, logger logrus.FieldLogger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	s := &Server{
		svc:      svc,
		sessions: sessions,
		logger:   logger,
		router:   router,
		started:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/v1")
	{
		v1.POST("/sessions", s.handleCreateSession)
		v1.GET("/sessions/:id", s.handleGetSession)
		v1.DELETE("/sessions/:id", s.handleDeleteSession)

		sess := v1.Group("/sessions/:id")
		sess.POST("/curriculum", s.handleRequestCurriculum)
		sess.GET("/curriculum", s.handleGetCurriculum)
		sess.POST("/curriculum/select", s.handleSelectTopic)
		sess.POST("/curriculum/advance", s.handleAdvance)
		sess.POST("/curriculum/clear", s.handleClearSelection)
		sess.POST("/curriculum/status", s.handleSetStatus)
		sess.POST("/theory", s.handleTheory)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"model":    s.svc.ModelID(),
		"sessions": s.sessions.Len(),
		"uptime":   time.Since(s.started).Round(time.Second).String(),
	})
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if id := c.Param("id"); id != "" {
			entry = entry.WithField("session", id)
		}
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last()).Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}

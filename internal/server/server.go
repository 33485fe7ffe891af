// Package server runs the HTTP server and the background session cleanup.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/api/router"
	"github.com/skilltreedocs/skilltreedocs/internal/store"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
)

// HTTP server timeout configuration
const (
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 30 * time.Second
	defaultStopTimeout     = 5 * time.Second
)

// Server represents the HTTP server
type Server struct {
	deps       router.Deps
	httpServer *http.Server
	listener   net.Listener
	router     *gin.Engine
	cleanup    *store.SessionCleanupService
}

// New creates a new server instance
func New(deps router.Deps) *Server {
	if deps.Config.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	return &Server{
		deps:    deps,
		router:  r,
		cleanup: store.NewSessionCleanupService(deps.Store, deps.Config.Sessions.RetentionDays),
	}
}

// SetupRoutes configures all routes
func (s *Server) SetupRoutes() {
	router.Setup(s.router, s.deps)
}

// Start binds the listen address, starts the session cleanup job and serves
// in the background.
func (s *Server) Start() error {
	addr := s.deps.Config.Server.Address()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln

	if err := s.cleanup.Start(); err != nil {
		ln.Close()
		return err
	}

	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	consts.SetStartedAt(time.Now())
	logger.Info("Starting HTTP server",
		zap.String("address", ln.Addr().String()),
		zap.Bool("debug", s.deps.Config.Server.Debug),
	)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// WaitForShutdown waits for SIGINT or SIGTERM and shuts down gracefully.
// A second signal forces an immediate exit.
func (s *Server) WaitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("Received shutdown signal, starting graceful shutdown (press Ctrl+C again to force exit)",
		zap.String("signal", sig.String()))

	go func() {
		sig := <-quit
		logger.Warn("Received second shutdown signal, forcing exit",
			zap.String("signal", sig.String()))
		os.Exit(1)
	}()

	if err := s.shutdown(defaultShutdownTimeout); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// Stop stops the server immediately
func (s *Server) Stop() error {
	return s.shutdown(defaultStopTimeout)
}

func (s *Server) shutdown(timeout time.Duration) error {
	s.cleanup.Stop()
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Router returns the underlying Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

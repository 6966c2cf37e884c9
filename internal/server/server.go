// Package server exposes the store over HTTP. Handlers are thin: bind,
// call the store with the authenticated principal, map the error. All
// access control lives in the store; the server only resolves who is
// asking.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/en-arthur/initflow-be/internal/auth"
	"github.com/en-arthur/initflow-be/internal/sqlite"
)

// Server wires the store and token issuer behind a gin engine.
type Server struct {
	store  *sqlite.Store
	issuer *auth.Issuer
	logger *slog.Logger
	engine *gin.Engine
}

// New builds a Server with all routes registered.
func New(store *sqlite.Store, issuer *auth.Issuer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		store:  store,
		issuer: issuer,
		logger: logger,
		engine: engine,
	}
	s.registerRoutes()
	return s
}

// Handler returns the http.Handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// Package server serves portfolio pages and their htmx fragments over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/mail"
	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/site"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server wires the site, the mail sender and the gin engine together.
type Server struct {
	cfg    *config.Config
	site   *site.Site
	mail   mail.Sender
	logger *zap.Logger
	engine *gin.Engine
}

// New builds the gin engine and registers every route.
func New(cfg *config.Config, s *site.Site, sender mail.Sender, logger *zap.Logger) (*Server, error) {
	salt, err := generateSalt()
	if err != nil {
		return nil, fmt.Errorf("generating visitor salt: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	tracker := &visitorTracker{salt: salt, logger: logger}
	r.Use(tracker.middleware())

	srv := &Server{cfg: cfg, site: s, mail: sender, logger: logger, engine: r}
	srv.routes()
	return srv, nil
}

func (s *Server) routes() {
	r := s.engine

	if s.cfg.StaticDir != "" {
		r.Static("/static", s.cfg.StaticDir)
	}
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// Home page route
	r.GET("/", s.home)

	f := r.Group("/fragments")
	f.GET("/sidebar", s.sidebar)
	f.GET("/testimonials/:index", s.openTestimonial)
	f.GET("/modal/close", s.closeModal)
	f.GET("/select", s.toggleSelect)
	f.GET("/select/:index", s.chooseSelectItem)
	f.GET("/filter/:index", s.clickFilterButton)
	f.GET("/portfolio", s.portfolio)
	f.POST("/contact/validate", s.validateContact)
	f.GET("/pages/:page", s.navigate)

	r.POST(page.RouteContact, s.contact)
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", httpSrv.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

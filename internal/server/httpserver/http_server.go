// Package httpserver runs the public site server and the admin server.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/config"
	derrors "git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/logfields"
	"git.home.luguber.info/inful/agencysite/internal/server/handlers"
	smw "git.home.luguber.info/inful/agencysite/internal/server/middleware"
)

// Server manages the site and admin HTTP endpoints.
type Server struct {
	siteServer   *http.Server
	adminServer  *http.Server
	cfg          config.ServerConfig
	deps         Deps
	errorAdapter *derrors.HTTPErrorAdapter
	startTime    time.Time

	// Handler modules
	siteHandlers       *handlers.SiteHandlers
	contactHandlers    *handlers.ContactHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	mu    sync.Mutex
	addrs map[string]net.Addr
}

// New constructs a new HTTP server wiring instance.
func New(cfg config.ServerConfig, deps Deps) *Server {
	s := &Server{
		cfg:          cfg,
		deps:         deps,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
		startTime:    time.Now(),
		addrs:        map[string]net.Addr{},
	}

	s.siteHandlers = handlers.NewSiteHandlers(deps.Profile, deps.Pages, deps.Source, deps.Renderer)
	s.contactHandlers = handlers.NewContactHandlers(deps.Contact)
	s.monitoringHandlers = handlers.NewMonitoringHandlers(s.startTime, deps.Readiness)
	return s
}

// SiteHandler returns the routed and middleware-wrapped public handler.
func (s *Server) SiteHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.siteHandlers.HandleHome)
	mux.HandleFunc("GET /blog", s.siteHandlers.HandleBlogList)
	mux.HandleFunc("GET /blog/{slug}", s.siteHandlers.HandleBlogPost)
	mux.HandleFunc("GET /{page}", s.siteHandlers.HandlePage)
	mux.HandleFunc("POST /api/contact", s.contactHandlers.HandleContact)
	mux.HandleFunc("/", s.siteHandlers.HandleNotFound)

	return smw.Chain(slog.Default(), s.errorAdapter, smw.Options{
		Recorder:    s.deps.Recorder,
		Compression: s.cfg.CompressionEnabled(),
	})(mux)
}

// AdminHandler returns the routed admin handler.
func (s *Server) AdminHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /readyz", s.monitoringHandlers.HandleReadiness)
	if s.deps.MetricsHandler != nil {
		mux.Handle("GET /metrics", s.deps.MetricsHandler)
	}
	return smw.Chain(slog.Default(), s.errorAdapter, smw.Options{})(mux)
}

// Start binds both ports and begins serving.
func (s *Server) Start(ctx context.Context) error {
	// Pre-bind all required ports so we can fail fast and surface aggregate errors instead of
	// logging independent 'address already in use' lines after partial initialization.
	type preBind struct {
		name string
		port int
		ln   net.Listener
	}
	binds := []preBind{
		{name: "site", port: s.cfg.Port},
		{name: "admin", port: s.cfg.AdminPort},
	}
	var bindErrs []error
	lc := net.ListenConfig{}
	for i := range binds {
		addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(binds[i].port))
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s port %d: %w", binds[i].name, binds[i].port, err))
			continue
		}
		binds[i].ln = ln
	}
	if len(bindErrs) > 0 {
		for _, b := range binds {
			if b.ln != nil {
				_ = b.ln.Close()
			}
		}
		return derrors.WrapError(errors.Join(bindErrs...), derrors.CategoryRuntime, "http startup failed").
			Fatal().
			Build()
	}

	s.siteServer = s.newHTTPServer(s.SiteHandler())
	s.adminServer = s.newHTTPServer(s.AdminHandler())

	s.mu.Lock()
	s.addrs["site"] = binds[0].ln.Addr()
	s.addrs["admin"] = binds[1].ln.Addr()
	s.mu.Unlock()

	s.startServerWithListener("site", s.siteServer, binds[0].ln)
	s.startServerWithListener("admin", s.adminServer, binds[1].ln)

	slog.Info("HTTP servers started",
		slog.String("site_addr", binds[0].ln.Addr().String()),
		slog.String("admin_addr", binds[1].ln.Addr().String()))
	return nil
}

// Addr returns the bound address of the "site" or "admin" listener after Start.
func (s *Server) Addr(name string) net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addrs[name]
}

func (s *Server) newHTTPServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}
}

// Stop gracefully shuts down both servers.
func (s *Server) Stop(ctx context.Context) error {
	var errs []error

	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}
	if s.siteServer != nil {
		if err := s.siteServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("site server shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	slog.Info("HTTP servers stopped")
	return nil
}

// startServerWithListener launches an http.Server on a pre-bound listener.
func (s *Server) startServerWithListener(kind string, srv *http.Server, ln net.Listener) {
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(fmt.Sprintf("%s server error", kind), logfields.Error(err))
		}
	}()
}

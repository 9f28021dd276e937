// Package jweb hosts the page, AJAX, data and asset endpoints of a jweb
// application.
package jweb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	platformgrpc "github.com/louisbranch/jweb/internal/platform/grpc"
	"github.com/louisbranch/jweb/internal/platform/timeouts"
	jwebapp "github.com/louisbranch/jweb/internal/services/jweb/app"
	"github.com/louisbranch/jweb/internal/services/jweb/data"
	"github.com/louisbranch/jweb/internal/services/jweb/event"
	"github.com/louisbranch/jweb/internal/services/jweb/intercept"
	module "github.com/louisbranch/jweb/internal/services/jweb/module"
	"github.com/louisbranch/jweb/internal/services/jweb/modules"
	"github.com/louisbranch/jweb/internal/services/jweb/page"
	"github.com/louisbranch/jweb/internal/services/jweb/platform/httpx"
	"github.com/louisbranch/jweb/internal/services/jweb/platform/observability"
	"github.com/louisbranch/jweb/internal/services/jweb/scope"
)

// HealthService is the gRPC health service name reported by the server.
const HealthService = "jweb"

// Registries holds the application registrations served by jweb.
type Registries struct {
	Pages        *page.Registry
	Events       *event.Registry
	Data         *data.Registry
	Interceptors *intercept.Chains
}

// NewRegistries returns empty registries.
func NewRegistries() Registries {
	return Registries{
		Pages:        page.NewRegistry(),
		Events:       event.NewRegistry(),
		Data:         data.NewRegistry(),
		Interceptors: intercept.NewChains(),
	}
}

// Application installs pages, events, data components and interceptors.
type Application func(Registries) error

// Config defines startup inputs for the jweb service.
type Config struct {
	HTTPAddr string
	// HealthAddr enables the gRPC health endpoint when set.
	HealthAddr string
	// BindPages mounts registered pages; the framework endpoints are always
	// mounted.
	BindPages bool
	SiteRoot  string
	// Registries defaults to NewRegistries.
	Registries  *Registries
	Application Application
	// Scoper defaults to a new scoper.
	Scoper *scope.Scoper
}

// Server hosts the jweb HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	health     *platformgrpc.HealthServer
}

// NewHandler builds the root handler and runs the application registration.
func NewHandler(cfg Config) (http.Handler, error) {
	regs := NewRegistries()
	if cfg.Registries != nil {
		regs = *cfg.Registries
	}
	if cfg.Application != nil {
		if err := cfg.Application(regs); err != nil {
			return nil, fmt.Errorf("register application: %w", err)
		}
	}
	scoper := cfg.Scoper
	if scoper == nil {
		scoper = scope.NewScoper()
	}
	deps := module.Dependencies{
		Scoper:       scoper,
		Pages:        regs.Pages,
		Events:       regs.Events,
		Data:         regs.Data,
		Interceptors: regs.Interceptors,
		SiteRoot:     strings.TrimSpace(cfg.SiteRoot),
	}
	h, err := jwebapp.Composer{}.Compose(jwebapp.ComposeInput{
		Dependencies: deps,
		Modules:      modules.DefaultModules(cfg.BindPages),
	})
	if err != nil {
		return nil, err
	}
	return httpx.Chain(h,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(log.Default()),
	), nil
}

// NewServer validates config and constructs a jweb server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose jweb handler: %w", err)
	}
	srv := &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}
	if addr := strings.TrimSpace(cfg.HealthAddr); addr != "" {
		health, err := platformgrpc.ListenHealth(addr, HealthService)
		if err != nil {
			return nil, fmt.Errorf("listen health: %w", err)
		}
		srv.health = health
	}
	return srv, nil
}

// HealthAddr returns the bound health address, or "" when disabled.
func (s *Server) HealthAddr() string {
	if s == nil || s.health == nil {
		return ""
	}
	return s.health.Addr()
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("jweb server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen jweb http: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves HTTP traffic on listener until context cancellation.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s.health != nil {
		go func() {
			if err := s.health.Serve(); err != nil {
				log.Printf("health server stopped err=%v", err)
			}
		}()
		defer s.health.Stop()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()
	log.Printf("jweb listening addr=%s", listener.Addr())
	if s.health != nil {
		s.health.SetServing(true)
	}

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.SetServing(false)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown jweb http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve jweb http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
}

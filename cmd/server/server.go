package main

import (
	"net/http"
	"time"

	"github.com/JaimeStill/crypto-monitor/internal/config"
	"github.com/JaimeStill/crypto-monitor/internal/infrastructure"
	"github.com/JaimeStill/crypto-monitor/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	handler http.Handler
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	return newServer(cfg, infrastructure.New(cfg))
}

func newServer(cfg *config.Config, infra *infrastructure.Infrastructure) (*Server, error) {
	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, cfg.Version)
	modules.Mount(router)

	handler := buildMiddleware(infra, cfg).Apply(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"backend", infra.Client.BaseURL(),
		"modules", router.Mounted(),
		"version", cfg.Version,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		handler: handler,
		http:    server.New(&cfg.Server, handler, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns when they are listening.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

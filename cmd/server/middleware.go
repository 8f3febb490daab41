package main

import (
	"github.com/JaimeStill/crypto-monitor/internal/config"
	"github.com/JaimeStill/crypto-monitor/internal/infrastructure"
	"github.com/JaimeStill/crypto-monitor/pkg/middleware"
)

// buildMiddleware creates the server-wide stack. RequestID runs first so the
// logger and every backend call see the id.
func buildMiddleware(infra *infrastructure.Infrastructure, cfg *config.Config) middleware.System {
	sys := middleware.New()
	sys.Use(middleware.RequestID())
	sys.Use(middleware.Logger(infra.Logger))
	sys.Use(middleware.CORS(&cfg.CORS))
	return sys
}

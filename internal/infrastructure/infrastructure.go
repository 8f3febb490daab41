// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies every module needs: lifecycle coordination,
// logging, and the shared backend client with the market system built on it.
package infrastructure

import (
	"log/slog"

	"github.com/JaimeStill/crypto-monitor/internal/config"
	"github.com/JaimeStill/crypto-monitor/internal/market"
	"github.com/JaimeStill/crypto-monitor/pkg/apiclient"
	"github.com/JaimeStill/crypto-monitor/pkg/lifecycle"
	"github.com/JaimeStill/crypto-monitor/pkg/logging"
)

// Infrastructure holds the core systems required by all modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Client    *apiclient.Client
	Market    market.System
}

// New creates an Infrastructure from a finalized configuration. The backend
// client is created once here and shared by every consumer.
func New(cfg *config.Config) *Infrastructure {
	return NewWithLogger(cfg, logging.New(&cfg.Logging))
}

// NewWithLogger is New with an explicit logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) *Infrastructure {
	client := apiclient.New(&cfg.Backend, logger)

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Client:    client,
		Market:    market.New(client, logger),
	}
}

// Start registers infrastructure hooks with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	i.Lifecycle.OnStartup(func() {
		i.Logger.Info("backend client ready", "base_url", i.Client.BaseURL())
	})
	return nil
}

package main

import (
	"net/http"

	"github.com/JaimeStill/crypto-monitor/internal/config"
	"github.com/JaimeStill/crypto-monitor/internal/infrastructure"
	"github.com/JaimeStill/crypto-monitor/pkg/handlers"
	"github.com/JaimeStill/crypto-monitor/pkg/module"
	"github.com/JaimeStill/crypto-monitor/web/app"
)

// Modules holds the mounted application modules.
type Modules struct {
	App *module.Module
}

// NewModules builds every module from the shared infrastructure.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	appModule, err := app.NewModule(&cfg.App, infra.Market, infra.Logger)
	if err != nil {
		return nil, err
	}

	return &Modules{App: appModule}, nil
}

// Mount attaches the modules to router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.App)
}

func buildRouter(infra *infrastructure.Infrastructure, version string) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, handlers.Status{Status: "ok", Version: version})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, handlers.Status{Status: "not ready", Version: version})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, handlers.Status{Status: "ready", Version: version})
	})

	return router
}

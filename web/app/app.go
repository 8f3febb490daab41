// Package app provides the web application module: the route table, its
// views, and the embedded layout, views, and public files.
package app

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/crypto-monitor/internal/market"
	"github.com/JaimeStill/crypto-monitor/pkg/middleware"
	"github.com/JaimeStill/crypto-monitor/pkg/module"
	"github.com/JaimeStill/crypto-monitor/pkg/web"
	"github.com/JaimeStill/crypto-monitor/web/components"
)

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

const layout = "app.html"

var publicFiles = []string{
	"favicon.svg",
	"site.webmanifest",
}

// NewModule creates the root app module with the component plugin installed.
func NewModule(cfg *Config, system market.System, logger *slog.Logger) (*module.Module, error) {
	site := web.Site{
		Name:     cfg.Title,
		BasePath: module.Root,
		MountID:  cfg.MountID,
		Refresh:  cfg.RefreshDuration(),
		Nav:      navItems(),
	}

	views := make([]web.ViewDef, 0, len(routes)+1)
	for _, r := range routes {
		views = append(views, r.view())
	}
	views = append(views, notFound)

	plugin := components.Plugin()

	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		site,
		views,
		plugin,
	)
	if err != nil {
		return nil, err
	}

	logger = logger.With("module", "app")
	ts.OnError(func(r *http.Request, err error) int {
		status := market.HTTPStatus(err)
		logger.Error(
			"view load failed",
			"path", r.URL.Path,
			"status", status,
			"error", err,
			"request_id", middleware.RequestIDFrom(r.Context()),
		)
		return status
	})

	m := module.New(module.Root, buildRouter(ts, &loaders{market: system}, plugin))
	m.Use(middleware.TrimSlash())
	return m, nil
}

func buildRouter(ts *web.TemplateSet, l *loaders, plugin web.Plugin) http.Handler {
	r := web.NewRouter()
	r.SetFallback(ts.ErrorHandler(layout, notFound, http.StatusNotFound))

	for _, route := range routes {
		r.HandleFunc("GET "+route.Pattern(), ts.ViewHandler(layout, route.view(), l.forRoute(route.Name)))
	}

	if asset, ok := plugin.AssetRoute(); ok {
		r.HandleFunc(asset.Method+" "+asset.Pattern, asset.Handler)
	}

	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	return r
}

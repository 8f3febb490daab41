package app

import (
	"slices"

	"github.com/JaimeStill/crypto-monitor/pkg/web"
)

// Route maps a history-style path to the view it renders.
type Route struct {
	Path     string
	Name     string
	Template string
	Title    string
}

var routes = []Route{
	{Path: "/", Name: "market", Template: "market.html", Title: "Market"},
	{Path: "/ema-alerts", Name: "ema-alerts", Template: "ema-alerts.html", Title: "EMA Alerts"},
	{Path: "/change-alerts", Name: "change-alerts", Template: "change-alerts.html", Title: "Change Alerts"},
	{Path: "/open-interest", Name: "open-interest", Template: "open-interest.html", Title: "Open Interest"},
	{Path: "/price-change", Name: "price-change", Template: "price-change.html", Title: "Price Change"},
}

var notFound = web.ViewDef{Template: "404.html", Title: "Not Found", Bundle: "not-found"}

// Routes returns a copy of the route table in navigation order.
func Routes() []Route {
	return slices.Clone(routes)
}

// Pattern returns the ServeMux pattern that matches exactly the route path.
func (r Route) Pattern() string {
	if r.Path == "/" {
		return "/{$}"
	}
	return r.Path
}

func (r Route) view() web.ViewDef {
	return web.ViewDef{
		Route:    r.Pattern(),
		Template: r.Template,
		Title:    r.Title,
		Bundle:   r.Name,
	}
}

func navItems() []web.NavItem {
	items := make([]web.NavItem, len(routes))
	for i, r := range routes {
		items[i] = web.NavItem{Path: r.Path, Title: r.Title}
	}
	return items
}

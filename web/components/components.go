// Package components is the UI component library installed into the app's
// template set: formatting functions, shared partials, and the stylesheet
// they rely on.
package components

import (
	"embed"
	"io/fs"

	"github.com/JaimeStill/crypto-monitor/pkg/web"
)

// Name is the plugin name and the /dist/ subdirectory its assets live under.
const Name = "components"

//go:embed partials/*.html
var partialFS embed.FS

//go:embed dist/*
var distFS embed.FS

// Stylesheet is the URL of the component stylesheet.
const Stylesheet = "/dist/" + Name + "/components.css"

// Plugin returns the component library as a web.Plugin.
func Plugin() web.Plugin {
	assets, err := fs.Sub(distFS, "dist")
	if err != nil {
		panic(err)
	}

	return web.Plugin{
		Name:        Name,
		Funcs:       Funcs(),
		Partials:    partialFS,
		PartialGlob: "partials/*.html",
		Assets:      assets,
	}
}

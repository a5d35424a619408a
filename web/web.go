// Package web embeds the HTML templates and static assets served by the site.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

// Templates returns the page templates rooted at the templates directory.
func Templates() fs.FS {
	sub, _ := fs.Sub(templates, "templates")
	return sub
}

// Static returns the stylesheet and image assets rooted at the static directory.
func Static() fs.FS {
	sub, _ := fs.Sub(static, "static")
	return sub
}

// Package web ships the single-page map frontend embedded in the binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Handler serves the embedded page. The map surface itself (tiles, markers,
// popups) is Leaflet running in the browser; the server only owns the data.
func Handler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embed layout is fixed at build time
	}
	return http.FileServer(http.FS(sub))
}

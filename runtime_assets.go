package reactmount

import (
	"embed"
	"io/fs"
)

// RuntimeFile is the name of the browser runtime inside RuntimeAssetsFS.
const RuntimeFile = "reactmount.js"

//go:embed pkg/runtime/assets/*.js
var embeddedRuntimeAssets embed.FS

// RuntimeAssetsFS exposes the browser runtime that defines the component
// registry the fragments call into, so Go applications can serve it without a
// JS build step.
//
// Typical mount:
//
//	mux.Handle("/runtime/",
//	  http.StripPrefix("/runtime/",
//	    http.FileServerFS(reactmount.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "pkg/runtime/assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}

// Package web holds the server-rendered admin templates.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embedded embed.FS

// Templates returns the embedded template tree rooted at templates/.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

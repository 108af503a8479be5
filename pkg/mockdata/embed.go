package mockdata

import (
	"embed"
	"io/fs"
)

//go:embed data/*.yaml
var embeddedData embed.FS

// EmbeddedFS returns the bundled preset files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

package assets

import (
	"embed"
	"io/fs"
)

//go:embed manifest.yaml constants.json
var defaultFS embed.FS

// ManifestName is the manifest file name at the root of an asset filesystem.
const ManifestName = "manifest.yaml"

// FS exposes the embedded default asset filesystem.
func FS() fs.FS {
	return defaultFS
}

// Default opens the embedded manifest.
func Default() (*Directory, error) {
	return Open(defaultFS, ManifestName)
}

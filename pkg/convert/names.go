package convert

import (
	"path/filepath"
	"strings"
)

const (
	ShaderSuffix  = "_16x16.frag"
	PreviewSuffix = "_preview_256.png"
)

// BaseName returns the file name of path with only its final extension
// removed: "dir/foo.bar.png" becomes "foo.bar". A trailing dot is kept.
func BaseName(path string) string {
	name := filepath.Base(path)
	if i := strings.LastIndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		name = name[:i]
	}
	return name
}

// Names returns the shader and preview file names derived from path.
func Names(path string) (shader, preview string) {
	base := BaseName(path)
	return base + ShaderSuffix, base + PreviewSuffix
}

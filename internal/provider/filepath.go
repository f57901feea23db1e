package provider

import (
	"image"
	"path/filepath"

	"github.com/JPM1118/imgbind/internal/asset"
	"github.com/JPM1118/imgbind/internal/imageload"
)

// Filepath loads asset images from disk relative to Dir.
type Filepath struct {
	// Dir is the base directory, usually the animation document's directory.
	Dir string

	// Load overrides the decoder. Nil means imageload.Load.
	Load imageload.Func
}

// ImageForAsset decodes inline data URLs directly. Otherwise it tries
// Dir/<asset dir>/<name> and then Dir/<name>.
func (f *Filepath) ImageForAsset(a asset.Image) image.Image {
	if a.IsDataURL() {
		return imageload.DecodeDataURL(a.Name)
	}
	if a.Name == "" {
		return nil
	}
	load := f.Load
	if load == nil {
		load = imageload.Load
	}
	for _, path := range f.candidates(a) {
		if img := load(path); img != nil {
			return img
		}
	}
	return nil
}

func (f *Filepath) candidates(a asset.Image) []string {
	direct := filepath.Join(f.Dir, a.Name)
	if a.Directory == "" {
		return []string{direct}
	}
	nested := filepath.Join(f.Dir, a.Directory, a.Name)
	if nested == direct {
		return []string{direct}
	}
	return []string{nested, direct}
}

package provider

import (
	"image"

	"github.com/JPM1118/imgbind/internal/asset"
)

// ImageSource produces pixel data for an asset declaration.
// Filepath, Placeholder and Static implement this interface. Tests can
// provide mock implementations.
//
// A source returns nil when it has nothing for the asset; a missing asset is
// never an error.
type ImageSource interface {
	ImageForAsset(a asset.Image) image.Image
}

// Func adapts a plain function to ImageSource.
type Func func(a asset.Image) image.Image

// ImageForAsset calls the underlying function.
func (fn Func) ImageForAsset(a asset.Image) image.Image {
	if fn == nil {
		return nil
	}
	return fn(a)
}

// Static serves pre-decoded images keyed by asset id.
type Static map[string]image.Image

// ImageForAsset returns the image stored under the asset's id.
func (s Static) ImageForAsset(a asset.Image) image.Image {
	return s[a.ID]
}

var (
	_ ImageSource = Func(nil)
	_ ImageSource = Static(nil)
	_ ImageSource = (*Filepath)(nil)
	_ ImageSource = (*Placeholder)(nil)
)

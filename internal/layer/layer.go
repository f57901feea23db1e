package layer

import "image"

// ImageLayer is the image slot of a render-tree node. The render tree owns
// the layer; resolvers only assign into it.
type ImageLayer struct {
	name  string
	refID string
	img   image.Image
}

// New creates a layer that displays the asset with the given reference id.
func New(name, refID string) *ImageLayer {
	return &ImageLayer{name: name, refID: refID}
}

// Name returns the layer's display name from the document.
func (l *ImageLayer) Name() string {
	return l.name
}

// ReferenceID returns the id of the asset this layer wants to display.
func (l *ImageLayer) ReferenceID() string {
	return l.refID
}

// Image returns the currently assigned image, or nil if none was ever set.
func (l *ImageLayer) Image() image.Image {
	return l.img
}

// SetImage assigns the image the layer displays.
func (l *ImageLayer) SetImage(img image.Image) {
	l.img = img
}

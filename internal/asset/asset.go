package asset

import "strings"

// DataURLPrefix marks an asset whose Name carries the image bytes inline.
const DataURLPrefix = "data:"

// Image describes an external image referenced by an animation document.
//
// ID is the structural key layers bind to. Name is the human-authored file
// name that replacement tables are keyed by. The two are independent and may
// collide or diverge.
type Image struct {
	ID        string
	Name      string
	Directory string
	Width     int
	Height    int
	Embedded  bool
}

// IsDataURL reports whether the asset's image is inlined as a data URL.
func (a Image) IsDataURL() bool {
	return strings.HasPrefix(a.Name, DataURLPrefix)
}

// DisplayName returns a short label for the asset, hiding inline payloads.
func (a Image) DisplayName() string {
	if a.IsDataURL() {
		return "(embedded)"
	}
	return a.Name
}

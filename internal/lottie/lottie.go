package lottie

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/JPM1118/imgbind/internal/asset"
	"github.com/JPM1118/imgbind/internal/layer"
)

// Layer types that matter for image binding.
const (
	LayerTypePrecomp = 0
	LayerTypeImage   = 2
)

var ErrEmptyDocument = errors.New("lottie: empty document")

// Animation is the subset of a Lottie document needed to bind images.
type Animation struct {
	Version   string  `json:"v"`
	Name      string  `json:"nm"`
	Width     int     `json:"w"`
	Height    int     `json:"h"`
	FrameRate float64 `json:"fr"`
	Assets    []Asset `json:"assets"`
	Layers    []Layer `json:"layers"`
}

// Asset is either an image asset or a precomposition (when Layers is set).
type Asset struct {
	ID        string   `json:"id"`
	Name      string   `json:"p"`
	Directory string   `json:"u"`
	Width     int      `json:"w"`
	Height    int      `json:"h"`
	Embedded  flexBool `json:"e"`
	Layers    []Layer  `json:"layers"`
}

// IsPrecomp reports whether the asset holds nested layers instead of an image.
func (a Asset) IsPrecomp() bool {
	return a.Layers != nil
}

// Layer is a render-tree node in the document.
type Layer struct {
	Type  int    `json:"ty"`
	Name  string `json:"nm"`
	Index int    `json:"ind"`
	RefID string `json:"refId"`
}

// flexBool accepts both 0/1 and false/true; exporters disagree.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1", "true":
		*b = true
	case "0", "false", "null":
		*b = false
	default:
		return fmt.Errorf("invalid embedded flag %s", data)
	}
	return nil
}

// Parse decodes a Lottie JSON document.
func Parse(data []byte) (*Animation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var anim Animation
	if err := json.Unmarshal(data, &anim); err != nil {
		return nil, fmt.Errorf("parse lottie JSON: %w", err)
	}
	return &anim, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Animation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read animation: %w", err)
	}
	anim, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return anim, nil
}

// ImageAssets returns the image asset declarations keyed by id.
// Precompositions are skipped.
func (a *Animation) ImageAssets() map[string]asset.Image {
	out := make(map[string]asset.Image, len(a.Assets))
	for _, as := range a.Assets {
		if as.IsPrecomp() || as.ID == "" {
			continue
		}
		out[as.ID] = asset.Image{
			ID:        as.ID,
			Name:      as.Name,
			Directory: as.Directory,
			Width:     as.Width,
			Height:    as.Height,
			Embedded:  bool(as.Embedded),
		}
	}
	return out
}

// ImageLayers instantiates one image layer per image node reachable from the
// root, descending into precompositions. A precomposition used twice yields
// its image layers twice. Cyclic precomposition references are cut.
func (a *Animation) ImageLayers() []*layer.ImageLayer {
	precomps := make(map[string][]Layer)
	for _, as := range a.Assets {
		if as.IsPrecomp() {
			precomps[as.ID] = as.Layers
		}
	}

	var out []*layer.ImageLayer
	active := make(map[string]bool)
	var walk func(layers []Layer)
	walk = func(layers []Layer) {
		for _, l := range layers {
			switch l.Type {
			case LayerTypeImage:
				out = append(out, layer.New(l.Name, l.RefID))
			case LayerTypePrecomp:
				nested, ok := precomps[l.RefID]
				if !ok || active[l.RefID] {
					continue
				}
				active[l.RefID] = true
				walk(nested)
				delete(active, l.RefID)
			}
		}
	}
	walk(a.Layers)
	return out
}

package resolver

import (
	"os"
	"path/filepath"
	"weak"

	"github.com/JPM1118/imgbind/internal/asset"
	"github.com/JPM1118/imgbind/internal/imageload"
	"github.com/JPM1118/imgbind/internal/layer"
	"github.com/JPM1118/imgbind/internal/provider"
)

// DirFunc returns the local directory holding replacement images. It returns
// false when no such directory can be determined.
type DirFunc func() (string, bool)

// Resolver connects an image source to the image layers of a composition.
//
// Layers bind to asset declarations by id. Replacement images are looked up
// by asset name. A Resolver is not safe for concurrent use.
type Resolver struct {
	source       provider.ImageSource
	assets       map[string]asset.Image
	replacements map[string]string
	layers       []weak.Pointer[layer.ImageLayer]

	replacementDir DirFunc
	load           imageload.Func
	logger         Logger
}

// Option configures a Resolver at construction.
type Option func(*Resolver)

// WithAssets sets the asset declarations keyed by asset id. The map is copied.
func WithAssets(assets map[string]asset.Image) Option {
	return func(r *Resolver) {
		r.assets = copyAssets(assets)
	}
}

// WithReplacements sets the replacement table keyed by asset name. The map
// is copied.
func WithReplacements(table map[string]string) Option {
	return func(r *Resolver) {
		r.replacements = copyTable(table)
	}
}

// WithReplacementDir overrides where replacement files are looked up.
func WithReplacementDir(fn DirFunc) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.replacementDir = fn
		}
	}
}

// WithImageLoader overrides how replacement files are decoded.
func WithImageLoader(fn imageload.Func) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.load = fn
		}
	}
}

// WithLogger attaches a pass logger.
func WithLogger(logger Logger) Option {
	return func(r *Resolver) {
		if logger == nil {
			r.logger = noopLogger{}
			return
		}
		r.logger = logger
	}
}

// New creates a resolver for src and runs an initial resolution pass. The
// pass is a no-op until layers are registered.
func New(src provider.ImageSource, opts ...Option) *Resolver {
	r := &Resolver{
		source:         src,
		assets:         map[string]asset.Image{},
		replacements:   map[string]string{},
		replacementDir: DefaultReplacementDir,
		load:           imageload.Load,
		logger:         noopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.ResolveAll()
	return r
}

// RegisterLayers retains every candidate whose reference id has a declared
// asset. Candidates without one are dropped silently. The same layer
// registered twice is retained twice.
func (r *Resolver) RegisterLayers(candidates ...*layer.ImageLayer) {
	for _, l := range candidates {
		if l == nil {
			continue
		}
		if _, ok := r.assets[l.ReferenceID()]; ok {
			r.layers = append(r.layers, weak.Make(l))
		}
	}
}

// SetImageSource swaps the active image source and re-resolves every
// registered layer before returning.
func (r *Resolver) SetImageSource(src provider.ImageSource) {
	r.source = src
	r.ResolveAll()
}

// ImageSource returns the active image source.
func (r *Resolver) ImageSource() provider.ImageSource {
	return r.source
}

// SetReplacements replaces the whole replacement table. Unlike
// SetImageSource it does not re-resolve; call ResolveAll to apply it.
func (r *Resolver) SetReplacements(table map[string]string) {
	r.replacements = copyTable(table)
}

// Replacements returns a copy of the replacement table.
func (r *Resolver) Replacements() map[string]string {
	return copyTable(r.replacements)
}

// Assets returns a copy of the asset declarations.
func (r *Resolver) Assets() map[string]asset.Image {
	return copyAssets(r.assets)
}

// Layers returns the registered layers that are still alive, in
// registration order.
func (r *Resolver) Layers() []*layer.ImageLayer {
	out := make([]*layer.ImageLayer, 0, len(r.layers))
	for _, p := range r.layers {
		if l := p.Value(); l != nil {
			out = append(out, l)
		}
	}
	return out
}

// DefaultReplacementDir returns $XDG_DATA_HOME/imgbind/replacements, falling
// back to ~/.local/share.
func DefaultReplacementDir() (string, bool) {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return "", false
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "imgbind", "replacements"), true
}

// StaticDir returns a DirFunc that always yields dir. An empty dir means no
// replacement directory.
func StaticDir(dir string) DirFunc {
	return func() (string, bool) {
		return dir, dir != ""
	}
}

func copyAssets(src map[string]asset.Image) map[string]asset.Image {
	out := make(map[string]asset.Image, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func copyTable(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

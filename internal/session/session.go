package session

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/JPM1118/imgbind/internal/config"
	"github.com/JPM1118/imgbind/internal/layer"
	"github.com/JPM1118/imgbind/internal/lottie"
	"github.com/JPM1118/imgbind/internal/provider"
	"github.com/JPM1118/imgbind/internal/resolver"
)

// Options describes how to open a document for resolution.
type Options struct {
	DocPath string
	Config  config.Config

	// ReplacementDir overrides Config.Replacements.Dir when set.
	ReplacementDir string
	// Replace entries are merged over Config.Replacements.Images.
	Replace map[string]string

	Logger resolver.Logger
}

// Session owns a parsed document, its image layers and the resolver bound
// to them. The resolver only holds weak references, so the session keeps
// the layers alive.
type Session struct {
	Doc      *lottie.Animation
	Resolver *resolver.Resolver

	cfg     config.Config
	dir     resolver.DirFunc
	layers  []*layer.ImageLayer
	sources map[string]provider.ImageSource
	kind    string
}

// Open parses the document, builds the configured image source and
// registers every image layer. Layers are not resolved yet.
func Open(opts Options) (*Session, error) {
	doc, err := lottie.Load(opts.DocPath)
	if err != nil {
		return nil, err
	}

	sources, err := buildSources(opts)
	if err != nil {
		return nil, err
	}
	kind := opts.Config.Source.Kind
	src, ok := sources[kind]
	if !ok {
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}

	table := make(map[string]string, len(opts.Config.Replacements.Images)+len(opts.Replace))
	for name, file := range opts.Config.Replacements.Images {
		table[name] = file
	}
	for name, file := range opts.Replace {
		table[name] = file
	}

	dirFn := resolver.DirFunc(resolver.DefaultReplacementDir)
	if dir := replacementDir(opts); dir != "" {
		dirFn = resolver.StaticDir(dir)
	}

	s := &Session{
		Doc: doc,
		Resolver: resolver.New(src,
			resolver.WithAssets(doc.ImageAssets()),
			resolver.WithReplacements(table),
			resolver.WithReplacementDir(dirFn),
			resolver.WithLogger(opts.Logger),
		),
		cfg:     opts.Config,
		dir:     dirFn,
		layers:  doc.ImageLayers(),
		sources: sources,
		kind:    kind,
	}
	s.Resolver.RegisterLayers(s.layers...)
	return s, nil
}

// Layers returns every image layer found in the document, including those
// the resolver dropped for lack of a declaration.
func (s *Session) Layers() []*layer.ImageLayer {
	return s.layers
}

// Config returns the configuration the session was opened with.
func (s *Session) Config() config.Config {
	return s.cfg
}

// ReplacementFiles returns the full paths of every file in the replacement
// table, sorted. It is empty when no replacement directory is available.
func (s *Session) ReplacementFiles() []string {
	dir, ok := s.dir()
	if !ok {
		return nil
	}
	table := s.Resolver.Replacements()
	paths := make([]string, 0, len(table))
	for _, file := range table {
		paths = append(paths, filepath.Join(dir, file))
	}
	sort.Strings(paths)
	return paths
}

// SourceKind returns the active source kind.
func (s *Session) SourceKind() string {
	return s.kind
}

// UseSource switches the resolver to the named source, re-resolving every
// layer.
func (s *Session) UseSource(kind string) error {
	src, ok := s.sources[kind]
	if !ok {
		return fmt.Errorf("unknown source kind %q", kind)
	}
	s.kind = kind
	s.Resolver.SetImageSource(src)
	return nil
}

// ToggleSource flips between the filepath and placeholder sources and
// returns the new kind.
func (s *Session) ToggleSource() string {
	next := config.SourcePlaceholder
	if s.kind == config.SourcePlaceholder {
		next = config.SourceFilepath
	}
	// Both kinds are always built, so this cannot fail.
	_ = s.UseSource(next)
	return s.kind
}

func buildSources(opts Options) (map[string]provider.ImageSource, error) {
	color, err := provider.ParseHexColor(opts.Config.Placeholder.Color)
	if err != nil {
		return nil, fmt.Errorf("placeholder color: %w", err)
	}
	dir := opts.Config.Source.Dir
	if dir == "" {
		dir = filepath.Dir(opts.DocPath)
	}
	return map[string]provider.ImageSource{
		config.SourceFilepath:    &provider.Filepath{Dir: dir},
		config.SourcePlaceholder: &provider.Placeholder{Color: color},
	}, nil
}

func replacementDir(opts Options) string {
	if opts.ReplacementDir != "" {
		return opts.ReplacementDir
	}
	return opts.Config.Replacements.Dir
}

package resolver

import (
	"image"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/JPM1118/imgbind/internal/layer"
)

// Outcome tags which path produced (or failed to produce) a layer's image.
type Outcome int

const (
	// OutcomeUndeclared means the layer's asset id has no declaration.
	OutcomeUndeclared Outcome = iota
	// OutcomeReplacement means a replacement file was loaded.
	OutcomeReplacement
	// OutcomeSource means the image source supplied the image.
	OutcomeSource
	// OutcomeMiss means neither path produced an image.
	OutcomeMiss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUndeclared:
		return "undeclared"
	case OutcomeReplacement:
		return "replacement"
	case OutcomeSource:
		return "source"
	case OutcomeMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Resolution explains how one registered layer resolves.
type Resolution struct {
	LayerName string
	AssetID   string
	AssetName string
	Outcome   Outcome

	// ReplacementPath is the file that was tried when the asset name has a
	// replacement entry and a replacement directory was found.
	ReplacementPath string
	// ReplacementFailed is set when a replacement entry existed but did not
	// produce an image, so the source was consulted instead.
	ReplacementFailed bool

	Image image.Image
}

// ResolveAll assigns an image to every registered layer, in registration
// order. Replacement files take precedence over the image source. A layer
// for which neither yields an image keeps whatever it showed before.
//
// It returns how each live layer resolved in this pass.
func (r *Resolver) ResolveAll() []Resolution {
	p := r.newPass(PassResolve)
	out := make([]Resolution, 0, len(r.layers))
	for _, wp := range r.layers {
		l := wp.Value()
		if l == nil {
			p.event.Collected++
			continue
		}
		res := p.resolve(l)
		if res.Image != nil {
			l.SetImage(res.Image)
		}
		out = append(out, res)
	}
	p.finish()
	return out
}

// Snapshot resolves every registered layer's asset without touching any
// layer and returns the images keyed by asset id. When several layers share
// an asset id the later layer's result wins. Assets that resolve to nothing
// are omitted.
func (r *Resolver) Snapshot() map[string]image.Image {
	p := r.newPass(PassSnapshot)
	out := make(map[string]image.Image, len(r.layers))
	for _, wp := range r.layers {
		l := wp.Value()
		if l == nil {
			p.event.Collected++
			continue
		}
		res := p.resolve(l)
		if res.Image != nil {
			out[res.AssetID] = res.Image
		}
	}
	p.finish()
	return out
}

// Inspect reports how each registered layer would resolve right now, in
// registration order, without touching any layer.
func (r *Resolver) Inspect() []Resolution {
	p := r.newPass(PassInspect)
	out := make([]Resolution, 0, len(r.layers))
	for _, wp := range r.layers {
		l := wp.Value()
		if l == nil {
			p.event.Collected++
			continue
		}
		out = append(out, p.resolve(l))
	}
	p.finish()
	return out
}

// pass carries per-call state. The replacement directory is looked up at
// most once per pass.
type pass struct {
	r     *Resolver
	event PassEvent
	start time.Time

	dir         string
	dirOK       bool
	dirResolved bool
}

func (r *Resolver) newPass(kind PassKind) *pass {
	return &pass{
		r:     r,
		start: time.Now(),
		event: PassEvent{ID: uuid.NewString(), Kind: kind},
	}
}

func (p *pass) finish() {
	p.event.Duration = time.Since(p.start)
	p.r.logger.LogPass(p.event)
}

func (p *pass) replacementDir() (string, bool) {
	if !p.dirResolved {
		p.dir, p.dirOK = p.r.replacementDir()
		p.dirResolved = true
	}
	return p.dir, p.dirOK
}

func (p *pass) resolve(l *layer.ImageLayer) Resolution {
	p.event.Layers++
	res := Resolution{LayerName: l.Name(), AssetID: l.ReferenceID()}

	decl, ok := p.r.assets[res.AssetID]
	if !ok {
		p.event.Undeclared++
		res.Outcome = OutcomeUndeclared
		return res
	}
	res.AssetName = decl.Name

	if file, ok := p.r.replacements[decl.Name]; ok {
		if dir, ok := p.replacementDir(); ok {
			res.ReplacementPath = filepath.Join(dir, file)
			if img := p.r.load(res.ReplacementPath); img != nil {
				p.event.Replaced++
				res.Outcome = OutcomeReplacement
				res.Image = img
				return res
			}
		}
		res.ReplacementFailed = true
	}

	if p.r.source != nil {
		if img := p.r.source.ImageForAsset(decl); img != nil {
			p.event.Sourced++
			res.Outcome = OutcomeSource
			res.Image = img
			return res
		}
	}

	p.event.Missed++
	res.Outcome = OutcomeMiss
	return res
}

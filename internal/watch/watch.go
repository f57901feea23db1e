// Package watch detects changes to replacement image files so that callers
// can re-resolve layers when a file is edited, added or removed.
package watch

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"time"
)

// DefaultInterval is the check interval used when none is configured.
const DefaultInterval = 2 * time.Second

// Watcher polls a set of files by stat. It starts no goroutines; callers
// drive it by calling Check, typically from a timer in their own loop.
// A Watcher is not safe for concurrent use.
type Watcher struct {
	files    func() []string
	stat     func(string) (fs.FileInfo, error)
	interval time.Duration
	states   map[string]*FileState
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the check interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithStat overrides how files are stat'ed.
func WithStat(fn func(string) (fs.FileInfo, error)) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.stat = fn
		}
	}
}

// New creates a watcher over the paths returned by files. The path set is
// re-read on every check.
func New(files func() []string, opts ...Option) *Watcher {
	w := &Watcher{
		files:    files,
		stat:     os.Stat,
		interval: DefaultInterval,
		states:   make(map[string]*FileState),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Interval returns the check interval.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Check stats every watched file that is not backing off and returns the
// paths that changed since they were last seen, sorted. Files dropped from
// the path set are forgotten.
func (w *Watcher) Check(now time.Time) []string {
	var paths []string
	if w.files != nil {
		paths = w.files()
	}

	live := make(map[string]bool, len(paths))
	var changed []string
	for _, path := range paths {
		if live[path] {
			continue
		}
		live[path] = true

		state, ok := w.states[path]
		if !ok {
			state = &FileState{Path: path}
			w.states[path] = state
		}
		if !state.ShouldCheck(now) {
			continue
		}

		fp, err := w.fingerprint(path)
		if err != nil {
			state.RecordFailure(w.interval, now)
			continue
		}
		if state.RecordSuccess(fp, now) {
			changed = append(changed, path)
		}
	}

	for path := range w.states {
		if !live[path] {
			delete(w.states, path)
		}
	}

	sort.Strings(changed)
	return changed
}

// States returns a copy of the tracked file states keyed by path.
func (w *Watcher) States() map[string]FileState {
	out := make(map[string]FileState, len(w.states))
	for k, v := range w.states {
		out[k] = *v
	}
	return out
}

func (w *Watcher) fingerprint(path string) (Fingerprint, error) {
	info, err := w.stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Fingerprint{}, nil
	}
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{Exists: true, Size: info.Size(), ModTime: info.ModTime()}, nil
}

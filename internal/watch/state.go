package watch

import (
	"time"
)

// MaxBackoff is the maximum interval between checks of a file whose stat
// keeps failing.
const MaxBackoff = 1 * time.Minute

// Fingerprint identifies one observed version of a file.
type Fingerprint struct {
	Exists  bool
	Size    int64
	ModTime time.Time
}

// FileState tracks the observed state of a single replacement file.
type FileState struct {
	Path         string
	Current      Fingerprint
	Previous     Fingerprint
	Observed     bool
	LastCheck    time.Time
	ConsecFails  int
	BackoffUntil time.Time
}

// ShouldCheck returns true if this file is ready to be checked.
func (s *FileState) ShouldCheck(now time.Time) bool {
	return !now.Before(s.BackoffUntil)
}

// RecordSuccess records a successful stat. Returns true if the file changed
// since the previous observation. The first observation is never a change.
func (s *FileState) RecordSuccess(fp Fingerprint, now time.Time) bool {
	first := !s.Observed
	s.Previous = s.Current
	s.Current = fp
	s.Observed = true
	s.LastCheck = now
	s.ConsecFails = 0
	s.BackoffUntil = time.Time{}
	return !first && s.IsTransition()
}

// RecordFailure records a failed stat and calculates backoff.
func (s *FileState) RecordFailure(baseInterval time.Duration, now time.Time) {
	s.ConsecFails++
	s.LastCheck = now

	// base * 2^(fails-1), capped at MaxBackoff
	backoff := baseInterval
	for i := 1; i < s.ConsecFails; i++ {
		backoff *= 2
		if backoff > MaxBackoff {
			backoff = MaxBackoff
			break
		}
	}
	s.BackoffUntil = now.Add(backoff)
}

// IsTransition returns true if the current fingerprint differs from the
// previous one.
func (s *FileState) IsTransition() bool {
	return s.Current.Exists != s.Previous.Exists ||
		s.Current.Size != s.Previous.Size ||
		!s.Current.ModTime.Equal(s.Previous.ModTime)
}

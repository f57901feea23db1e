package resolver

import "time"

// PassKind names the operation that produced a PassEvent.
type PassKind string

const (
	PassResolve  PassKind = "resolve"
	PassSnapshot PassKind = "snapshot"
	PassInspect  PassKind = "inspect"
)

// PassEvent summarises one walk over the registered layers.
type PassEvent struct {
	ID   string
	Kind PassKind

	// Layers counts live layers processed.
	Layers     int
	Replaced   int
	Sourced    int
	Missed     int
	Undeclared int
	// Collected counts registrations whose layer was garbage collected.
	Collected int

	Duration time.Duration
}

// Logger records resolution passes.
type Logger interface {
	LogPass(PassEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(PassEvent)

// LogPass implements Logger.
func (f LoggerFunc) LogPass(event PassEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogPass(PassEvent) {}

// Package runstate holds the two flags shared between the input listener and
// the mover loop.
package runstate

import "sync/atomic"

// State is the run state of the mover. The zero value is stopped and not
// cancelled.
type State struct {
	running   atomic.Bool
	cancelled atomic.Bool
}

// New returns a stopped, not cancelled State.
func New() *State {
	return &State{}
}

// Running reports whether cursor movement is enabled.
func (s *State) Running() bool {
	return s.running.Load()
}

// Cancelled reports whether shutdown has been requested.
func (s *State) Cancelled() bool {
	return s.cancelled.Load()
}

// ToggleRunning flips the running flag and returns the new value.
func (s *State) ToggleRunning() bool {
	return toggle(&s.running)
}

// ToggleCancelled flips the cancelled flag and returns the new value.
func (s *State) ToggleCancelled() bool {
	return toggle(&s.cancelled)
}

func toggle(b *atomic.Bool) bool {
	for {
		old := b.Load()
		if b.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

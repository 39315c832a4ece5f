// Package listener turns global key and mouse events into run-state toggles
// and console lines.
package listener

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/metrics"
)

// Kind is the kind of an input event.
type Kind uint8

const (
	KeyDown Kind = iota + 1
	KeyUp
	KeyTyped
	MouseMove
	MouseButton
)

// KeyEvent is a low-level keyboard event. Name is the key name as resolved
// by the hook source, e.g. "pause" or "esc".
type KeyEvent struct {
	Kind     Kind
	Name     string
	Injected bool
}

// MouseEvent is a low-level mouse event.
type MouseEvent struct {
	Kind     Kind
	X, Y     int
	Injected bool
}

// State is the part of the run state the listener mutates.
type State interface {
	ToggleRunning() bool
	ToggleCancelled() bool
}

// Locator reports the current absolute cursor position.
type Locator interface {
	Location() (x, y int)
}

// Config selects the hotkeys and the injected-event policy for each stream.
type Config struct {
	ToggleKey string
	ExitKey   string

	FilterInjectedKeys  bool
	FilterInjectedMouse bool
}

// Listener handles input events delivered by a hook source. Handlers run on
// the hook goroutine and must return quickly; they never block and never
// consume an event.
type Listener struct {
	cfg     Config
	state   State
	locator Locator
	out     io.Writer
	lg      *slog.Logger
}

// New creates a Listener that writes status lines to out.
func New(cfg Config, state State, locator Locator, out io.Writer, lg *slog.Logger) *Listener {
	return &Listener{
		cfg:     cfg,
		state:   state,
		locator: locator,
		out:     out,
		lg:      lg,
	}
}

// HandleKey reacts to the toggle and exit keys. Every other key is ignored.
func (l *Listener) HandleKey(ev KeyEvent) {
	if ev.Kind != KeyDown {
		return
	}
	if ev.Injected && l.cfg.FilterInjectedKeys {
		return
	}

	switch ev.Name {
	case l.cfg.ToggleKey:
		on := l.state.ToggleRunning()
		metrics.ObserveToggle("toggle")
		metrics.SetRunning(on)
		if on {
			fmt.Fprintln(l.out, "Running.")
		} else {
			fmt.Fprintln(l.out, "Stopped running.")
		}
		l.lg.Debug("toggled running", "key", ev.Name, "running", on)
	case l.cfg.ExitKey:
		cancelled := l.state.ToggleCancelled()
		metrics.ObserveToggle("exit")
		fmt.Fprintln(l.out, "Cancelled.")
		l.lg.Debug("toggled cancelled", "key", ev.Name, "cancelled", cancelled)
	}
}

// HandleMouse logs the cursor position for every real mouse move.
func (l *Listener) HandleMouse(ev MouseEvent) {
	if ev.Kind != MouseMove {
		return
	}
	if ev.Injected && l.cfg.FilterInjectedMouse {
		return
	}

	// The event carries coordinates too, but the console reports where the
	// cursor actually is.
	x, y := l.locator.Location()
	fmt.Fprintf(l.out, "Move mouse to %d, %d\n", x, y)
}

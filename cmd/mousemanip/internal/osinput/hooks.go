package osinput

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	hook "github.com/robotn/gohook"

	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/listener"
)

var (
	// ErrHookStart means the global hook could not be installed.
	ErrHookStart = errors.New("can't start global input hook")
	// ErrUnknownKey means a configured key name has no keycode.
	ErrUnknownKey = errors.New("unknown key name")
	// ErrDuplicateKey means two configured key names are the same key.
	ErrDuplicateKey = errors.New("key names resolve to the same key")
)

// DefaultStartTimeout bounds the wait for the hook to report it is enabled.
const DefaultStartTimeout = 5 * time.Second

// keyAliases covers keys missing from the gohook name table. Values are
// libuiohook virtual codes.
var keyAliases = map[string]uint16{
	"pause":  0x0E45,
	"esc":    0x0001,
	"escape": 0x0001,
}

// KeySink receives keyboard events.
type KeySink interface {
	HandleKey(listener.KeyEvent)
}

// MouseSink receives mouse events.
type MouseSink interface {
	HandleMouse(listener.MouseEvent)
}

// InjectedDetector recognises cursor positions produced by this process.
type InjectedDetector interface {
	Commanded(x, y int) bool
}

// Hooks is a global keyboard and mouse event source. It only observes: gohook
// never swallows events, so every event reaches the rest of the system.
type Hooks struct {
	names    map[uint16]string
	raw      map[uint16]string
	detector InjectedDetector
	lg       *slog.Logger

	// start and end are hook.Start and hook.End outside tests.
	start        func() chan hook.Event
	end          func()
	startTimeout time.Duration
}

// NewHooks resolves the key names the listener cares about. Names are either
// gohook key names ("f1", "esc") or "raw:<code>" for a platform raw code.
func NewHooks(keys []string, detector InjectedDetector, lg *slog.Logger) (*Hooks, error) {
	h := &Hooks{
		names:    make(map[uint16]string),
		raw:      make(map[uint16]string),
		detector: detector,
		lg:       lg,

		start:        hook.Start,
		end:          hook.End,
		startTimeout: DefaultStartTimeout,
	}

	for _, name := range keys {
		table := h.names
		code, ok := parseRaw(name)
		if ok {
			table = h.raw
		} else if code, ok = lookupKeycode(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, name)
		}

		if prev, dup := table[code]; dup {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateKey, prev, name)
		}
		table[code] = name
	}

	return h, nil
}

// Run starts the hook and delivers events until ctx ends. Sinks are called on
// the hook goroutine. If the hook does not report itself enabled within the
// start timeout, Run returns ErrHookStart.
func (h *Hooks) Run(ctx context.Context, keys KeySink, mouse MouseSink) error {
	events := h.start()
	defer h.end()

	if err := h.awaitEnabled(ctx, events, keys, mouse); err != nil {
		return err
	}

	h.lg.Info("input hook started")
	defer h.lg.Info("input hook stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: event stream closed", ErrHookStart)
			}
			h.dispatch(ev, keys, mouse)
		}
	}
}

// awaitEnabled waits for the HookEnabled event. Input that arrives first is
// still delivered.
func (h *Hooks) awaitEnabled(ctx context.Context, events <-chan hook.Event, keys KeySink, mouse MouseSink) error {
	timeout := time.NewTimer(h.startTimeout)
	defer timeout.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout.C:
			return fmt.Errorf("%w: not enabled after %s", ErrHookStart, h.startTimeout)
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: event stream closed", ErrHookStart)
			}
			if ev.Kind == hook.HookEnabled {
				return nil
			}
			h.dispatch(ev, keys, mouse)
		}
	}
}

func (h *Hooks) dispatch(ev hook.Event, keys KeySink, mouse MouseSink) {
	if kev, ok := h.keyEvent(ev); ok {
		keys.HandleKey(kev)
		return
	}
	if mev, ok := h.mouseEvent(ev); ok {
		mouse.HandleMouse(mev)
	}
}

// keyEvent translates a gohook keyboard event. gohook reports a physical
// press as KeyHold; its KeyDown is the typed character.
func (h *Hooks) keyEvent(ev hook.Event) (listener.KeyEvent, bool) {
	var kind listener.Kind
	switch ev.Kind {
	case hook.KeyHold:
		kind = listener.KeyDown
	case hook.KeyDown:
		kind = listener.KeyTyped
	case hook.KeyUp:
		kind = listener.KeyUp
	default:
		return listener.KeyEvent{}, false
	}

	return listener.KeyEvent{Kind: kind, Name: h.keyName(ev)}, true
}

func (h *Hooks) mouseEvent(ev hook.Event) (listener.MouseEvent, bool) {
	var kind listener.Kind
	switch ev.Kind {
	case hook.MouseMove, hook.MouseDrag:
		kind = listener.MouseMove
	case hook.MouseDown, hook.MouseUp, hook.MouseHold, hook.MouseWheel:
		kind = listener.MouseButton
	default:
		return listener.MouseEvent{}, false
	}

	x, y := int(ev.X), int(ev.Y)
	mev := listener.MouseEvent{Kind: kind, X: x, Y: y}
	if kind == listener.MouseMove && h.detector != nil {
		mev.Injected = h.detector.Commanded(x, y)
	}
	return mev, true
}

func (h *Hooks) keyName(ev hook.Event) string {
	if name, ok := h.raw[ev.Rawcode]; ok {
		return name
	}
	if name, ok := h.names[ev.Keycode]; ok {
		return name
	}
	return "raw:" + strconv.Itoa(int(ev.Rawcode))
}

func lookupKeycode(name string) (uint16, bool) {
	name = strings.ToLower(name)
	if code, ok := keyAliases[name]; ok {
		return code, true
	}
	code, ok := hook.Keycode[name]
	return code, ok
}

func parseRaw(name string) (uint16, bool) {
	rest, ok := strings.CutPrefix(name, "raw:")
	if !ok {
		return 0, false
	}
	code, err := strconv.ParseUint(rest, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(code), true
}

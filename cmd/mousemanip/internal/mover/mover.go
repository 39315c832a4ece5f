// Package mover walks the cursor around a square while movement is enabled.
package mover

import (
	"context"
	"log/slog"
	"time"

	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/metrics"
)

const (
	DefaultScale        = 30
	DefaultLegSteps     = 10000
	DefaultIdleInterval = 250 * time.Millisecond
)

// Flags is the part of the run state the loop reads.
type Flags interface {
	Running() bool
	Cancelled() bool
}

// Cursor positions the cursor in absolute scaled coordinates.
type Cursor interface {
	Move(x, y int) error
}

// Screen reports the primary display size in pixels.
type Screen interface {
	Size() (width, height int)
}

// Config tunes the square and the idle wait. Zero fields take the defaults.
type Config struct {
	Scale        int
	LegSteps     int
	IdleInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Scale <= 0 {
		c.Scale = DefaultScale
	}
	if c.LegSteps <= 0 {
		c.LegSteps = DefaultLegSteps
	}
	if c.IdleInterval <= 0 {
		c.IdleInterval = DefaultIdleInterval
	}
	return c
}

// TraversalStats describes one pass around the square.
type TraversalStats struct {
	Start   ScreenExtents
	Steps   int
	Aborted bool

	// EndX, EndY is the last position the cursor was sent to.
	EndX, EndY int
}

// Legs, in order: right, up, left, down.
var legs = [4]struct{ dx, dy int }{
	{1, 0},
	{0, -1},
	{-1, 0},
	{0, 1},
}

// Loop is the background mover.
type Loop struct {
	cfg    Config
	flags  Flags
	cursor Cursor
	screen Screen
	clock  Clock
	lg     *slog.Logger
}

// New creates a Loop using the wall clock.
func New(cfg Config, flags Flags, cursor Cursor, screen Screen, lg *slog.Logger) *Loop {
	return &Loop{
		cfg:    cfg.withDefaults(),
		flags:  flags,
		cursor: cursor,
		screen: screen,
		clock:  realClock{},
		lg:     lg,
	}
}

// WithClock replaces the clock used for the idle wait.
func (l *Loop) WithClock(c Clock) *Loop {
	l.clock = c
	return l
}

// Run loops until the cancelled flag is seen or ctx ends. Cancellation is
// only checked between traversals, so a square in progress finishes unless
// running is also switched off. It returns nil when cancelled and ctx.Err()
// when the context ends first.
func (l *Loop) Run(ctx context.Context) error {
	l.lg.Info("mover loop started", "scale", l.cfg.Scale, "legSteps", l.cfg.LegSteps, "idle", l.cfg.IdleInterval)
	defer l.lg.Info("mover loop stopped")

	for !l.flags.Cancelled() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !l.flags.Running() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.clock.After(l.cfg.IdleInterval):
			}
			continue
		}

		stats := l.Traverse(ctx)
		metrics.ObserveTraversal(stats.Aborted)
		l.lg.Debug("traversal finished",
			"refX", stats.Start.RefX,
			"refY", stats.Start.RefY,
			"steps", stats.Steps,
			"aborted", stats.Aborted)
	}

	return nil
}

// Traverse makes one pass around the square, starting from a freshly
// computed reference point. It stops after the first step that finds
// running cleared.
func (l *Loop) Traverse(ctx context.Context) TraversalStats {
	w, h := l.screen.Size()
	ext := Extents(w, h, l.cfg.Scale)

	stats := TraversalStats{Start: ext}
	x, y := ext.RefX, ext.RefY
	l.move(x, y)

square:
	for _, leg := range legs {
		for i := 0; i < l.cfg.LegSteps; i++ {
			x += leg.dx
			y += leg.dy
			l.move(x, y)
			stats.Steps++

			if !l.flags.Running() || ctx.Err() != nil {
				stats.Aborted = true
				break square
			}
		}
	}

	stats.EndX, stats.EndY = x, y
	metrics.AddSteps(stats.Steps)
	return stats
}

// move counts and logs a failed step and carries on.
func (l *Loop) move(x, y int) {
	if err := l.cursor.Move(x, y); err != nil {
		metrics.MoveError()
		l.lg.Debug("cursor move failed", "x", x, "y", y, "err", err)
	}
}

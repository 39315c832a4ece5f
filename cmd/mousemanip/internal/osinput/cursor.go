// Package osinput binds the mover and the listener to the real desktop:
// robotgo for cursor and screen access, gohook for global input events.
package osinput

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-vgo/robotgo"

	_ "github.com/go-vgo/robotgo/base"  // Blank import for robotgo C sources
	_ "github.com/go-vgo/robotgo/mouse" // Blank import for robotgo C sources
)

// ErrOffScreen is returned by Cursor.Move for coordinates left of or above
// the primary display. The cursor is still moved, clamped to the edge.
var ErrOffScreen = errors.New("cursor position off screen")

// recentPixels is how many distinct commanded pixels Commanded remembers.
// At the default scale one side of the square covers about 333 pixels.
const recentPixels = 1024

type pixel struct{ x, y int }

// Cursor moves the system cursor. Coordinates passed to Move are scaled
// units and are divided by the scale before reaching robotgo.
type Cursor struct {
	scale int

	mu     sync.Mutex
	recent [recentPixels]pixel
	next   int
	filled int
	seen   map[pixel]int
}

// NewCursor returns a Cursor for the given scale; values below 1 mean 1.
func NewCursor(scale int) *Cursor {
	if scale < 1 {
		scale = 1
	}
	return &Cursor{scale: scale, seen: make(map[pixel]int, recentPixels)}
}

// Move sets the absolute cursor position.
func (c *Cursor) Move(x, y int) error {
	px, py := toPixel(x, c.scale), toPixel(y, c.scale)

	var err error
	if px < 0 || py < 0 {
		err = fmt.Errorf("%w: (%d, %d)", ErrOffScreen, px, py)
		px, py = max(px, 0), max(py, 0)
	}

	c.remember(pixel{px, py})

	robotgo.Move(px, py)
	return err
}

// Location returns the current cursor position in pixels.
func (c *Cursor) Location() (int, int) {
	return robotgo.Location()
}

// Commanded reports whether (x, y) is one of the recent pixels Move sent the
// cursor to. The hook source uses it to recognise its own moves, which it
// sees some time after they were made.
func (c *Cursor) Commanded(x, y int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen[pixel{x, y}] > 0
}

// remember records p in the ring. Repeats of the newest pixel are skipped,
// since many scaled steps land on the same pixel.
func (c *Cursor) remember(p pixel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filled > 0 && c.recent[(c.next+recentPixels-1)%recentPixels] == p {
		return
	}
	if c.filled == recentPixels {
		old := c.recent[c.next]
		if c.seen[old]--; c.seen[old] <= 0 {
			delete(c.seen, old)
		}
	} else {
		c.filled++
	}
	c.recent[c.next] = p
	c.seen[p]++
	c.next = (c.next + 1) % recentPixels
}

func toPixel(v, scale int) int {
	return v / scale
}

// Screen reports the primary display size.
type Screen struct{}

func (Screen) Size() (int, int) {
	return robotgo.GetScreenSize()
}

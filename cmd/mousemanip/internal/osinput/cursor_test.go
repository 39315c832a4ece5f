package osinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPixel(t *testing.T) {
	assert.Equal(t, 480, toPixel(14400, 30))
	assert.Equal(t, 480, toPixel(14429, 30))
	assert.Equal(t, 481, toPixel(14430, 30))
	assert.Equal(t, 14400, toPixel(14400, 1))
}

func TestNewCursorClampsScale(t *testing.T) {
	assert.Equal(t, 1, NewCursor(0).scale)
	assert.Equal(t, 1, NewCursor(-3).scale)
	assert.Equal(t, 30, NewCursor(30).scale)
}

func TestCommanded(t *testing.T) {
	c := NewCursor(30)
	assert.False(t, c.Commanded(0, 0), "nothing commanded yet")

	c.remember(pixel{480, 270})
	assert.True(t, c.Commanded(480, 270))
	assert.False(t, c.Commanded(481, 270))
}

func TestCommandedRemembersRecentPixels(t *testing.T) {
	c := NewCursor(1)

	// The hook reports moves late, after the mover has gone further.
	for x := 0; x < 300; x++ {
		c.remember(pixel{x, 5})
	}
	assert.True(t, c.Commanded(0, 5))
	assert.True(t, c.Commanded(150, 5))
	assert.True(t, c.Commanded(299, 5))
	assert.False(t, c.Commanded(300, 5))
}

func TestCommandedSkipsRepeats(t *testing.T) {
	c := NewCursor(30)
	for i := 0; i < 3*recentPixels; i++ {
		c.remember(pixel{7, 7})
	}
	assert.Equal(t, 1, c.filled)
	assert.True(t, c.Commanded(7, 7))
}

func TestCommandedForgetsOldPixels(t *testing.T) {
	c := NewCursor(1)
	for x := 0; x < recentPixels+10; x++ {
		c.remember(pixel{x, 0})
	}

	assert.False(t, c.Commanded(0, 0))
	assert.False(t, c.Commanded(9, 0))
	assert.True(t, c.Commanded(10, 0))
	assert.True(t, c.Commanded(recentPixels+9, 0))
	assert.Len(t, c.seen, recentPixels)
}

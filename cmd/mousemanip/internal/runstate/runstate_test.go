package runstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroState(t *testing.T) {
	s := New()
	assert.False(t, s.Running())
	assert.False(t, s.Cancelled())
}

func TestToggleParity(t *testing.T) {
	for n := 0; n <= 7; n++ {
		s := New()
		for i := 0; i < n; i++ {
			s.ToggleRunning()
		}
		assert.Equal(t, n%2 == 1, s.Running(), "after %d toggles", n)
		assert.False(t, s.Cancelled(), "running toggles must not touch cancelled")
	}
}

func TestExitParity(t *testing.T) {
	for m := 0; m <= 7; m++ {
		s := New()
		for i := 0; i < m; i++ {
			s.ToggleCancelled()
		}
		assert.Equal(t, m%2 == 1, s.Cancelled(), "after %d exit toggles", m)
		assert.False(t, s.Running(), "exit toggles must not touch running")
	}
}

func TestToggleReturnsNewValue(t *testing.T) {
	s := New()
	assert.True(t, s.ToggleRunning())
	assert.False(t, s.ToggleRunning())
	assert.True(t, s.ToggleCancelled())
	assert.False(t, s.ToggleCancelled())
}

func TestConcurrentToggles(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ToggleRunning()
			_ = s.Running()
		}()
	}
	wg.Wait()

	// An even number of flips lands back on stopped.
	assert.False(t, s.Running())
}

package mover

import "time"

// Clock provides the idle wait. Tests swap it for one that fires at once.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

package game

import "time"

// Scheduler fires a callback after a delay. Fire time is best effort; timers
// are never cancelled, so every callback re-validates the match it targets.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// wallScheduler is the production scheduler backed by time.AfterFunc.
type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// NewWallScheduler returns a Scheduler backed by the wall clock.
func NewWallScheduler() Scheduler {
	return wallScheduler{}
}

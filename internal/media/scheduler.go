package media

import "time"

// Timer is a cancellable scheduled call
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// RealScheduler schedules with the runtime timers
type RealScheduler struct{}

// AfterFunc wraps time.AfterFunc
func (RealScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

package media

import (
	"sync"
	"time"
)

const (
	// DefaultOverlayDelay is how long the overlay waits before its first appearance
	DefaultOverlayDelay = 30 * time.Second

	// DefaultOverlayInterval separates later appearances
	DefaultOverlayInterval = 3 * time.Minute
)

// Overlay schedules a dismissible popup slot. It first appears after
// delay and then every interval; Dismiss hides it until the next appearance.
type Overlay struct {
	*Rotator
	delay    time.Duration
	interval time.Duration
	sched    Scheduler

	mu      sync.Mutex
	visible bool
	timer   Timer
	running bool
}

// NewOverlay wraps rot with an appearance schedule
func NewOverlay(rot *Rotator, delay, interval time.Duration, sched Scheduler) *Overlay {
	if delay < 0 {
		delay = DefaultOverlayDelay
	}
	if interval <= 0 {
		interval = DefaultOverlayInterval
	}
	if sched == nil {
		sched = RealScheduler{}
	}
	return &Overlay{Rotator: rot, delay: delay, interval: interval, sched: sched}
}

// Start schedules the first appearance. An overlay without entries never appears.
func (o *Overlay) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running || len(o.Entries()) == 0 {
		return
	}
	o.running = true
	o.timer = o.sched.AfterFunc(o.delay, o.appear)
}

func (o *Overlay) appear() {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return
	}
	o.visible = true
	o.timer = o.sched.AfterFunc(o.interval, o.appear)
	o.mu.Unlock()

	o.Rotator.Start()
}

// Dismiss hides the overlay until its next scheduled appearance
func (o *Overlay) Dismiss() {
	o.mu.Lock()
	o.visible = false
	o.mu.Unlock()

	o.Rotator.Stop()
}

// Visible reports whether the overlay is showing
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Stop cancels the schedule and any rotation
func (o *Overlay) Stop() {
	o.mu.Lock()
	o.running = false
	o.visible = false
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.mu.Unlock()

	o.Rotator.Stop()
}

package media

import (
	"sync"
	"time"

	"sigandsys.dev/internal/models"
)

// DefaultRotationInterval is how long each image stays on screen
const DefaultRotationInterval = 8 * time.Second

// Rotator cycles the image shown in one slot
type Rotator struct {
	slot     models.Slot
	entries  []models.AdEntry
	interval time.Duration
	sched    Scheduler
	onShow   func(models.AdEntry)

	mu      sync.Mutex
	cursor  int
	timer   Timer
	running bool
}

// RotatorOption configures a Rotator
type RotatorOption func(*Rotator)

// WithScheduler replaces the runtime timers
func WithScheduler(s Scheduler) RotatorOption {
	return func(r *Rotator) { r.sched = s }
}

// OnShow registers a callback invoked whenever a new entry is displayed
func OnShow(fn func(models.AdEntry)) RotatorOption {
	return func(r *Rotator) { r.onShow = fn }
}

// NewRotator creates a Rotator over entries
func NewRotator(slot models.Slot, entries []models.AdEntry, interval time.Duration, opts ...RotatorOption) *Rotator {
	if interval <= 0 {
		interval = DefaultRotationInterval
	}
	r := &Rotator{
		slot:     slot,
		entries:  entries,
		interval: interval,
		sched:    RealScheduler{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start displays the first entry and, when there are two or more,
// schedules rotation
func (r *Rotator) Start() {
	r.mu.Lock()
	if r.running || len(r.entries) == 0 {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.cursor = 0
	first := r.entries[0]
	if len(r.entries) > 1 {
		r.timer = r.sched.AfterFunc(r.interval, r.tick)
	}
	r.mu.Unlock()

	r.show(first)
}

func (r *Rotator) tick() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.cursor = (r.cursor + 1) % len(r.entries)
	next := r.entries[r.cursor]
	r.timer = r.sched.AfterFunc(r.interval, r.tick)
	r.mu.Unlock()

	r.show(next)
}

func (r *Rotator) show(e models.AdEntry) {
	if r.onShow != nil {
		r.onShow(e)
	}
}

// Stop cancels rotation
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Current returns the displayed entry
func (r *Rotator) Current() (models.AdEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		return models.AdEntry{}, false
	}
	return r.entries[r.cursor], true
}

// Entries returns every entry in rotation order
func (r *Rotator) Entries() []models.AdEntry {
	return r.entries
}

// Slot returns the slot this rotator serves
func (r *Rotator) Slot() models.Slot {
	return r.slot
}

package catalog

import (
	"strings"
	"sync"
	"time"

	"sigandsys.dev/internal/models"
)

// DefaultSearchDelay is how long Search waits for typing to settle
const DefaultSearchDelay = 300 * time.Millisecond

// Snapshot is what a page currently displays
type Snapshot struct {
	Items    []models.Article
	Expanded map[string]bool
	Total    int
	HasMore  bool
	Empty    bool
	Term     string
	Topic    string
}

// View tracks the interactive state of an article list: how many pages
// are revealed, the search term, the topic and which items are expanded.
type View struct {
	items    []models.Article
	pageSize int
	debounce *Debouncer
	onChange func(Snapshot)

	mu       sync.Mutex
	shown    int
	term     string
	topic    string
	expanded map[string]bool
}

// ViewOption configures a View
type ViewOption func(*View)

// WithPageSize overrides PageSize
func WithPageSize(n int) ViewOption {
	return func(v *View) {
		if n > 0 {
			v.pageSize = n
		}
	}
}

// WithSearchDelay overrides DefaultSearchDelay
func WithSearchDelay(d time.Duration) ViewOption {
	return func(v *View) { v.debounce = NewDebouncer(d) }
}

// OnChange registers a callback invoked after every state change
func OnChange(fn func(Snapshot)) ViewOption {
	return func(v *View) { v.onChange = fn }
}

// NewView creates a View over items showing the first page
func NewView(items []models.Article, opts ...ViewOption) *View {
	v := &View{
		items:    items,
		pageSize: PageSize,
		debounce: NewDebouncer(DefaultSearchDelay),
		expanded: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.shown = v.pageSize
	return v
}

// LoadMore reveals one more page. It has no effect while a topic is active.
func (v *View) LoadMore() {
	v.update(func() {
		if !TopicActive(v.topic) {
			v.shown += v.pageSize
		}
	})
}

// Reveal shows at least n items in whole pages, as if LoadMore had been
// called enough times, and returns the resulting count. n is capped at the
// page holding the last item. It has no effect while a topic is active.
func (v *View) Reveal(n int) int {
	var shown int
	v.update(func() {
		if !TopicActive(v.topic) {
			limit := (len(v.items) + v.pageSize - 1) / v.pageSize * v.pageSize
			n = max(min(n, limit), v.pageSize)
			v.shown = (n + v.pageSize - 1) / v.pageSize * v.pageSize
		}
		shown = v.shown
	})
	return shown
}

// Search applies term once typing has paused for the search delay
func (v *View) Search(term string) {
	v.debounce.Trigger(func() { v.SearchNow(term) })
}

// SearchNow applies term immediately, clearing the topic and resetting pagination
func (v *View) SearchNow(term string) {
	v.update(func() {
		v.term = strings.TrimSpace(term)
		v.topic = ""
		v.shown = v.pageSize
	})
}

// SetTopic shows every article tagged with topic, clearing the search.
// "all" restores the paged list from its first page.
func (v *View) SetTopic(topic string) {
	v.debounce.Stop()
	v.update(func() {
		v.term = ""
		v.shown = v.pageSize
		if TopicActive(topic) {
			v.topic = strings.TrimSpace(topic)
		} else {
			v.topic = ""
		}
	})
}

// Toggle flips the expanded state of one article and returns the new state
func (v *View) Toggle(id string) bool {
	var open bool
	v.update(func() {
		open = !v.expanded[id]
		if open {
			v.expanded[id] = true
		} else {
			delete(v.expanded, id)
		}
	})
	return open
}

// Snapshot returns the items currently displayed
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Close cancels any pending search
func (v *View) Close() {
	v.debounce.Stop()
}

func (v *View) update(fn func()) {
	v.mu.Lock()
	fn()
	snap := v.snapshotLocked()
	v.mu.Unlock()

	if v.onChange != nil {
		v.onChange(snap)
	}
}

func (v *View) snapshotLocked() Snapshot {
	var (
		visible []models.Article
		more    bool
		total   int
	)
	if TopicActive(v.topic) {
		visible = FilterTopic(v.items, v.topic)
		total = len(visible)
	} else {
		filtered := Search(v.items, v.term)
		total = len(filtered)
		visible, more = Paginate(filtered, v.shown)
	}

	expanded := make(map[string]bool, len(v.expanded))
	for id := range v.expanded {
		expanded[id] = true
	}

	return Snapshot{
		Items:    nonNil(visible),
		Expanded: expanded,
		Total:    total,
		HasMore:  more,
		Empty:    total == 0,
		Term:     v.term,
		Topic:    v.topic,
	}
}

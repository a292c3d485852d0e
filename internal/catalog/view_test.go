package catalog

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewPaging(t *testing.T) {
	v := NewView(manyArticles(14))
	defer v.Close()

	snap := v.Snapshot()
	assert.Len(t, snap.Items, PageSize)
	assert.True(t, snap.HasMore)

	v.LoadMore()
	assert.Len(t, v.Snapshot().Items, 2*PageSize)

	v.LoadMore()
	snap = v.Snapshot()
	assert.Len(t, snap.Items, 14)
	assert.False(t, snap.HasMore)
}

func TestViewSearchResetsPaging(t *testing.T) {
	v := NewView(manyArticles(20), WithPageSize(4))
	defer v.Close()

	v.LoadMore()
	v.LoadMore()
	require.Len(t, v.Snapshot().Items, 12)

	v.SearchNow("post 1")
	snap := v.Snapshot()
	assert.Len(t, snap.Items, 4, "search returns to the first page")
	assert.Equal(t, 11, snap.Total)
	assert.Equal(t, "post 1", snap.Term)

	v.SearchNow("no such post")
	snap = v.Snapshot()
	assert.True(t, snap.Empty)
	assert.Empty(t, snap.Items)

	v.SearchNow("")
	assert.Equal(t, 20, v.Snapshot().Total)
}

func TestViewTopic(t *testing.T) {
	articles := manyArticles(10)
	for i := range articles {
		articles[i].Tags = []string{"even"}
		if i%2 == 1 {
			articles[i].Tags = []string{"odd"}
		}
	}
	v := NewView(articles, WithPageSize(2))
	defer v.Close()

	v.SearchNow("post")
	v.SetTopic("odd")
	snap := v.Snapshot()
	assert.Len(t, snap.Items, 5, "topic shows the full filtered set")
	assert.False(t, snap.HasMore)
	assert.Empty(t, snap.Term, "topic clears the search")

	v.LoadMore()
	assert.Len(t, v.Snapshot().Items, 5)

	v.SetTopic("all")
	snap = v.Snapshot()
	assert.Len(t, snap.Items, 2, "all restores the first page")
	assert.Empty(t, snap.Topic)
	assert.True(t, snap.HasMore)

	v.SetTopic("odd")
	v.SearchNow("post 2")
	snap = v.Snapshot()
	assert.Empty(t, snap.Topic, "search clears the topic")
}

func TestViewToggle(t *testing.T) {
	v := NewView(sampleArticles())
	defer v.Close()

	assert.True(t, v.Toggle("go"))
	assert.True(t, v.Toggle("dsp"))
	assert.False(t, v.Toggle("go"))

	snap := v.Snapshot()
	assert.Equal(t, map[string]bool{"dsp": true}, snap.Expanded)

	snap.Expanded["k8s"] = true
	assert.NotContains(t, v.Snapshot().Expanded, "k8s", "snapshot is a copy")
}

func TestViewSearchDebounced(t *testing.T) {
	var (
		mu    sync.Mutex
		terms []string
	)
	v := NewView(sampleArticles(), WithSearchDelay(20*time.Millisecond), OnChange(func(s Snapshot) {
		mu.Lock()
		terms = append(terms, s.Term)
		mu.Unlock()
	}))
	defer v.Close()

	v.Search("c")
	v.Search("co")
	v.Search("con")

	assert.Equal(t, "", v.Snapshot().Term, "nothing applied before the delay")

	assert.Eventually(t, func() bool {
		return v.Snapshot().Term == "con"
	}, time.Second, 5*time.Millisecond)

	time.Sleep(40 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"con"}, terms, "only the last term is applied")
}

func TestViewTopicCancelsPendingSearch(t *testing.T) {
	v := NewView(sampleArticles(), WithSearchDelay(20*time.Millisecond))
	defer v.Close()

	v.Search("go")
	v.SetTopic("signals")
	time.Sleep(50 * time.Millisecond)

	snap := v.Snapshot()
	assert.Equal(t, "signals", snap.Topic)
	assert.Empty(t, snap.Term)
}

func TestViewReveal(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"non-positive is one page", -3, PageSize},
		{"rounds up to whole pages", 7, 2 * PageSize},
		{"exact pages", 12, 12},
		{"capped at the last page", 500, 18},
		{"max int", math.MaxInt, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(manyArticles(14))
			defer v.Close()

			assert.Equal(t, tt.want, v.Reveal(tt.n))
			snap := v.Snapshot()
			assert.Len(t, snap.Items, min(tt.want, 14))
			assert.Equal(t, tt.want < 14, snap.HasMore)
		})
	}
}

func TestViewRevealIgnoredWithTopic(t *testing.T) {
	v := NewView(manyArticles(14))
	defer v.Close()

	v.SetTopic("misc")
	assert.Equal(t, PageSize, v.Reveal(100))
	assert.Len(t, v.Snapshot().Items, 14)
}

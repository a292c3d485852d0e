package content

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigandsys.dev/internal/apperr"
)

func TestStoreRefresh(t *testing.T) {
	fs := newFS(t, map[string]string{
		"articles/index.json": `["first.json"]`,
		"articles/first.json": `[{"id":"a","date":"2025-01-01"}]`,
		"extra.json":          `{"id":"b","date":"2025-03-01"}`,
		"tools.json":          `[{"name":"grep"}]`,
	})
	store := NewStore(NewLoader(fs), Sources{
		ArticleIndex: "articles/index.json",
		Articles:     []string{"extra.json", "articles/first.json"},
		Tools:        []string{"tools.json"},
	}, time.Minute, zerolog.Nop())

	assert.True(t, store.LoadedAt().IsZero())
	store.Refresh(context.Background())

	assert.Equal(t, []string{"b", "a"}, ids(store.Articles()))
	assert.Len(t, store.Tools(), 1)
	assert.False(t, store.LoadedAt().IsZero())

	a, err := store.Article("a")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", a.Date)

	_, err = store.Article("zzz")
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestStoreMissingIndex(t *testing.T) {
	fs := newFS(t, map[string]string{"only.json": `[{"id":"solo"}]`})
	store := NewStore(NewLoader(fs), Sources{
		ArticleIndex: "articles/index.json",
		Articles:     []string{"only.json"},
	}, time.Minute, zerolog.Nop())

	store.Refresh(context.Background())
	assert.Equal(t, []string{"solo"}, ids(store.Articles()))
	assert.Empty(t, store.Tools())
}

func TestStoreRunPicksUpChanges(t *testing.T) {
	fs := newFS(t, map[string]string{"a.json": `[{"id":"v1"}]`})
	store := NewStore(NewLoader(fs), Sources{Articles: []string{"a.json"}}, 10*time.Millisecond, zerolog.Nop())
	store.Refresh(context.Background())
	require.Equal(t, []string{"v1"}, ids(store.Articles()))

	require.NoError(t, util.WriteFile(fs, "a.json", []byte(`[{"id":"v2"}]`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Run(ctx) }()

	assert.Eventually(t, func() bool {
		got := store.Articles()
		return len(got) == 1 && got[0].ID == "v2"
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

package media

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigandsys.dev/internal/apperr"
	"sigandsys.dev/internal/models"
)

func TestServiceLifecycle(t *testing.T) {
	fs := adsFS(t, map[string]string{
		"Banner/manifest.json": `["banner1.png","banner2.png"]`,
		"Side/side1.png":       "x",
		"Popup/popup1.png":     "x",
	})
	sched := &fakeScheduler{}
	svc := NewService(
		NewDiscoverer(fs, NewFSProber(fs), "/static/Ads", 3, nil, zerolog.Nop()),
		Settings{RotationInterval: time.Second, OverlayDelay: 10 * time.Second, OverlayInterval: time.Minute, Scheduler: sched},
		zerolog.Nop(),
	)

	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop()

	banner, err := svc.State(models.SlotBanner)
	require.NoError(t, err)
	assert.Len(t, banner.Entries, 2)
	assert.True(t, banner.Visible)
	require.NotNil(t, banner.Current)
	assert.Equal(t, "/static/Ads/Banner/banner1.png", banner.Current.Path)

	side, err := svc.State(models.SlotSide)
	require.NoError(t, err)
	assert.Len(t, side.Entries, 1)

	overlay, err := svc.State(models.SlotOverlay)
	require.NoError(t, err)
	assert.False(t, overlay.Visible)
	assert.Nil(t, overlay.Current)

	// banner rotation plus the overlay's first appearance
	assert.Len(t, sched.pending(), 2)

	var appearance *fakeTimer
	for _, tm := range sched.pending() {
		if tm.delay == 10*time.Second {
			appearance = tm
		}
	}
	require.NotNil(t, appearance)
	appearance.fired = true
	appearance.fn()

	overlay, _ = svc.State(models.SlotOverlay)
	assert.True(t, overlay.Visible)
	require.NotNil(t, overlay.Current)
	assert.Equal(t, "popup1.png", overlay.Current.File)

	svc.DismissOverlay()
	overlay, _ = svc.State(models.SlotOverlay)
	assert.False(t, overlay.Visible)

	assert.Len(t, svc.States(), 3)
	assert.NotNil(t, svc.Current(models.SlotBanner))
}

func TestServiceUnknownSlot(t *testing.T) {
	svc := NewService(NewDiscoverer(nil, NewFSProber(adsFS(t, nil)), "", 1, nil, zerolog.Nop()), Settings{}, zerolog.Nop())
	_, err := svc.State("footer")
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestServiceBeforeStart(t *testing.T) {
	svc := NewService(NewDiscoverer(nil, NewFSProber(adsFS(t, nil)), "", 1, nil, zerolog.Nop()), Settings{}, zerolog.Nop())
	state, err := svc.State(models.SlotBanner)
	require.NoError(t, err)
	assert.Empty(t, state.Entries)
	assert.Nil(t, svc.Current(models.SlotBanner))
	svc.DismissOverlay()
}

func TestServiceRefreshKeepsUnchangedRotation(t *testing.T) {
	fs := adsFS(t, map[string]string{
		"Banner/manifest.json": `["banner1.png","banner2.png"]`,
		"Popup/popup1.png":     "x",
	})
	sched := &fakeScheduler{}
	svc := NewService(
		NewDiscoverer(fs, NewFSProber(fs), "/static/Ads", 3, nil, zerolog.Nop()),
		Settings{RotationInterval: time.Second, OverlayDelay: 10 * time.Second, OverlayInterval: time.Minute, Scheduler: sched},
		zerolog.Nop(),
	)
	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop()

	for _, tm := range sched.pending() {
		if tm.delay == time.Second {
			tm.fired = true
			tm.fn()
		}
	}
	require.Equal(t, "banner2.png", svc.Current(models.SlotBanner).File)
	timers := sched.count()

	restarted, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, restarted)
	assert.Equal(t, "banner2.png", svc.Current(models.SlotBanner).File, "cursor survives")
	assert.Equal(t, timers, sched.count(), "no timers re-armed")

	require.NoError(t, util.WriteFile(fs, "Banner/manifest.json", []byte(`["banner1.png","banner2.png","banner3.png"]`), 0o644))

	restarted, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, restarted)
	banner, _ := svc.State(models.SlotBanner)
	assert.Len(t, banner.Entries, 3)
	assert.Equal(t, "banner1.png", banner.Current.File)
}

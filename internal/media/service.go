package media

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"sigandsys.dev/internal/apperr"
	"sigandsys.dev/internal/models"
)

// Settings holds the rotation timing for a Service
type Settings struct {
	RotationInterval time.Duration
	OverlayDelay     time.Duration
	OverlayInterval  time.Duration
	Scheduler        Scheduler
}

// Service discovers every slot and keeps one rotator per slot running
type Service struct {
	discoverer *Discoverer
	settings   Settings
	logger     zerolog.Logger

	mu       sync.RWMutex
	rotators map[models.Slot]*Rotator
	overlay  *Overlay
}

// NewService creates a Service; call Start to discover and begin rotating
func NewService(d *Discoverer, settings Settings, logger zerolog.Logger) *Service {
	if settings.Scheduler == nil {
		settings.Scheduler = RealScheduler{}
	}
	return &Service{
		discoverer: d,
		settings:   settings,
		logger:     logger,
		rotators:   make(map[models.Slot]*Rotator),
	}
}

// Start discovers all slots concurrently and starts their rotation,
// replacing anything started before
func (s *Service) Start(ctx context.Context) error {
	found, err := s.discover(ctx)
	if err != nil {
		return err
	}
	s.start(found)
	return nil
}

// Refresh rediscovers every slot and restarts rotation only when some
// slot's entries changed, so cursors and a dismissed overlay survive an
// unchanged rediscovery. It reports whether rotation was restarted.
func (s *Service) Refresh(ctx context.Context) (bool, error) {
	found, err := s.discover(ctx)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	same := len(s.rotators) == len(models.Slots)
	for i, slot := range models.Slots {
		if !same {
			break
		}
		rot, ok := s.rotators[slot]
		same = ok && slices.Equal(rot.Entries(), found[i])
	}
	s.mu.RUnlock()

	if same {
		return false, nil
	}
	s.start(found)
	return true, nil
}

func (s *Service) discover(ctx context.Context) ([][]models.AdEntry, error) {
	found := make([][]models.AdEntry, len(models.Slots))

	g, gctx := errgroup.WithContext(ctx)
	for i, slot := range models.Slots {
		g.Go(func() error {
			entries, err := s.discoverer.Discover(gctx, slot)
			if err != nil {
				return fmt.Errorf("discovering %s ads: %w", slot, err)
			}
			found[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *Service) start(found [][]models.AdEntry) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	opts := []RotatorOption{WithScheduler(s.settings.Scheduler)}
	for i, slot := range models.Slots {
		rot := NewRotator(slot, found[i], s.settings.RotationInterval, opts...)
		s.rotators[slot] = rot
		if slot == models.SlotOverlay {
			s.overlay = NewOverlay(rot, s.settings.OverlayDelay, s.settings.OverlayInterval, s.settings.Scheduler)
			s.overlay.Start()
			continue
		}
		rot.Start()
	}

	s.logger.Info().
		Int("banner", len(found[0])).
		Int("side", len(found[1])).
		Int("overlay", len(found[2])).
		Msg("ad rotation started")
}

// Stop cancels every rotation and overlay timer
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.overlay != nil {
		s.overlay.Stop()
		s.overlay = nil
	}
	for slot, rot := range s.rotators {
		rot.Stop()
		delete(s.rotators, slot)
	}
}

// State reports the entries and current display of one slot
func (s *Service) State(slot models.Slot) (models.SlotState, error) {
	if _, err := SpecFor(slot); err != nil {
		return models.SlotState{}, apperr.Wrap(apperr.CodeNotFound, "unknown slot", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	state := models.SlotState{Slot: slot, Entries: []models.AdEntry{}}
	rot, ok := s.rotators[slot]
	if !ok {
		return state, nil
	}
	if entries := rot.Entries(); entries != nil {
		state.Entries = entries
	}

	state.Visible = len(state.Entries) > 0
	if slot == models.SlotOverlay && s.overlay != nil {
		state.Visible = s.overlay.Visible()
	}
	if cur, ok := rot.Current(); ok && state.Visible {
		state.Current = &cur
	}
	return state, nil
}

// States reports every slot in display order
func (s *Service) States() []models.SlotState {
	out := make([]models.SlotState, 0, len(models.Slots))
	for _, slot := range models.Slots {
		state, _ := s.State(slot)
		out = append(out, state)
	}
	return out
}

// Current returns the entry a slot is displaying, or nil
func (s *Service) Current(slot models.Slot) *models.AdEntry {
	state, err := s.State(slot)
	if err != nil {
		return nil
	}
	return state.Current
}

// DismissOverlay hides the overlay until its next appearance
func (s *Service) DismissOverlay() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.overlay != nil {
		s.overlay.Dismiss()
	}
}

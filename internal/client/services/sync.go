package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"qrstudio/internal/client/models"
	"qrstudio/internal/logging"
)

// Renderer displays a freshly fetched snapshot. Every call fully replaces
// what was shown before; nothing is patched incrementally, so re-rendering
// the same snapshot twice is harmless.
type Renderer interface {
	RenderHistory(items []models.HistoryItem)
	RenderStats(stats models.Stats, lastActivity string)
}

// Synchronizer keeps the displayed history and stats equal to the server's
// current state. After every successful mutating action callers invoke
// Refresh, which re-fetches both and re-renders from scratch; there is no
// client-side cache to patch and no invalidation protocol to get wrong.
type Synchronizer struct {
	backend Backend
	log     logging.Logger

	mu       sync.Mutex
	renderer Renderer
}

func NewSynchronizer(backend Backend, log logging.Logger) *Synchronizer {
	return &Synchronizer{backend: backend, log: log.With("component", "sync")}
}

// Attach sets the render target. Attach(nil) detaches it; a refresh that
// completes while detached is dropped silently, the way a response arriving
// after navigation finds its target gone.
func (s *Synchronizer) Attach(r Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer = r
}

// Refresh fetches the history list and stats concurrently, derives the
// last-activity timestamp, and re-renders. The last activity is the
// timestamp of the FIRST history element: the backend returns newest-first
// and the client does not re-sort, so display correctness rides on that
// ordering.
func (s *Synchronizer) Refresh(ctx context.Context) (models.Snapshot, error) {
	var (
		history []models.HistoryItem
		stats   models.Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, err = s.backend.History(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.backend.Stats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn(ctx, "refresh failed", "err", err)
		return models.Snapshot{}, err
	}

	snap := models.Snapshot{History: history, Stats: stats}
	if len(history) > 0 {
		snap.LastActivity = history[0].Timestamp
	}

	s.render(snap)
	return snap, nil
}

func (s *Synchronizer) render(snap models.Snapshot) {
	s.mu.Lock()
	r := s.renderer
	s.mu.Unlock()
	if r == nil {
		return
	}
	r.RenderHistory(snap.History)
	r.RenderStats(snap.Stats, snap.LastActivity)
}

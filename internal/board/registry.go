package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/bracket"
	"github.com/mauv0809/padel-brackets/internal/metrics"
	"github.com/mauv0809/padel-brackets/internal/tournament"
)

// NewRegistry creates an empty registry backed by the tournament client.
func NewRegistry(client tournament.TournamentClient, metrics metrics.Metrics) *Registry {
	return &Registry{
		client:  client,
		metrics: metrics,
		arenas:  make(map[string]*Arena),
	}
}

// Load fetches a category from the backend and replaces its arena wholesale.
// Concurrent loads of the same category share one fetch, which is not tied
// to the cancellation of whichever caller started it.
func (r *Registry) Load(ctx context.Context, categoryID string) (*Arena, error) {
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := r.loads.Do(categoryID, func() (any, error) {
		payload, err := r.client.GetCategory(fetchCtx, categoryID)
		if err != nil {
			return nil, err
		}
		category := bracket.FromPayload(categoryID, payload)

		r.mu.Lock()
		defer r.mu.Unlock()
		arena, ok := r.arenas[categoryID]
		if ok {
			arena.Replace(category)
		} else {
			arena = NewArena(category)
			r.arenas[categoryID] = arena
		}
		r.metrics.IncCategoryLoads()
		return arena, nil
	})
	if err != nil {
		log.Error("Failed to load category", "categoryID", categoryID, "error", err)
		if errors.Is(err, tournament.ErrNotFound) {
			return nil, fmt.Errorf("%w %s: %w", ErrUnknownCategory, categoryID, err)
		}
		return nil, fmt.Errorf("failed to load category %s: %w", categoryID, err)
	}
	if shared {
		log.Debug("Category load was shared with a concurrent request", "categoryID", categoryID)
	}
	return v.(*Arena), nil
}

// Get returns an already loaded arena.
func (r *Registry) Get(categoryID string) (*Arena, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.arenas[categoryID]
	return a, ok
}

// Ensure returns the loaded arena, loading it first if needed.
func (r *Registry) Ensure(ctx context.Context, categoryID string) (*Arena, error) {
	if a, ok := r.Get(categoryID); ok {
		return a, nil
	}
	return r.Load(ctx, categoryID)
}

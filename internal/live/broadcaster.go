package live

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/board"
	"github.com/mauv0809/padel-brackets/internal/bracket"
	"github.com/mauv0809/padel-brackets/internal/hub"
	"github.com/mauv0809/padel-brackets/internal/metrics"
	"github.com/mauv0809/padel-brackets/internal/render"
	"github.com/mauv0809/padel-brackets/internal/resync"
)

// liveOptions is used for the retained scene pushed to websocket viewers.
var liveOptions = render.Options{ShowCourts: true}

// Broadcaster keeps websocket viewers in step with the arenas. Every change
// is sent as a patch against the last scene the room received.
type Broadcaster struct {
	registry *board.Registry
	hub      *hub.Hub
	retained *render.Retained
	layout   bracket.Options
	metrics  metrics.Metrics

	mu    sync.Mutex
	rooms map[string]*sync.Mutex
}

// New creates a Broadcaster.
func New(registry *board.Registry, h *hub.Hub, layout bracket.Options, metrics metrics.Metrics) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		hub:      h,
		retained: render.NewRetained(),
		layout:   layout,
		metrics:  metrics,
		rooms:    make(map[string]*sync.Mutex),
	}
}

// Scene builds the scene of a category, loading it first when needed or when
// reload is set.
func (b *Broadcaster) Scene(ctx context.Context, categoryID string, reload bool, opts render.Options) (render.Scene, bracket.Diagnostics, error) {
	var (
		arena *board.Arena
		err   error
	)
	if reload {
		arena, err = b.registry.Load(ctx, categoryID)
	} else {
		arena, err = b.registry.Ensure(ctx, categoryID)
	}
	if err != nil {
		return render.Scene{}, bracket.Diagnostics{}, err
	}
	var view *bracket.View
	if reload {
		view = b.publish(categoryID, arena)
	} else {
		view = b.view(arena)
	}
	return render.Build(view, opts), view.Diagnostics, nil
}

// Ensure loads a category if it is not loaded yet.
func (b *Broadcaster) Ensure(ctx context.Context, categoryID string) error {
	_, err := b.registry.Ensure(ctx, categoryID)
	return err
}

// Join subscribes a websocket client to its category's room. The client first
// receives the up to date retained scene and then every patch published after
// it, in order.
func (b *Broadcaster) Join(ctx context.Context, client *hub.Client) error {
	categoryID := client.Room()
	arena, err := b.registry.Ensure(ctx, categoryID)
	if err != nil {
		client.Close()
		return err
	}

	lock := b.room(categoryID)
	lock.Lock()
	defer lock.Unlock()
	b.update(categoryID, arena)
	scene, _ := b.retained.Snapshot(categoryID)
	if err := b.hub.Register(client, hub.Message{Type: hub.TypeScene, Payload: scene}); err != nil {
		return fmt.Errorf("failed to register viewer of %s: %w", categoryID, err)
	}
	return nil
}

// Publish rebuilds a loaded category and broadcasts the patch, if any.
func (b *Broadcaster) Publish(categoryID string) {
	arena, ok := b.registry.Get(categoryID)
	if !ok {
		log.Debug("Category not loaded, nothing to publish", "categoryID", categoryID)
		return
	}
	b.publish(categoryID, arena)
}

// OnDone is registered with the resync controller.
func (b *Broadcaster) OnDone(ctx context.Context, result resync.Result) {
	b.Publish(result.CategoryID)
}

func (b *Broadcaster) view(arena *board.Arena) *bracket.View {
	view := arena.View(b.layout)
	b.metrics.IncBracketViews()
	if d := view.Diagnostics; d.ConnectorMisses > 0 || d.IdentityMisses > 0 {
		b.metrics.AddConnectorMisses(d.ConnectorMisses)
		b.metrics.AddIdentityMisses(d.IdentityMisses)
		log.Warn("Bracket has data quality misses", "categoryID", view.CategoryID, "connectorMisses", d.ConnectorMisses, "identityMisses", d.IdentityMisses, "unknownPhases", d.UnknownPhases)
	}
	return view
}

// room returns the lock that orders retained updates and broadcasts of a category.
func (b *Broadcaster) room(categoryID string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	lock, ok := b.rooms[categoryID]
	if !ok {
		lock = &sync.Mutex{}
		b.rooms[categoryID] = lock
	}
	return lock
}

func (b *Broadcaster) publish(categoryID string, arena *board.Arena) *bracket.View {
	lock := b.room(categoryID)
	lock.Lock()
	defer lock.Unlock()
	return b.update(categoryID, arena)
}

// update must be called with the room lock held. The view is built under the
// lock so the retained scene never moves back to an older arena state.
func (b *Broadcaster) update(categoryID string, arena *board.Arena) *bracket.View {
	view := b.view(arena)
	patch := b.retained.Update(render.Build(view, liveOptions))
	if !patch.Empty() {
		b.hub.BroadcastToRoom(categoryID, hub.Message{Type: hub.TypeScenePatch, Payload: patch})
	}
	return view
}

package resync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/board"
	"github.com/mauv0809/padel-brackets/internal/bracket"
	"github.com/mauv0809/padel-brackets/internal/metrics"
	"github.com/mauv0809/padel-brackets/internal/notifier"
	"github.com/mauv0809/padel-brackets/internal/pubsub"
	"github.com/mauv0809/padel-brackets/internal/tournament"
)

// New creates a Controller. layout positions the match returned in a Result
// and origin identifies this instance in published events.
func New(client tournament.TournamentClient, arenas Arenas, layout bracket.Options, notifier notifier.Notifier, pubsub pubsub.PubSubClient, metrics metrics.Metrics, origin string) *Controller {
	return &Controller{
		client:   client,
		arenas:   arenas,
		layout:   layout,
		notifier: notifier,
		pubsub:   pubsub,
		metrics:  metrics,
		origin:   origin,
		states:   make(map[string]State),
	}
}

// OnDone registers a hook run after every applied merge.
func (c *Controller) OnDone(fn DoneFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDone = append(c.onDone, fn)
}

// State returns the last recorded state of a game. Games never submitted are idle.
func (c *Controller) State(categoryID string, gameID int) State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.states[stateKey(categoryID, gameID)]; ok {
		return s
	}
	return StateIdle
}

// Submit stores the sets of a game and merges the canonical result into the
// category's arena. On a network failure the arena is left untouched and the
// failure is notified; there is no retry.
func (c *Controller) Submit(ctx context.Context, categoryID string, gameID int, sets []tournament.SetScore) (Result, error) {
	if err := ValidateSets(sets); err != nil {
		c.metrics.IncResync(metrics.OutcomeInvalid)
		return Result{CategoryID: categoryID, GameID: gameID, State: c.State(categoryID, gameID)}, err
	}

	arena, err := c.arenas.Ensure(ctx, categoryID)
	if err != nil {
		return Result{CategoryID: categoryID, GameID: gameID, State: c.State(categoryID, gameID)}, err
	}
	generation := arena.Generation()
	match, ok := arena.View(c.layout).Find(gameID)
	if !ok {
		return Result{CategoryID: categoryID, GameID: gameID, State: c.State(categoryID, gameID)}, fmt.Errorf("game %d in category %s: %w", gameID, categoryID, board.ErrUnknownGame)
	}
	if !match.Open {
		c.metrics.IncResync(metrics.OutcomeGated)
		log.Warn("Refusing score for gated match", "categoryID", categoryID, "gameID", gameID, "round", match.Round)
		return Result{CategoryID: categoryID, GameID: gameID, State: c.State(categoryID, gameID)}, ErrGated
	}

	sub := &submission{
		categoryID: categoryID,
		gameID:     gameID,
		sets:       tournament.SortSets(sets),
		arena:      arena,
		generation: generation,
		state:      StateIdle,
	}
	start := time.Now()
	defer func() {
		c.metrics.ObserveResyncDuration(time.Since(start).Seconds())
	}()
	return c.run(ctx, sub)
}

func (c *Controller) run(ctx context.Context, sub *submission) (Result, error) {
	log.Info("Submitting score", "categoryID", sub.categoryID, "gameID", sub.gameID, "sets", len(sub.sets))
	for {
		log.Debug("Evaluating resync state", "gameID", sub.gameID, "state", sub.state)

		switch sub.state {
		case StateIdle:
			c.transition(sub, StateSaving)

		case StateSaving:
			for _, set := range sub.sets {
				set.GameID = sub.gameID
				if err := c.client.StoreSetScore(ctx, set); err != nil {
					c.fail(sub, fmt.Errorf("store set %d: %w", set.SetNumber, err))
					break
				}
			}
			if sub.state == StateSaving {
				c.transition(sub, StateSyncing)
			}

		case StateSyncing:
			detail, err := c.client.GetGameDetail(ctx, sub.gameID)
			if err != nil {
				c.fail(sub, fmt.Errorf("read back game: %w", err))
				continue
			}
			applied, err := sub.arena.Merge(sub.gameID, *detail, sub.generation)
			if err != nil {
				c.fail(sub, err)
				continue
			}
			sub.applied = applied
			c.transition(sub, StateDone)

		case StateDone:
			return c.done(ctx, sub), nil

		case StateError:
			return c.failed(ctx, sub)

		default:
			log.Error("Unknown resync state", "gameID", sub.gameID, "state", sub.state)
			c.fail(sub, fmt.Errorf("unknown state %q", sub.state))
		}
	}
}

func (c *Controller) transition(sub *submission, next State) {
	log.Debug("Resync state change", "gameID", sub.gameID, "from", sub.state, "to", next)
	sub.state = next
	c.mu.Lock()
	c.states[stateKey(sub.categoryID, sub.gameID)] = next
	c.mu.Unlock()
}

func (c *Controller) fail(sub *submission, err error) {
	sub.failedAt = sub.state
	sub.err = err
	c.transition(sub, StateError)
}

func (c *Controller) done(ctx context.Context, sub *submission) Result {
	result := Result{CategoryID: sub.categoryID, GameID: sub.gameID, State: StateDone, Applied: sub.applied}
	if !sub.applied {
		c.metrics.IncResync(metrics.OutcomeStale)
		log.Info("Category was reloaded during the submission, merge discarded", "categoryID", sub.categoryID, "gameID", sub.gameID)
		return result
	}
	c.metrics.IncResync(metrics.OutcomeDone)

	if m, ok := sub.arena.View(c.layout).Find(sub.gameID); ok {
		result.Match = m
	}
	log.Info("Score synced", "categoryID", sub.categoryID, "gameID", sub.gameID)

	if result.Match != nil {
		if err := c.notifier.NotifyMatchSynced(ctx, matchUpdate(sub.categoryID, result.Match)); err != nil {
			log.Error("Failed to notify synced match", "gameID", sub.gameID, "error", err)
		}
	}
	if !notifier.IsDryRun(ctx) {
		status := ""
		if result.Match != nil {
			status = string(result.Match.Status)
		}
		event := pubsub.MatchSyncedEvent{CategoryID: sub.categoryID, GameID: sub.gameID, Status: status, Origin: c.origin}
		if err := c.pubsub.SendMessage(pubsub.EventMatchSynced, event); err != nil {
			log.Error("Failed to publish match synced event", "gameID", sub.gameID, "error", err)
		}
	}

	c.mu.RLock()
	hooks := append([]DoneFunc(nil), c.onDone...)
	c.mu.RUnlock()
	for _, hook := range hooks {
		hook(ctx, result)
	}
	return result
}

func (c *Controller) failed(ctx context.Context, sub *submission) (Result, error) {
	c.metrics.IncResync(metrics.OutcomeError)
	log.Error("Score submission failed", "categoryID", sub.categoryID, "gameID", sub.gameID, "step", sub.failedAt, "error", sub.err)

	failure := notifier.ResyncFailure{CategoryID: sub.categoryID, GameID: sub.gameID, Step: string(sub.failedAt), Err: sub.err}
	if err := c.notifier.NotifyResyncFailed(ctx, failure); err != nil {
		log.Error("Failed to notify resync failure", "gameID", sub.gameID, "error", err)
	}
	result := Result{
		CategoryID: sub.categoryID,
		GameID:     sub.gameID,
		State:      StateError,
		Step:       sub.failedAt,
		Error:      sub.err.Error(),
	}
	return result, fmt.Errorf("%w: %w", ErrSyncFailed, sub.err)
}

// ValidateSets checks that 1 to 3 sets are given with distinct numbers in
// 1..3 and non-negative scores.
func ValidateSets(sets []tournament.SetScore) error {
	if len(sets) == 0 || len(sets) > MaxSets {
		return fmt.Errorf("%w: expected 1 to %d sets, got %d", ErrInvalidSet, MaxSets, len(sets))
	}
	seen := make(map[int]bool, len(sets))
	for _, s := range sets {
		if s.SetNumber < 1 || s.SetNumber > MaxSets {
			return fmt.Errorf("%w: set number %d out of range", ErrInvalidSet, s.SetNumber)
		}
		if seen[s.SetNumber] {
			return fmt.Errorf("%w: set %d given twice", ErrInvalidSet, s.SetNumber)
		}
		seen[s.SetNumber] = true
		if s.Score1 < 0 || s.Score2 < 0 {
			return fmt.Errorf("%w: negative score in set %d", ErrInvalidSet, s.SetNumber)
		}
	}
	return nil
}

func matchUpdate(categoryID string, m *bracket.PositionedMatch) notifier.MatchUpdate {
	u := notifier.MatchUpdate{
		CategoryID: categoryID,
		GameID:     m.GameID,
		Phase:      m.Phase,
		Label:      m.Label,
		Status:     m.Status,
		Team1:      teamName(m.Slot1),
		Team2:      teamName(m.Slot2),
	}
	for _, s := range m.Sets {
		u.Sets = append(u.Sets, tournament.SetScore{GameID: m.GameID, SetNumber: s.Number, Score1: s.Score1, Score2: s.Score2})
	}
	switch m.Winner {
	case bracket.WinnerSlot1:
		u.WinnerTeam = 1
	case bracket.WinnerSlot2:
		u.WinnerTeam = 2
	}
	return u
}

func teamName(s bracket.Slot) string {
	if names := s.Names(); len(names) > 0 {
		return strings.Join(names, " / ")
	}
	return s.Text
}

func stateKey(categoryID string, gameID int) string {
	return fmt.Sprintf("%s/%d", categoryID, gameID)
}

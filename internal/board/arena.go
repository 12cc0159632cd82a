package board

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/bracket"
	"github.com/mauv0809/padel-brackets/internal/tournament"
)

// NewArena creates an arena holding the given category.
func NewArena(c *bracket.Category) *Arena {
	a := &Arena{}
	a.Replace(c)
	return a
}

// Replace swaps the whole category in, as on a top-level reload. Merges that
// were started against the previous generation are discarded.
func (a *Arena) Replace(c *bracket.Category) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.generation++
	a.categoryID = c.ID
	a.groups = c.Groups
	a.champion = c.Champion
	a.matches = make(map[int]*bracket.Match)
	a.phases = make([]phaseOrder, 0, len(c.Phases))
	for _, ph := range c.Phases {
		po := phaseOrder{key: ph.Key, rank: ph.Rank}
		for _, m := range ph.Matches {
			if _, dup := a.matches[m.GameID]; dup {
				log.Warn("Duplicate game id in category payload, keeping the first", "categoryID", c.ID, "gameID", m.GameID, "phase", ph.Key)
				continue
			}
			clone := m.Clone()
			a.matches[m.GameID] = &clone
			po.gameIDs = append(po.gameIDs, m.GameID)
		}
		a.phases = append(a.phases, po)
	}
	log.Debug("Arena replaced", "categoryID", c.ID, "generation", a.generation, "matches", len(a.matches))
}

// CategoryID returns the id of the held category.
func (a *Arena) CategoryID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.categoryID
}

// Generation increases on every Replace.
func (a *Arena) Generation() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.generation
}

// Match returns a copy of one match.
func (a *Arena) Match(gameID int) (bracket.Match, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.matches[gameID]
	if !ok {
		return bracket.Match{}, false
	}
	return m.Clone(), true
}

// Merge applies a canonical game detail to the arena. It returns false without
// an error when generation no longer matches, meaning the category was
// reloaded while the detail was in flight.
func (a *Arena) Merge(gameID int, detail tournament.GameDetail, generation uint64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if generation != a.generation {
		log.Debug("Discarding stale merge", "categoryID", a.categoryID, "gameID", gameID, "generation", generation, "current", a.generation)
		return false, nil
	}
	m, ok := a.matches[gameID]
	if !ok {
		return false, fmt.Errorf("game %d in category %s: %w", gameID, a.categoryID, ErrUnknownGame)
	}

	m.Sets = bracket.SetsFromScores(tournament.SortSets(detail.Sets))
	if detail.Winner != nil && *detail.Winner != 0 {
		w := *detail.Winner
		m.WinnerID = &w
	}
	status := tournament.ParseStatus(detail.Status)
	if status.Progress() < m.Status.Progress() {
		log.Warn("Ignoring status regression from game detail", "gameID", gameID, "current", m.Status, "received", status)
	} else {
		m.Status = status
	}
	log.Info("Merged game detail", "categoryID", a.categoryID, "gameID", gameID, "status", m.Status, "sets", len(m.Sets))
	return true, nil
}

// Category rebuilds the normalized category from the arena.
func (a *Arena) Category() *bracket.Category {
	a.mu.RLock()
	defer a.mu.RUnlock()

	c := &bracket.Category{
		ID:       a.categoryID,
		Groups:   a.groups,
		Champion: a.champion,
		Phases:   make([]bracket.Phase, 0, len(a.phases)),
	}
	for _, po := range a.phases {
		ph := bracket.Phase{Key: po.key, Rank: po.rank, Matches: make([]bracket.Match, 0, len(po.gameIDs))}
		for _, id := range po.gameIDs {
			ph.Matches = append(ph.Matches, a.matches[id].Clone())
		}
		c.Phases = append(c.Phases, ph)
	}
	return c
}

// View assembles the render-ready bracket from the current arena state.
func (a *Arena) View(opts bracket.Options) *bracket.View {
	return bracket.Assemble(a.Category(), opts)
}

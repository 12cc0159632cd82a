package board

import (
	"errors"
	"sync"

	"github.com/mauv0809/padel-brackets/internal/bracket"
	"github.com/mauv0809/padel-brackets/internal/metrics"
	"github.com/mauv0809/padel-brackets/internal/tournament"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrUnknownCategory is returned for a category that has not been loaded.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownGame is returned when a game id is not part of the loaded bracket.
	ErrUnknownGame = errors.New("unknown game")
)

// Arena is the single owner of a category's match entities, keyed by game id.
// Every view of the bracket is derived from it.
type Arena struct {
	mu         sync.RWMutex
	categoryID string
	generation uint64
	groups     []bracket.GroupStanding
	phases     []phaseOrder
	matches    map[int]*bracket.Match
	champion   bracket.Slot
}

type phaseOrder struct {
	key     string
	rank    int
	gameIDs []int
}

// Registry holds one arena per loaded category.
type Registry struct {
	client  tournament.TournamentClient
	metrics metrics.Metrics

	mu     sync.RWMutex
	arenas map[string]*Arena
	loads  singleflight.Group
}

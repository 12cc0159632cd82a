package resync

import (
	"context"
	"errors"
	"sync"

	"github.com/mauv0809/padel-brackets/internal/board"
	"github.com/mauv0809/padel-brackets/internal/bracket"
	"github.com/mauv0809/padel-brackets/internal/metrics"
	"github.com/mauv0809/padel-brackets/internal/notifier"
	"github.com/mauv0809/padel-brackets/internal/pubsub"
	"github.com/mauv0809/padel-brackets/internal/tournament"
)

var (
	// ErrGated is returned for a match that cannot be scored yet.
	ErrGated = errors.New("match is not open for scoring")
	// ErrInvalidSet is returned when the submitted sets are malformed.
	ErrInvalidSet = errors.New("invalid set scores")
	// ErrSyncFailed wraps failures of the store or read-back calls.
	ErrSyncFailed = errors.New("score sync failed")
)

// MaxSets is the most sets a padel match can have.
const MaxSets = 3

// State is the phase of a score submission.
type State string

const (
	StateIdle    State = "idle"
	StateSaving  State = "saving"
	StateSyncing State = "syncing"
	StateDone    State = "done"
	StateError   State = "error"
)

// Arenas gives access to loaded categories. board.Registry implements it.
type Arenas interface {
	Ensure(ctx context.Context, categoryID string) (*board.Arena, error)
}

// Result is the outcome of one submission.
type Result struct {
	CategoryID string                   `json:"category_id"`
	GameID     int                      `json:"game_id"`
	State      State                    `json:"state"`
	Step       State                    `json:"step,omitempty"`
	Applied    bool                     `json:"applied"`
	Match      *bracket.PositionedMatch `json:"match,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// DoneFunc is called after a submission was merged into its arena.
type DoneFunc func(ctx context.Context, result Result)

// Controller runs score submissions: store every set, read the game back and
// merge the canonical detail into the arena.
type Controller struct {
	client   tournament.TournamentClient
	arenas   Arenas
	layout   bracket.Options
	notifier notifier.Notifier
	pubsub   pubsub.PubSubClient
	metrics  metrics.Metrics
	origin   string

	mu     sync.RWMutex
	states map[string]State
	onDone []DoneFunc
}

type submission struct {
	categoryID string
	gameID     int
	sets       []tournament.SetScore
	arena      *board.Arena
	generation uint64
	state      State
	failedAt   State
	err        error
	applied    bool
}
